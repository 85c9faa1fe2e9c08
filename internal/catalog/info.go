// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseInfoImages extracts the informational image URLs from the info
// document ({"info": {"images": [...]}}). Anything malformed yields an
// empty list.
func ParseInfoImages(data []byte) []string {
	var doc struct {
		Info struct {
			Images []json.RawMessage `json:"images"`
		} `json:"info"`
	}
	_ = json.Unmarshal(data, &doc)

	images := make([]string, 0, len(doc.Info.Images))
	for _, raw := range doc.Info.Images {
		if url := strings.TrimSpace(asString(raw)); url != "" {
			images = append(images, url)
		}
	}
	return images
}

// MarshalInfoImages rebuilds the info document from a list of image URLs,
// dropping blank entries.
func MarshalInfoImages(images []string) ([]byte, error) {
	kept := make([]string, 0, len(images))
	for _, url := range images {
		if url = strings.TrimSpace(url); url != "" {
			kept = append(kept, url)
		}
	}

	doc := map[string]any{
		"info": map[string]any{"images": kept},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal info images: %w", err)
	}
	return data, nil
}
