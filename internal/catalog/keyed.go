// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog implements the row-editor transforms for the smaller
// catalog documents: cakes, seasonal specials, service packages, info
// images, and reviews. Unlike the menu these documents have no ordering
// invariants; each transform flattens a stored shape into editable rows and
// rebuilds the stored shape on save, tolerating the field drift the
// hand-edited files accumulated (image vs images, string vs array).
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tattiadmin/internal/slug"
)

// Row is the editor's view of one entry in a keyed catalog document.
type Row struct {
	Key         string   `json:"key,omitempty"`
	ID          int64    `json:"id,omitempty"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Description []string `json:"description"`
	// Cost is a free-form price note some service entries carry. Stored
	// as-is, never edited here.
	Cost string `json:"cost,omitempty"`
}

// ImageStyle selects how a catalog stores row images on save.
type ImageStyle int

const (
	// ImagesArray always writes an "images" array (cakes).
	ImagesArray ImageStyle = iota
	// ImageFlexible writes a single "image" string, or an array when the
	// row has several (easter specials).
	ImageFlexible
	// ImageString writes only the first image as an "image" string
	// (new-year specials).
	ImageString
)

// ParseKeyed flattens a keyed catalog object into rows, preserving key
// order. A non-object document yields no rows.
func ParseKeyed(data []byte) []Row {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}

	var rows []Row
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return rows
		}
		key, _ := keyTok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return rows
		}
		rows = append(rows, parseEntry(key, value))
	}
	return rows
}

// parseEntry reads one catalog entry, coalescing malformed fields.
func parseEntry(key string, raw json.RawMessage) Row {
	var fields struct {
		ID          json.RawMessage `json:"id"`
		Name        json.RawMessage `json:"name"`
		Price       json.RawMessage `json:"price"`
		Description json.RawMessage `json:"description"`
		Image       json.RawMessage `json:"image"`
		Images      json.RawMessage `json:"images"`
		Cost        json.RawMessage `json:"cost"`
		Weights     json.RawMessage `json:"weights"`
	}
	_ = json.Unmarshal(raw, &fields)

	row := Row{
		Key:         key,
		ID:          asInt(fields.ID),
		Name:        asString(fields.Name),
		Price:       asNumber(fields.Price),
		Description: asStrings(fields.Description),
		Images:      imageList(fields.Image, fields.Images),
		Cost:        asString(fields.Cost),
	}

	// Seasonal entries sometimes price by weight; the first weight's price
	// stands in when no flat price exists.
	if row.Price == 0 {
		var weights []struct {
			Price json.RawMessage `json:"price"`
		}
		if err := json.Unmarshal(fields.Weights, &weights); err == nil && len(weights) > 0 {
			row.Price = asNumber(weights[0].Price)
		}
	}
	return row
}

// MarshalKeyed rebuilds the stored keyed object from editor rows. Missing
// keys fall back to a slug of the name, then to a positional placeholder;
// missing ids are generated the way the legacy editor generated them.
func MarshalKeyed(rows []Row, style ImageStyle) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, row := range rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entryKey(row, i))
		if err != nil {
			return nil, fmt.Errorf("marshal catalog key: %w", err)
		}
		buf.Write(key)
		buf.WriteByte(':')

		entry, err := json.Marshal(keyedEntry(row, i, style))
		if err != nil {
			return nil, fmt.Errorf("marshal catalog entry: %w", err)
		}
		buf.Write(entry)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// keyedEntry shapes one row for storage.
func keyedEntry(row Row, pos int, style ImageStyle) map[string]any {
	id := row.ID
	if id == 0 {
		id = generateID(pos)
	}
	desc := row.Description
	if desc == nil {
		desc = []string{}
	}

	entry := map[string]any{
		"id":          id,
		"name":        row.Name,
		"price":       row.Price,
		"description": desc,
	}
	if row.Cost != "" {
		entry["cost"] = row.Cost
	}

	switch style {
	case ImagesArray:
		images := row.Images
		if images == nil {
			images = []string{}
		}
		entry["images"] = images
	case ImageFlexible:
		if len(row.Images) > 1 {
			entry["image"] = row.Images
		} else {
			entry["image"] = firstImage(row.Images)
		}
	case ImageString:
		entry["image"] = firstImage(row.Images)
	}
	return entry
}

func entryKey(row Row, pos int) string {
	if k := strings.TrimSpace(row.Key); k != "" {
		return k
	}
	if s := slug.Generate(row.Name); s != "" {
		return s
	}
	return fmt.Sprintf("item_%d", pos+1)
}

func firstImage(images []string) string {
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			return img
		}
	}
	return ""
}

// generateID mirrors the id scheme the legacy editor used for new entries:
// the last six digits of the current unix-millisecond clock plus the row
// position.
func generateID(pos int) int64 {
	return time.Now().UnixMilli()%1_000_000 + int64(pos)
}

// imageList merges the "image"/"images" field variants into one list.
// Either field may hold a string or an array of strings.
func imageList(image, images json.RawMessage) []string {
	if list := asImageField(images); list != nil {
		return list
	}
	return asImageField(image)
}

func asImageField(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	if list := asStrings(raw); list != nil {
		return list
	}
	if s := asString(raw); s != "" {
		return []string{s}
	}
	return nil
}

func asString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func asNumber(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return parsed
		}
	}
	return 0
}

func asInt(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0
	}
	return int64(f)
}

func asStrings(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if s := asString(e); s != "" {
			out = append(out, s)
		}
	}
	return out
}
