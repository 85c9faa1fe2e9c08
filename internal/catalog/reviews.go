// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Review is one customer review in the reviews list document.
type Review struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	ReviewText string `json:"reviewText"`
	Rating     int    `json:"rating"`
	Image      string `json:"image,omitempty"`
}

// ParseReviews decodes the reviews document. A document that is not a JSON
// array yields an empty list, matching how the editor treated it.
func ParseReviews(data []byte) []Review {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return []Review{}
	}

	reviews := make([]Review, 0, len(entries))
	for _, raw := range entries {
		var fields struct {
			ID         json.RawMessage `json:"id"`
			Name       json.RawMessage `json:"name"`
			ReviewText json.RawMessage `json:"reviewText"`
			Rating     json.RawMessage `json:"rating"`
			Image      json.RawMessage `json:"image"`
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			continue
		}
		reviews = append(reviews, Review{
			ID:         asString(fields.ID),
			Name:       asString(fields.Name),
			ReviewText: asString(fields.ReviewText),
			Rating:     int(asNumber(fields.Rating)),
			Image:      asString(fields.Image),
		})
	}
	return reviews
}

// WithID returns the review with a stable id assigned. Legacy entries were
// appended without one, which made targeted deletion fragile; new entries
// get a uuid, existing ids are preserved.
func (r Review) WithID() Review {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return r
}
