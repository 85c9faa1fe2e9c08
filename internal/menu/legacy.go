// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// legacy.go implements the strict boundary codec for the legacy menu shape.
// The legacy format keys categories by display name, so category order is
// positional in the document; an ordinary map would lose it. The codec walks
// decoder tokens on the way in and writes keys one by one on the way out.
package menu

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// LegacyItem is one record of a legacy per-category array. ID is nil when
// the source id field was missing or not a JSON number.
type LegacyItem struct {
	ID          *int64
	Name        string
	Price       float64
	Description []string
	Image       string
	// SortOrder is an optional explicit position some hand-edited documents
	// carry. Only read, never written back.
	SortOrder *float64
}

// LegacyCategory is one top-level key of the legacy document with its items,
// in document order.
type LegacyCategory struct {
	Name  string
	Items []LegacyItem
}

// LegacyDocument is the legacy menu shape with category order preserved.
type LegacyDocument []LegacyCategory

// ParseLegacy decodes a legacy menu document. The only hard validation is
// that the top level must be a JSON object; malformed category values and
// item fields coalesce to empty/zero defaults instead of failing.
func ParseLegacy(data []byte) (LegacyDocument, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLegacyFormat, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrLegacyFormat
	}

	var doc LegacyDocument
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLegacyFormat, err)
		}
		name, _ := keyTok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLegacyFormat, err)
		}

		doc = append(doc, LegacyCategory{
			Name:  name,
			Items: parseLegacyItems(value),
		})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLegacyFormat, err)
	}
	return doc, nil
}

// parseLegacyItems decodes one category value. Anything that is not an array
// of objects degrades to an empty item list.
func parseLegacyItems(raw json.RawMessage) []LegacyItem {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	items := make([]LegacyItem, 0, len(entries))
	for _, entry := range entries {
		var fields struct {
			ID          json.RawMessage `json:"id"`
			Name        json.RawMessage `json:"name"`
			Price       json.RawMessage `json:"price"`
			Description json.RawMessage `json:"description"`
			Image       json.RawMessage `json:"image"`
			SortOrder   json.RawMessage `json:"sortOrder"`
		}
		// A non-object entry decodes to zero fields and coalesces below.
		_ = json.Unmarshal(entry, &fields)

		items = append(items, LegacyItem{
			ID:          coalesceInt(fields.ID),
			Name:        coalesceString(fields.Name),
			Price:       coalesceNumber(fields.Price),
			Description: coalesceStrings(fields.Description),
			Image:       coalesceString(fields.Image),
			SortOrder:   coalesceFloatPtr(fields.SortOrder),
		})
	}
	return items
}

// MarshalJSON writes the legacy object with categories in slice order.
func (d LegacyDocument) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cat.Name)
		if err != nil {
			return nil, fmt.Errorf("marshal legacy category name: %w", err)
		}
		buf.Write(key)
		buf.WriteByte(':')

		buf.WriteByte('[')
		for j := range cat.Items {
			if j > 0 {
				buf.WriteByte(',')
			}
			entry, err := json.Marshal(legacyItemOut(&cat.Items[j]))
			if err != nil {
				return nil, fmt.Errorf("marshal legacy item: %w", err)
			}
			buf.Write(entry)
		}
		buf.WriteByte(']')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON makes the codec symmetric for callers that decode through
// the type instead of ParseLegacy.
func (d *LegacyDocument) UnmarshalJSON(data []byte) error {
	parsed, err := ParseLegacy(data)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// legacyItemOut shapes one item for the stored legacy format.
func legacyItemOut(it *LegacyItem) any {
	var id int64
	if it.ID != nil {
		id = *it.ID
	}
	desc := it.Description
	if desc == nil {
		desc = []string{}
	}
	return struct {
		ID          int64    `json:"id"`
		Name        string   `json:"name"`
		Price       float64  `json:"price"`
		Description []string `json:"description"`
		Image       string   `json:"image"`
	}{id, it.Name, it.Price, desc, it.Image}
}

// coalesceString accepts a JSON string, or stringifies a bare number.
func coalesceString(raw json.RawMessage) string {
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

// coalesceNumber accepts a JSON number or a numeric string, else 0.
func coalesceNumber(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return 0
}

// coalesceInt accepts only a JSON number, truncated to an integer.
func coalesceInt(raw json.RawMessage) *int64 {
	if len(raw) == 0 {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	n := int64(f)
	return &n
}

// coalesceFloatPtr accepts only a JSON number.
func coalesceFloatPtr(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	return &f
}

// coalesceStrings accepts an array, keeping string elements and stringifying
// bare numbers; anything else is dropped.
func coalesceStrings(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		var s string
		if err := json.Unmarshal(e, &s); err == nil {
			out = append(out, s)
			continue
		}
		var n json.Number
		if err := json.Unmarshal(e, &n); err == nil {
			out = append(out, n.String())
		}
	}
	return out
}
