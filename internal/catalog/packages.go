// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ServicePackages is the row-editor view of the servicePackages document:
// two independent lists, packages (with an "includes" list) and extras
// (with a free-form note).
type ServicePackages struct {
	Packages []Row `json:"packages"`
	Extras   []Row `json:"extras"`
}

// ParseServicePackages flattens the stored servicePackages object. Package
// "includes" lines and extra notes both land in Row.Description so one
// editor handles both lists.
func ParseServicePackages(data []byte) ServicePackages {
	var doc struct {
		Packages []json.RawMessage `json:"packages"`
		Extras   []json.RawMessage `json:"extras"`
	}
	_ = json.Unmarshal(data, &doc)

	sp := ServicePackages{Packages: []Row{}, Extras: []Row{}}
	for i, raw := range doc.Packages {
		row := parseServiceEntry(raw, "includes")
		if row.Key == "" {
			row.Key = fmt.Sprintf("pkg_%d", i+1)
		}
		sp.Packages = append(sp.Packages, row)
	}
	for i, raw := range doc.Extras {
		row := parseServiceEntry(raw, "note")
		if row.Key == "" {
			row.Key = fmt.Sprintf("extra_%d", i+1)
		}
		sp.Extras = append(sp.Extras, row)
	}
	return sp
}

// parseServiceEntry reads one packages/extras entry; descField names the
// field the description is sourced from ("includes" list or "note" string).
func parseServiceEntry(raw json.RawMessage, descField string) Row {
	var fields struct {
		ID       json.RawMessage `json:"id"`
		Name     json.RawMessage `json:"name"`
		Price    json.RawMessage `json:"price"`
		Includes json.RawMessage `json:"includes"`
		Note     json.RawMessage `json:"note"`
		Image    json.RawMessage `json:"image"`
		Images   json.RawMessage `json:"images"`
		Cost     json.RawMessage `json:"cost"`
	}
	_ = json.Unmarshal(raw, &fields)

	row := Row{
		ID:     asInt(fields.ID),
		Name:   asString(fields.Name),
		Price:  asNumber(fields.Price),
		Images: imageList(fields.Image, fields.Images),
		Cost:   asString(fields.Cost),
	}
	if row.ID != 0 {
		row.Key = strconv.FormatInt(row.ID, 10)
	}

	switch descField {
	case "note":
		if note := asString(fields.Note); note != "" {
			row.Description = []string{note}
		} else {
			row.Description = []string{}
		}
	default:
		row.Description = asStrings(fields.Includes)
		if row.Description == nil {
			row.Description = []string{}
		}
	}
	return row
}

// Marshal rebuilds the stored servicePackages object. Package descriptions
// become the "includes" list; extra description lines are joined into a
// single "note" string. Rows with several images store an "images" array,
// the rest a single "image" string.
func (sp ServicePackages) Marshal() ([]byte, error) {
	out := struct {
		Packages []map[string]any `json:"packages"`
		Extras   []map[string]any `json:"extras"`
	}{
		Packages: make([]map[string]any, 0, len(sp.Packages)),
		Extras:   make([]map[string]any, 0, len(sp.Extras)),
	}

	for i, row := range sp.Packages {
		entry := serviceEntryBase(row, i)
		desc := row.Description
		if desc == nil {
			desc = []string{}
		}
		entry["includes"] = desc
		out.Packages = append(out.Packages, entry)
	}
	for i, row := range sp.Extras {
		// Offset keeps generated extra ids clear of generated package ids,
		// the way the legacy editor seeded them.
		entry := serviceEntryBase(row, 1000+i)
		entry["note"] = strings.Join(row.Description, "\n")
		out.Extras = append(out.Extras, entry)
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal service packages: %w", err)
	}
	return data, nil
}

func serviceEntryBase(row Row, seed int) map[string]any {
	id := row.ID
	if id == 0 {
		id = generateID(seed)
	}
	entry := map[string]any{
		"id":    id,
		"name":  row.Name,
		"price": row.Price,
	}
	if row.Cost != "" {
		entry["cost"] = row.Cost
	}
	if len(row.Images) > 1 {
		entry["images"] = row.Images
	} else {
		entry["image"] = firstImage(row.Images)
	}
	return entry
}
