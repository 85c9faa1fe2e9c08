// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package menu

import (
	"fmt"
	"strconv"
	"time"

	"tattiadmin/internal/slug"
)

// Normalize converts a parsed legacy document into the normalized menu.
// The legacy format guarantees neither ordering nor stable ids, so both are
// synthesized here: categories are ranked by their position among the
// document keys, item ids are composed from the category slug and the
// legacy id (or array index), and collisions get a numeric suffix so that
// every id in the result is unique.
func Normalize(doc LegacyDocument) *Menu {
	m := &Menu{
		Version:     1,
		LastUpdated: time.Now().UTC(),
		Currency:    "RUB",
		Categories:  make([]Category, 0, len(doc)),
		Items:       []Item{},
	}

	usedCategoryIDs := make(map[string]bool)
	usedItemIDs := make(map[string]bool)

	for rank, cat := range doc {
		catID := slug.Generate(cat.Name)
		if catID == "" {
			catID = fmt.Sprintf("category-%d", rank+1)
		}
		catID = dedupeID(usedCategoryIDs, catID)

		m.Categories = append(m.Categories, Category{
			ID:        catID,
			Name:      cat.Name,
			SortOrder: rank + 1,
			IsHidden:  false,
		})

		for pos := range cat.Items {
			m.Items = append(m.Items, normalizeItem(catID, pos, &cat.Items[pos], usedItemIDs))
		}
	}
	return m
}

// normalizeItem builds one normalized item from a legacy record.
func normalizeItem(categoryID string, pos int, li *LegacyItem, used map[string]bool) Item {
	base := categoryID + "-"
	if li.ID != nil {
		base += strconv.FormatInt(*li.ID, 10)
	} else {
		base += strconv.Itoa(pos)
	}
	id := dedupeID(used, base)

	// Position within the category: an explicit sortOrder wins, then the
	// numeric legacy id, then the 1-based array position.
	var sortOrder int
	switch {
	case li.SortOrder != nil:
		sortOrder = int(*li.SortOrder)
	case li.ID != nil:
		sortOrder = int(*li.ID)
	default:
		sortOrder = pos + 1
	}

	var images []ImageRef
	if li.Image != "" {
		images = []ImageRef{{ID: "img-" + id, URL: li.Image, Alt: li.Name}}
	} else {
		images = []ImageRef{}
	}

	desc := li.Description
	if desc == nil {
		desc = []string{}
	}

	item := Item{
		ID:          id,
		Title:       li.Name,
		Description: desc,
		CategoryID:  categoryID,
		Price:       li.Price,
		Images:      images,
		Available:   true,
		Featured:    false,
		SortOrder:   sortOrder,
		Status:      StatusPublished,
	}
	if li.ID != nil {
		ext := *li.ID
		item.ExternalID = &ext
	}
	return item
}

// dedupeID claims base in used, appending -1, -2, … until the id is free.
func dedupeID(used map[string]bool, base string) string {
	id := base
	for n := 1; used[id]; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	used[id] = true
	return id
}
