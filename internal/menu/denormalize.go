// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package menu

import "sort"

// Denormalize reconstructs the legacy shape from a normalized menu. It never
// fails for a structurally valid menu.
//
// Categories are emitted in ascending sortOrder (id as tiebreak). A
// categoryId referenced by an item but missing from the category list — the
// category was deleted while its items remained — still gets a synthetic
// category keyed by the raw id, appended after the known ones, so no item is
// silently dropped. Legacy item ids reuse the externalId when it is free in
// the destination category; otherwise a fresh integer is minted from a
// counter seeded at the maximum externalId across the whole document, which
// keeps ids collision-free after cross-category moves.
func Denormalize(m *Menu) LegacyDocument {
	cats := make([]Category, len(m.Categories))
	copy(cats, m.Categories)
	sort.SliceStable(cats, func(i, j int) bool {
		if cats[i].SortOrder != cats[j].SortOrder {
			return cats[i].SortOrder < cats[j].SortOrder
		}
		return cats[i].ID < cats[j].ID
	})

	out := make(LegacyDocument, 0, len(cats))
	catIndex := make(map[string]int, len(cats))
	for _, c := range cats {
		catIndex[c.ID] = len(out)
		out = append(out, LegacyCategory{Name: c.Name, Items: []LegacyItem{}})
	}

	// Items globally ordered by (sortOrder, id) — within each category this
	// is exactly the total order, and orphan categories appear in a
	// deterministic order too.
	items := make([]*Item, 0, len(m.Items))
	for i := range m.Items {
		items = append(items, &m.Items[i])
	}
	sort.SliceStable(items, func(i, j int) bool {
		return totalOrderLess(items[i], items[j])
	})

	next := maxExternalID(m.Items) + 1
	usedIDs := make(map[string]map[int64]bool)

	for _, it := range items {
		idx, ok := catIndex[it.CategoryID]
		if !ok {
			idx = len(out)
			catIndex[it.CategoryID] = idx
			out = append(out, LegacyCategory{Name: it.CategoryID, Items: []LegacyItem{}})
		}

		used := usedIDs[it.CategoryID]
		if used == nil {
			used = make(map[int64]bool)
			usedIDs[it.CategoryID] = used
		}

		var id int64
		if it.ExternalID != nil && !used[*it.ExternalID] {
			id = *it.ExternalID
		} else {
			id = next
			next++
		}
		used[id] = true

		var image string
		if len(it.Images) > 0 {
			image = it.Images[0].URL
		}
		desc := it.Description
		if desc == nil {
			desc = []string{}
		}

		out[idx].Items = append(out[idx].Items, LegacyItem{
			ID:          &id,
			Name:        it.Title,
			Price:       it.Price,
			Description: desc,
			Image:       image,
		})
	}
	return out
}
