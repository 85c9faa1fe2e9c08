// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// order.go holds the editor mutations that must keep the per-category total
// order dense so that denormalization stays stable: moving items within and
// across categories, appending, deleting, and renaming.
package menu

import "strconv"

// MoveItem moves an item one position up (direction -1) or down (+1) within
// its category, then renumbers the category contiguously from 1. Moving the
// first item up or the last item down is a no-op.
func (m *Menu) MoveItem(id string, direction int) error {
	idx := m.itemIndex(id)
	if idx < 0 {
		return ErrItemNotFound
	}
	if direction == 0 {
		return nil
	}
	step := 1
	if direction < 0 {
		step = -1
	}

	order := m.categoryItems(m.Items[idx].CategoryID)
	pos := -1
	for p, i := range order {
		if i == idx {
			pos = p
			break
		}
	}

	swap := pos + step
	if swap < 0 || swap >= len(order) {
		return nil
	}
	order[pos], order[swap] = order[swap], order[pos]
	m.renumber(order)
	return nil
}

// MoveItemToCategory reassigns an item to another category. If the item's
// externalId collides with one already present in the destination, it is
// replaced with a freshly minted document-wide id. Both the source category
// (closing the gap) and the destination (with the moved item appended last)
// are renumbered contiguously.
func (m *Menu) MoveItemToCategory(id, categoryID string) error {
	idx := m.itemIndex(id)
	if idx < 0 {
		return ErrItemNotFound
	}
	if !m.hasCategory(categoryID) {
		return ErrCategoryNotFound
	}

	source := m.Items[idx].CategoryID
	if source == categoryID {
		return nil
	}

	if ext := m.Items[idx].ExternalID; ext != nil {
		for _, j := range m.categoryItems(categoryID) {
			other := m.Items[j].ExternalID
			if other != nil && *other == *ext {
				minted := m.NextExternalID()
				m.Items[idx].ExternalID = &minted
				break
			}
		}
	}

	m.Items[idx].CategoryID = categoryID
	m.Items[idx].SortOrder = m.maxSortOrder(categoryID) + 1

	m.renumber(m.categoryItems(source))
	m.renumber(m.categoryItems(categoryID))
	return nil
}

// AppendItem adds a new item at the end of its category, assigning the next
// sortOrder in the category and a fresh document-wide externalId. The stored
// item is returned with all assigned fields filled in.
func (m *Menu) AppendItem(it Item) (Item, error) {
	if !m.hasCategory(it.CategoryID) {
		return Item{}, ErrCategoryNotFound
	}

	ext := m.NextExternalID()
	it.ExternalID = &ext
	it.SortOrder = m.maxSortOrder(it.CategoryID) + 1

	if it.ID == "" {
		used := make(map[string]bool, len(m.Items))
		for i := range m.Items {
			used[m.Items[i].ID] = true
		}
		it.ID = dedupeID(used, it.CategoryID+"-"+strconv.FormatInt(ext, 10))
	}
	if it.Status == "" {
		it.Status = StatusPublished
	}
	if it.Description == nil {
		it.Description = []string{}
	}
	if it.Images == nil {
		it.Images = []ImageRef{}
	}

	m.Items = append(m.Items, it)
	return it, nil
}

// UpdateItem replaces an item's editable fields: title, description, price,
// images, availability, featured flag and status. Identity and placement
// (id, externalId, categoryId, sortOrder) are kept; category membership
// changes only through MoveItemToCategory. The stored item is returned.
func (m *Menu) UpdateItem(it Item) (Item, error) {
	idx := m.itemIndex(it.ID)
	if idx < 0 {
		return Item{}, ErrItemNotFound
	}

	cur := &m.Items[idx]
	cur.Title = it.Title
	cur.Price = it.Price
	cur.Available = it.Available
	cur.Featured = it.Featured
	if it.Status != "" {
		cur.Status = it.Status
	}
	if it.Description != nil {
		cur.Description = it.Description
	}
	if it.Images != nil {
		cur.Images = it.Images
	}
	return *cur, nil
}

// DeleteItem removes an item and renumbers its category to close the gap.
func (m *Menu) DeleteItem(id string) error {
	idx := m.itemIndex(id)
	if idx < 0 {
		return ErrItemNotFound
	}
	categoryID := m.Items[idx].CategoryID
	m.Items = append(m.Items[:idx], m.Items[idx+1:]...)
	m.renumber(m.categoryItems(categoryID))
	return nil
}

// RenameCategory changes a category's display name. The id is kept: it was
// derived once at normalization time and items reference it.
func (m *Menu) RenameCategory(id, name string) error {
	for i := range m.Categories {
		if m.Categories[i].ID == id {
			m.Categories[i].Name = name
			return nil
		}
	}
	return ErrCategoryNotFound
}

// renumber assigns contiguous 1-based sortOrder values to the items at the
// given indices, in the order given.
func (m *Menu) renumber(order []int) {
	for rank, i := range order {
		m.Items[i].SortOrder = rank + 1
	}
}

// maxSortOrder returns the highest sortOrder in a category, or 0 when empty.
func (m *Menu) maxSortOrder(categoryID string) int {
	var max int
	for i := range m.Items {
		if m.Items[i].CategoryID == categoryID && m.Items[i].SortOrder > max {
			max = m.Items[i].SortOrder
		}
	}
	return max
}
