// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package menu implements the catalog's menu document model: a legacy,
// human-edited JSON shape (category names as object keys, items as arrays)
// and a normalized shape with stable ids and explicit sort order. The
// package converts between the two and provides the ordering operations the
// editor performs on the normalized form.
package menu

import (
	"errors"
	"sort"
	"time"
)

// Errors callers branch on.
var (
	// ErrLegacyFormat is returned when a legacy document is not a JSON object.
	ErrLegacyFormat = errors.New("menu: unexpected legacy format")
	// ErrItemNotFound is returned by ordering operations for an unknown item id.
	ErrItemNotFound = errors.New("menu: item not found")
	// ErrCategoryNotFound is returned for an unknown category id.
	ErrCategoryNotFound = errors.New("menu: category not found")
)

// Status is the editorial state of an item. It is stored, not enforced.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Category is one menu section. ID is derived from the display name once,
// at normalization time; renaming a category does not reslug it.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
	IsHidden  bool   `json:"isHidden"`
}

// ImageRef is a single item photo.
type ImageRef struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// Item is one dish in the normalized menu. ExternalID is the integer id the
// item held in the legacy per-category array; nil for items created in the
// editor until their first save.
type Item struct {
	ID          string     `json:"id"`
	ExternalID  *int64     `json:"externalId,omitempty"`
	Title       string     `json:"title"`
	Description []string   `json:"description"`
	CategoryID  string     `json:"categoryId"`
	Price       float64    `json:"price"`
	Images      []ImageRef `json:"images"`
	Available   bool       `json:"available"`
	Featured    bool       `json:"featured"`
	SortOrder   int        `json:"sortOrder"`
	Status      Status     `json:"status"`
}

// Menu is the normalized document the editor works against. It is rebuilt
// from the legacy shape on every load and written back as a whole on save.
type Menu struct {
	Version     int        `json:"version"`
	LastUpdated time.Time  `json:"lastUpdated"`
	Currency    string     `json:"currency"`
	Categories  []Category `json:"categories"`
	Items       []Item     `json:"items"`
}

// totalOrderLess defines the strict total order of items within a category:
// sortOrder ascending, item id as the lexicographic tiebreak.
func totalOrderLess(a, b *Item) bool {
	if a.SortOrder != b.SortOrder {
		return a.SortOrder < b.SortOrder
	}
	return a.ID < b.ID
}

// itemIndex returns the index of the item with the given id, or -1.
func (m *Menu) itemIndex(id string) int {
	for i := range m.Items {
		if m.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// hasCategory reports whether a category with the given id exists.
func (m *Menu) hasCategory(id string) bool {
	for i := range m.Categories {
		if m.Categories[i].ID == id {
			return true
		}
	}
	return false
}

// categoryItems returns the indices of all items in the given category,
// sorted by the total order.
func (m *Menu) categoryItems(categoryID string) []int {
	var idx []int
	for i := range m.Items {
		if m.Items[i].CategoryID == categoryID {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return totalOrderLess(&m.Items[idx[a]], &m.Items[idx[b]])
	})
	return idx
}

// maxExternalID returns the largest externalId present anywhere in the
// document, or 0 when no item carries one.
func maxExternalID(items []Item) int64 {
	var max int64
	for i := range items {
		if items[i].ExternalID != nil && *items[i].ExternalID > max {
			max = *items[i].ExternalID
		}
	}
	return max
}

// NextExternalID mints a fresh integer id that cannot collide with any
// externalId already in the document.
func (m *Menu) NextExternalID() int64 {
	return maxExternalID(m.Items) + 1
}
