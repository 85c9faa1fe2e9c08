// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tattiadmin/internal/menu"
	"tattiadmin/internal/store"
)

// loadMenu reads the stored legacy menu and normalizes it. A missing
// document yields an empty menu so the editor works on a fresh install.
func (a *Admin) loadMenu() (*menu.Menu, error) {
	body, err := a.docs.Get(docMenu)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return menu.Normalize(nil), nil
		}
		return nil, err
	}
	doc, err := menu.ParseLegacy(body)
	if err != nil {
		return nil, err
	}
	return menu.Normalize(doc), nil
}

// saveMenu denormalizes and stores the menu, returning the legacy
// document that was written.
func (a *Admin) saveMenu(r *http.Request, m *menu.Menu) (menu.LegacyDocument, error) {
	doc := menu.Denormalize(m)
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	if err := a.putDocument(r, docMenu, body); err != nil {
		return nil, err
	}
	return doc, nil
}

// menuLoadError writes the response for a failed load.
func menuLoadError(w http.ResponseWriter, err error) {
	if errors.Is(err, menu.ErrLegacyFormat) {
		slog.Error("stored menu is malformed", "error", err)
		writeError(w, http.StatusInternalServerError, "Stored menu is malformed.")
		return
	}
	slog.Error("load menu failed", "error", err)
	writeError(w, http.StatusInternalServerError, "Storage error.")
}

// MenuGet serves GET /api/menu — the normalized editor view.
func (a *Admin) MenuGet(w http.ResponseWriter, r *http.Request) {
	m, err := a.loadMenu()
	if err != nil {
		menuLoadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// MenuPut serves PUT /api/menu — accept an edited normalized menu,
// denormalize and store it. The response is the menu re-read from what
// was written, so the client sees minted ids and final ordering.
func (a *Admin) MenuPut(w http.ResponseWriter, r *http.Request) {
	var m menu.Menu
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, "Body is not a valid menu.")
		return
	}

	doc, err := a.saveMenu(r, &m)
	if err != nil {
		slog.Error("store menu failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}
	writeJSON(w, http.StatusOK, menu.Normalize(doc))
}

// MenuItemCreate serves POST /api/menu/items — append one item to a
// category.
func (a *Admin) MenuItemCreate(w http.ResponseWriter, r *http.Request) {
	var it menu.Item
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		writeError(w, http.StatusBadRequest, "Body is not a valid item.")
		return
	}
	if msg := validateItemTitle(it.Title); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if it.Price < 0 {
		writeError(w, http.StatusBadRequest, "Price must not be negative.")
		return
	}

	m, err := a.loadMenu()
	if err != nil {
		menuLoadError(w, err)
		return
	}

	added, err := m.AppendItem(it)
	if err != nil {
		if errors.Is(err, menu.ErrCategoryNotFound) {
			writeError(w, http.StatusNotFound, "Category not found.")
			return
		}
		slog.Error("append item failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}

	if _, err := a.saveMenu(r, m); err != nil {
		slog.Error("store menu failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

// MenuItemUpdate serves PUT /api/menu/items/{id} — edit an item's
// fields in place. Placement is untouched; moves have their own route.
func (a *Admin) MenuItemUpdate(w http.ResponseWriter, r *http.Request) {
	var it menu.Item
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		writeError(w, http.StatusBadRequest, "Body is not a valid item.")
		return
	}
	it.ID = chi.URLParam(r, "id")
	if msg := validateItemTitle(it.Title); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if it.Price < 0 {
		writeError(w, http.StatusBadRequest, "Price must not be negative.")
		return
	}

	m, err := a.loadMenu()
	if err != nil {
		menuLoadError(w, err)
		return
	}

	updated, err := m.UpdateItem(it)
	if err != nil {
		if errors.Is(err, menu.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "Item not found.")
			return
		}
		slog.Error("update item failed", "item", it.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}

	if _, err := a.saveMenu(r, m); err != nil {
		slog.Error("store menu failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// moveRequest is the body of POST /api/menu/items/{id}/move: either a
// direction within the category or a target category, not both.
type moveRequest struct {
	Direction  int    `json:"direction"`
	CategoryID string `json:"categoryId"`
}

// MenuItemMove serves POST /api/menu/items/{id}/move.
func (a *Admin) MenuItemMove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Body is not a valid move request.")
		return
	}

	m, err := a.loadMenu()
	if err != nil {
		menuLoadError(w, err)
		return
	}

	switch {
	case req.CategoryID != "":
		err = m.MoveItemToCategory(id, req.CategoryID)
	case req.Direction == 1 || req.Direction == -1:
		err = m.MoveItem(id, req.Direction)
	default:
		writeError(w, http.StatusBadRequest, "Move needs a direction of ±1 or a categoryId.")
		return
	}
	if err != nil {
		switch {
		case errors.Is(err, menu.ErrItemNotFound):
			writeError(w, http.StatusNotFound, "Item not found.")
		case errors.Is(err, menu.ErrCategoryNotFound):
			writeError(w, http.StatusNotFound, "Category not found.")
		default:
			slog.Error("move item failed", "item", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Storage error.")
		}
		return
	}

	doc, err := a.saveMenu(r, m)
	if err != nil {
		slog.Error("store menu failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}
	writeJSON(w, http.StatusOK, menu.Normalize(doc))
}

// MenuItemDelete serves DELETE /api/menu/items/{id}.
func (a *Admin) MenuItemDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m, err := a.loadMenu()
	if err != nil {
		menuLoadError(w, err)
		return
	}

	if err := m.DeleteItem(id); err != nil {
		if errors.Is(err, menu.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "Item not found.")
			return
		}
		slog.Error("delete item failed", "item", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}

	if _, err := a.saveMenu(r, m); err != nil {
		slog.Error("store menu failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// MenuCategoryRename serves PUT /api/menu/categories/{id}. Only the
// display name changes; the category id and its item ids stay put.
func (a *Admin) MenuCategoryRename(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Body is not valid JSON.")
		return
	}
	if msg := validateCategoryName(req.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	m, err := a.loadMenu()
	if err != nil {
		menuLoadError(w, err)
		return
	}

	if err := m.RenameCategory(id, req.Name); err != nil {
		if errors.Is(err, menu.ErrCategoryNotFound) {
			writeError(w, http.StatusNotFound, "Category not found.")
			return
		}
		slog.Error("rename category failed", "category", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}

	if _, err := a.saveMenu(r, m); err != nil {
		slog.Error("store menu failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
