// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"tattiadmin/internal/catalog"
	"tattiadmin/internal/store"
)

// loadCatalogDoc reads a catalog document, treating a missing one as
// empty so the editors start from a blank list.
func (a *Admin) loadCatalogDoc(name string) ([]byte, error) {
	body, err := a.docs.Get(name)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return body, err
}

// CakesGet serves GET /api/cakes — row-editor view of the cakes document.
func (a *Admin) CakesGet(w http.ResponseWriter, r *http.Request) {
	a.keyedGet(w, docCakes)
}

// CakesPut serves PUT /api/cakes. Cakes always store an "images" array.
func (a *Admin) CakesPut(w http.ResponseWriter, r *http.Request) {
	a.keyedPut(w, r, docCakes, catalog.ImagesArray)
}

// keyedGet loads a keyed catalog document and writes its row view.
func (a *Admin) keyedGet(w http.ResponseWriter, name string) {
	body, err := a.loadCatalogDoc(name)
	if err != nil {
		slog.Error("load catalog failed", "document", name, "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}
	rows := catalog.ParseKeyed(body)
	if rows == nil {
		rows = []catalog.Row{}
	}
	writeJSON(w, http.StatusOK, rows)
}

// keyedPut rewrites a keyed catalog document from rows using the
// document's image style.
func (a *Admin) keyedPut(w http.ResponseWriter, r *http.Request, name string, style catalog.ImageStyle) {
	var rows []catalog.Row
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		writeError(w, http.StatusBadRequest, "Body is not a valid row list.")
		return
	}

	body, err := catalog.MarshalKeyed(rows, style)
	if err != nil {
		slog.Error("marshal catalog failed", "document", name, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not encode document.")
		return
	}
	if err := a.putDocument(r, name, body); err != nil {
		slog.Error("store catalog failed", "document", name, "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// EasterGet serves GET /api/easter — the Easter specials row view.
func (a *Admin) EasterGet(w http.ResponseWriter, r *http.Request) {
	a.keyedGet(w, docEaster)
}

// EasterPut serves PUT /api/easter. Easter entries keep a single
// "image" string unless a row carries several images.
func (a *Admin) EasterPut(w http.ResponseWriter, r *http.Request) {
	a.keyedPut(w, r, docEaster, catalog.ImageFlexible)
}

// NewYearGet serves GET /api/new-year — the New-Year specials row view.
func (a *Admin) NewYearGet(w http.ResponseWriter, r *http.Request) {
	a.keyedGet(w, docNewYear)
}

// NewYearPut serves PUT /api/new-year. New-Year entries store only the
// first image as an "image" string.
func (a *Admin) NewYearPut(w http.ResponseWriter, r *http.Request) {
	a.keyedPut(w, r, docNewYear, catalog.ImageString)
}

// PackagesGet serves GET /api/service-packages.
func (a *Admin) PackagesGet(w http.ResponseWriter, r *http.Request) {
	body, err := a.loadCatalogDoc(docPackages)
	if err != nil {
		slog.Error("load service packages failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}
	writeJSON(w, http.StatusOK, catalog.ParseServicePackages(body))
}

// PackagesPut serves PUT /api/service-packages.
func (a *Admin) PackagesPut(w http.ResponseWriter, r *http.Request) {
	var sp catalog.ServicePackages
	if err := json.NewDecoder(r.Body).Decode(&sp); err != nil {
		writeError(w, http.StatusBadRequest, "Body is not a valid package list.")
		return
	}

	body, err := sp.Marshal()
	if err != nil {
		slog.Error("marshal service packages failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not encode document.")
		return
	}
	if err := a.putDocument(r, docPackages, body); err != nil {
		slog.Error("store service packages failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// InfoGet serves GET /api/info — the gallery image list.
func (a *Admin) InfoGet(w http.ResponseWriter, r *http.Request) {
	body, err := a.loadCatalogDoc(docInfo)
	if err != nil {
		slog.Error("load info failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"images": catalog.ParseInfoImages(body)})
}

// InfoPut serves PUT /api/info — rewrite the gallery image list.
func (a *Admin) InfoPut(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Images []string `json:"images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Body is not a valid image list.")
		return
	}

	body, err := catalog.MarshalInfoImages(req.Images)
	if err != nil {
		slog.Error("marshal info failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not encode document.")
		return
	}
	if err := a.putDocument(r, docInfo, body); err != nil {
		slog.Error("store info failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
