// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the catalog admin API.
// Handlers are grouped by concern (documents, menu, catalogs, reviews,
// upload) and receive their dependencies through the handler struct.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"tattiadmin/internal/cache"
	"tattiadmin/internal/imaging"
)

// Names of the documents with typed editor views. Every other document
// goes through the raw /api/data endpoints.
const (
	docMenu     = "menu"
	docReviews  = "reviews"
	docCakes    = "cakes"
	docPackages = "servicePackages"
	docInfo     = "info"
	docEaster   = "easter"
	docNewYear  = "new-year"
)

// Documents is the storage surface handlers need. *store.DocumentStore
// implements it.
type Documents interface {
	Get(name string) (json.RawMessage, error)
	Put(name string, body json.RawMessage) error
	Append(name string, entry json.RawMessage) error
}

// Uploader stores a processed image and reports which backend took it.
// *upload.Chain implements it.
type Uploader interface {
	Available() bool
	Upload(ctx context.Context, data []byte, contentType string) (url, backend string, err error)
}

// Admin groups the admin API handlers and their dependencies.
type Admin struct {
	docs     Documents
	docCache *cache.DocumentCache
	uploads  Uploader

	// convert turns an uploaded image into WebP. Swappable in tests so
	// handler tests do not need libvips.
	convert func([]byte) (*imaging.Result, error)
}

// NewAdmin creates the handler group. docCache may be nil (cache
// disabled) and uploads may be an empty chain (no backends configured).
func NewAdmin(docs Documents, docCache *cache.DocumentCache, uploads Uploader) *Admin {
	return &Admin{
		docs:     docs,
		docCache: docCache,
		uploads:  uploads,
		convert:  imaging.ToWebP,
	}
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// writeRaw sends pre-encoded JSON as-is, preserving the stored key order.
func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// writeError sends a JSON error envelope.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
