// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tattiadmin/internal/metrics"
	"tattiadmin/internal/store"
)

// maxDocumentSize caps a stored document body (2 MB). The catalog
// documents are tens of kilobytes; anything bigger is a mistake.
const maxDocumentSize = 2 << 20

// PublicDocument serves GET /{name}.json — the site-facing read path.
// Responses come from the cache when possible and carry the stored body
// byte-for-byte.
func (a *Admin) PublicDocument(w http.ResponseWriter, r *http.Request) {
	name := cleanDocumentName(chi.URLParam(r, "name"))
	if name == "" {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}

	if body, ok := a.docCache.Get(r.Context(), name); ok {
		metrics.DocumentReadsTotal.WithLabelValues("cache").Inc()
		writeRaw(w, http.StatusOK, body)
		return
	}

	body, err := a.docs.Get(name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Not found.")
			return
		}
		slog.Error("load document failed", "document", name, "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}

	metrics.DocumentReadsTotal.WithLabelValues("store").Inc()
	a.docCache.Set(r.Context(), name, body)
	writeRaw(w, http.StatusOK, body)
}

// DataGet serves GET /api/data/{name} — the raw admin read.
func (a *Admin) DataGet(w http.ResponseWriter, r *http.Request) {
	name := cleanDocumentName(chi.URLParam(r, "name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "Invalid document name.")
		return
	}

	body, err := a.docs.Get(name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Document not found.")
			return
		}
		slog.Error("load document failed", "document", name, "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}
	writeRaw(w, http.StatusOK, body)
}

// DataPut serves PUT /api/data/{name} — replace the whole document.
// The body must be valid JSON; it is stored verbatim.
func (a *Admin) DataPut(w http.ResponseWriter, r *http.Request) {
	name := cleanDocumentName(chi.URLParam(r, "name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "Invalid document name.")
		return
	}

	body, ok := a.readDocumentBody(w, r)
	if !ok {
		return
	}

	if err := a.putDocument(r, name, body); err != nil {
		slog.Error("store document failed", "document", name, "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DataAppend serves POST /api/data/{name} — append one record to a list
// document. A missing document becomes a one-element list.
func (a *Admin) DataAppend(w http.ResponseWriter, r *http.Request) {
	name := cleanDocumentName(chi.URLParam(r, "name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "Invalid document name.")
		return
	}

	entry, ok := a.readDocumentBody(w, r)
	if !ok {
		return
	}

	if err := a.docs.Append(name, entry); err != nil {
		if errors.Is(err, store.ErrNotList) {
			writeError(w, http.StatusConflict, "Document is not a list.")
			return
		}
		slog.Error("append to document failed", "document", name, "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}

	metrics.DocumentWritesTotal.WithLabelValues(name).Inc()
	a.docCache.Invalidate(r.Context(), name)
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

// readDocumentBody reads and validates a JSON request body. On failure
// it writes the error response and returns ok=false.
func (a *Admin) readDocumentBody(w http.ResponseWriter, r *http.Request) (json.RawMessage, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentSize+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read request body.")
		return nil, false
	}
	if len(body) > maxDocumentSize {
		writeError(w, http.StatusRequestEntityTooLarge, "Document too large (max 2 MB).")
		return nil, false
	}
	if !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "Body is not valid JSON.")
		return nil, false
	}
	return body, true
}

// putDocument stores a document body and keeps the cache and write
// counter in step. Every save path funnels through here.
func (a *Admin) putDocument(r *http.Request, name string, body json.RawMessage) error {
	if err := a.docs.Put(name, body); err != nil {
		return err
	}
	metrics.DocumentWritesTotal.WithLabelValues(name).Inc()
	a.docCache.Invalidate(r.Context(), name)
	return nil
}
