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
	"tattiadmin/internal/metrics"
	"tattiadmin/internal/store"
)

// ReviewsGet serves GET /api/reviews.
func (a *Admin) ReviewsGet(w http.ResponseWriter, r *http.Request) {
	body, err := a.loadCatalogDoc(docReviews)
	if err != nil {
		slog.Error("load reviews failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}
	reviews := catalog.ParseReviews(body)
	if reviews == nil {
		reviews = []catalog.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

// ReviewCreate serves POST /api/reviews — validate one review, assign it
// an id and append it to the list document.
func (a *Admin) ReviewCreate(w http.ResponseWriter, r *http.Request) {
	var rev catalog.Review
	if err := json.NewDecoder(r.Body).Decode(&rev); err != nil {
		writeError(w, http.StatusBadRequest, "Body is not a valid review.")
		return
	}
	if msg := validateReview(rev.Name, rev.ReviewText, rev.Rating); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	rev = rev.WithID()
	entry, err := json.Marshal(rev)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not encode review.")
		return
	}

	if err := a.docs.Append(docReviews, entry); err != nil {
		if errors.Is(err, store.ErrNotList) {
			writeError(w, http.StatusConflict, "Reviews document is not a list.")
			return
		}
		slog.Error("append review failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}
	metrics.DocumentWritesTotal.WithLabelValues(docReviews).Inc()
	a.docCache.Invalidate(r.Context(), docReviews)
	writeJSON(w, http.StatusCreated, rev)
}

// ReviewsPut serves PUT /api/reviews — rewrite the whole list. This is
// how the editor deletes or edits reviews: it sends back the remaining
// list. Reviews without ids get one on the way through.
func (a *Admin) ReviewsPut(w http.ResponseWriter, r *http.Request) {
	var reviews []catalog.Review
	if err := json.NewDecoder(r.Body).Decode(&reviews); err != nil {
		writeError(w, http.StatusBadRequest, "Body is not a valid review list.")
		return
	}

	for i, rev := range reviews {
		if msg := validateReview(rev.Name, rev.ReviewText, rev.Rating); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		reviews[i] = rev.WithID()
	}

	body, err := json.Marshal(reviews)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not encode reviews.")
		return
	}
	if err := a.putDocument(r, docReviews, body); err != nil {
		slog.Error("store reviews failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Storage error.")
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}
