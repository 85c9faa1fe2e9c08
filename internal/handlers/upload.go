// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"tattiadmin/internal/metrics"
)

// maxUploadSize is the maximum allowed image upload size (15 MB).
const maxUploadSize = 15 << 20

// allowedUploadTypes defines MIME types accepted for upload. Everything
// is converted to WebP before storage.
var allowedUploadTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Upload serves POST /api/upload: multipart image in, public URL out.
// The image is converted to WebP and handed to the backend chain.
func (a *Admin) Upload(w http.ResponseWriter, r *http.Request) {
	if !a.uploads.Available() {
		writeError(w, http.StatusServiceUnavailable, "No upload backend is configured.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 15 MB.")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No image provided.")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		writeError(w, http.StatusUnsupportedMediaType, "Unsupported image type.")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read uploaded file.")
		return
	}

	result, err := a.convert(data)
	if err != nil {
		slog.Warn("image conversion failed", "filename", header.Filename, "error", err)
		writeError(w, http.StatusUnprocessableEntity, "Could not process image.")
		return
	}

	url, backend, err := a.uploads.Upload(r.Context(), result.Data, result.ContentType)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("none", "error").Inc()
		slog.Error("upload failed", "filename", header.Filename, "error", err)
		writeError(w, http.StatusBadGateway, "All upload backends failed.")
		return
	}

	metrics.UploadsTotal.WithLabelValues(backend, "ok").Inc()
	slog.Info("image uploaded", "backend", backend, "bytes", len(result.Data))
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
