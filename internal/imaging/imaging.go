// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging converts uploaded images to WebP using libvips.
// Catalog photos are served straight to Telegram WebView clients, so a
// single capped-width WebP rendition per upload is enough.
package imaging

import (
	"fmt"
	"log/slog"

	"github.com/davidbyttow/govips/v2/vips"
)

const (
	// MaxWidth caps the output width; larger uploads are scaled down,
	// smaller ones are kept at their original width.
	MaxWidth = 1280

	// Quality is the lossy WebP quality used for all conversions.
	Quality = 80
)

// Result holds a converted image ready for upload.
type Result struct {
	Width       int
	Height      int
	Data        []byte // WebP-encoded image bytes
	ContentType string // Always "image/webp"
}

// Startup initialises the libvips library. Call once at application start.
// concurrency controls the number of libvips worker threads (0 = auto).
func Startup(concurrency int) {
	cfg := &vips.Config{
		ConcurrencyLevel: concurrency,
		MaxCacheSize:     100,
		MaxCacheMem:      50 * 1024 * 1024, // 50 MB
	}
	vips.LoggingSettings(nil, vips.LogLevelWarning)
	vips.Startup(cfg)
	slog.Info("libvips started", "version", vips.Version)
}

// Shutdown releases libvips resources. Call at application shutdown.
func Shutdown() {
	vips.Shutdown()
}

// ToWebP converts the source image to a WebP no wider than MaxWidth.
// EXIF orientation is applied and metadata stripped.
func ToWebP(original []byte) (*Result, error) {
	// Probe original dimensions without fully decoding.
	probe, err := vips.NewImageFromBuffer(original)
	if err != nil {
		return nil, fmt.Errorf("imaging: probe failed: %w", err)
	}
	width := probe.Width()
	height := probe.Height()
	format := probe.Format()
	probe.Close()

	// Already WebP and within bounds: keep the original bytes.
	if format == vips.ImageTypeWEBP && width <= MaxWidth {
		return &Result{Width: width, Height: height, Data: original, ContentType: "image/webp"}, nil
	}

	if width > MaxWidth {
		width = MaxWidth
	}

	img, err := vips.NewThumbnailFromBuffer(original, width, 0, vips.InterestingNone)
	if err != nil {
		return nil, fmt.Errorf("imaging: thumbnail (%dpx): %w", width, err)
	}
	defer img.Close()

	if err := img.AutoRotate(); err != nil {
		return nil, fmt.Errorf("imaging: autorotate: %w", err)
	}

	params := vips.NewWebpExportParams()
	params.Quality = Quality
	params.Lossless = false
	params.StripMetadata = true

	buf, meta, err := img.ExportWebp(params)
	if err != nil {
		return nil, fmt.Errorf("imaging: export: %w", err)
	}

	return &Result{
		Width:       meta.Width,
		Height:      meta.Height,
		Data:        buf,
		ContentType: "image/webp",
	}, nil
}
