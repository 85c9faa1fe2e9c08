// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package upload stores processed media on one of several hosting
// backends. Backends are tried in order until one succeeds, so a
// misconfigured or unavailable primary does not block uploads.
package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNoStrategies is returned by a chain with no configured backends.
var ErrNoStrategies = errors.New("upload: no strategies configured")

// Strategy stores an image and returns its public URL.
type Strategy interface {
	Name() string
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

// Chain tries each strategy in order and returns the first success.
type Chain struct {
	strategies []Strategy
}

// NewChain builds a chain from the given strategies. Nil entries are
// skipped so callers can pass optional backends unconditionally.
func NewChain(strategies ...Strategy) *Chain {
	c := &Chain{}
	for _, s := range strategies {
		if s != nil {
			c.strategies = append(c.strategies, s)
		}
	}
	return c
}

// Available reports whether at least one backend is configured.
func (c *Chain) Available() bool {
	return len(c.strategies) > 0
}

// Upload stores the image on the first backend that accepts it.
// Failures are collected; the returned error joins every backend's
// error when all of them fail.
func (c *Chain) Upload(ctx context.Context, data []byte, contentType string) (string, string, error) {
	if len(c.strategies) == 0 {
		return "", "", ErrNoStrategies
	}

	var errs []error
	for _, s := range c.strategies {
		url, err := s.Upload(ctx, data, contentType)
		if err != nil {
			slog.Warn("upload backend failed", "backend", s.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		return url, s.Name(), nil
	}

	return "", "", fmt.Errorf("upload: all backends failed: %w", errors.Join(errs...))
}
