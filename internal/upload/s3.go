// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package upload

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tattiadmin/internal/storage"
)

// S3Strategy stores images on S3-compatible object storage under
// uploads/<uuid>.webp and serves them from the public bucket.
type S3Strategy struct {
	client *storage.Client
}

// NewS3Strategy wraps a storage client. Returns nil when the client is
// nil (storage not configured) so the chain skips it.
func NewS3Strategy(client *storage.Client) Strategy {
	if client == nil {
		return nil
	}
	return &S3Strategy{client: client}
}

func (s *S3Strategy) Name() string { return "s3" }

func (s *S3Strategy) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("uploads/%s.webp", uuid.NewString())
	if err := s.client.Upload(ctx, key, contentType, data); err != nil {
		return "", err
	}
	return s.client.FileURL(key), nil
}
