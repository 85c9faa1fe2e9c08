// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"resty.dev/v3"
)

const imgbbEndpoint = "https://api.imgbb.com/1/upload"

// ImgbbStrategy uploads images to the imgbb hosting API. It serves as
// the fallback backend when object storage is unavailable.
type ImgbbStrategy struct {
	client   *resty.Client
	endpoint string
	apiKey   string
}

type imgbbResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewImgbbStrategy builds an imgbb backend. Returns nil when no API key
// is configured so the chain skips it.
func NewImgbbStrategy(apiKey string) Strategy {
	if apiKey == "" {
		return nil
	}
	client := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second)
	return &ImgbbStrategy{client: client, endpoint: imgbbEndpoint, apiKey: apiKey}
}

func (s *ImgbbStrategy) Name() string { return "imgbb" }

func (s *ImgbbStrategy) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	var out imgbbResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("key", s.apiKey).
		SetFileReader("image", "image.webp", bytes.NewReader(data)).
		SetResult(&out).
		SetError(&out).
		Post(s.endpoint)
	if err != nil {
		return "", fmt.Errorf("imgbb request: %w", err)
	}
	if resp.IsError() {
		if out.Error.Message != "" {
			return "", fmt.Errorf("imgbb: %s (status %d)", out.Error.Message, resp.StatusCode())
		}
		return "", fmt.Errorf("imgbb: unexpected status %d", resp.StatusCode())
	}
	if !out.Success || out.Data.URL == "" {
		return "", errors.New("imgbb: response missing image URL")
	}
	return out.Data.URL, nil
}
