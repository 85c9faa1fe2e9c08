// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package upload

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resty.dev/v3"
)

type fakeStrategy struct {
	name string
	url  string
	err  error
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func TestChainFirstSuccess(t *testing.T) {
	chain := NewChain(
		&fakeStrategy{name: "a", url: "https://a.example/1.webp"},
		&fakeStrategy{name: "b", url: "https://b.example/1.webp"},
	)

	url, backend, err := chain.Upload(context.Background(), []byte("img"), "image/webp")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "https://a.example/1.webp" {
		t.Errorf("url = %q, want first backend's URL", url)
	}
	if backend != "a" {
		t.Errorf("backend = %q, want %q", backend, "a")
	}
}

func TestChainFallsBack(t *testing.T) {
	chain := NewChain(
		&fakeStrategy{name: "a", err: errors.New("bucket offline")},
		&fakeStrategy{name: "b", url: "https://b.example/1.webp"},
	)

	url, backend, err := chain.Upload(context.Background(), []byte("img"), "image/webp")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "https://b.example/1.webp" || backend != "b" {
		t.Errorf("got (%q, %q), want fallback backend", url, backend)
	}
}

func TestChainAllFail(t *testing.T) {
	chain := NewChain(
		&fakeStrategy{name: "a", err: errors.New("bucket offline")},
		&fakeStrategy{name: "b", err: errors.New("quota exceeded")},
	)

	_, _, err := chain.Upload(context.Background(), []byte("img"), "image/webp")
	if err == nil {
		t.Fatal("expected error when every backend fails")
	}
	if !strings.Contains(err.Error(), "bucket offline") || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("error %q should mention every backend failure", err)
	}
}

func TestChainSkipsNilStrategies(t *testing.T) {
	chain := NewChain(nil, &fakeStrategy{name: "b", url: "https://b.example/1.webp"}, nil)
	if !chain.Available() {
		t.Fatal("chain with one strategy must be available")
	}

	_, backend, err := chain.Upload(context.Background(), []byte("img"), "image/webp")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if backend != "b" {
		t.Errorf("backend = %q, want %q", backend, "b")
	}
}

func TestChainEmpty(t *testing.T) {
	chain := NewChain()
	if chain.Available() {
		t.Error("empty chain must not be available")
	}
	if _, _, err := chain.Upload(context.Background(), nil, ""); !errors.Is(err, ErrNoStrategies) {
		t.Errorf("err = %v, want ErrNoStrategies", err)
	}
}

func TestImgbbStrategyRequiresKey(t *testing.T) {
	if s := NewImgbbStrategy(""); s != nil {
		t.Error("strategy without an API key must be nil")
	}
}

func newTestImgbb(endpoint, key string) *ImgbbStrategy {
	return &ImgbbStrategy{
		client:   resty.New().SetTimeout(5 * time.Second),
		endpoint: endpoint,
		apiKey:   key,
	}
}

func TestImgbbUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "secret" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success":false,"error":{"message":"Invalid API key"}}`))
			return
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("multipart parse: %v", err)
		}
		if _, _, err := r.FormFile("image"); err != nil {
			t.Errorf("image part missing: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"url":"https://i.ibb.co/abc/image.webp"}}`))
	}))
	defer srv.Close()

	s := newTestImgbb(srv.URL, "secret")
	url, err := s.Upload(context.Background(), []byte("webp-bytes"), "image/webp")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "https://i.ibb.co/abc/image.webp" {
		t.Errorf("url = %q", url)
	}
}

func TestImgbbUploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":{"message":"Invalid API key"}}`))
	}))
	defer srv.Close()

	s := newTestImgbb(srv.URL, "wrong")
	if _, err := s.Upload(context.Background(), []byte("webp-bytes"), "image/webp"); err == nil {
		t.Fatal("expected error for rejected upload")
	}
}

func TestImgbbUploadMissingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer srv.Close()

	s := newTestImgbb(srv.URL, "secret")
	if _, err := s.Upload(context.Background(), []byte("webp-bytes"), "image/webp"); err == nil {
		t.Fatal("expected error when the response has no URL")
	}
}
