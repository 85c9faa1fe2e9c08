// Integration tests for the document cache. They require a running Valkey
// instance and skip otherwise. Nil-cache behavior is tested everywhere.
package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func testClient(t *testing.T) *DocumentCache {
	t.Helper()

	host := os.Getenv("VALKEY_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("VALKEY_PORT")
	if port == "" {
		port = "6379"
	}

	client, err := ConnectValkey(host, port, os.Getenv("VALKEY_PASSWORD"))
	if err != nil {
		t.Skipf("skipping: valkey not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return NewDocumentCache(client, time.Minute)
}

func TestDocumentCacheRoundTrip(t *testing.T) {
	dc := testClient(t)
	ctx := context.Background()

	if _, ok := dc.Get(ctx, "test-menu"); ok {
		dc.Invalidate(ctx, "test-menu")
	}

	body := []byte(`{"Салаты": []}`)
	dc.Set(ctx, "test-menu", body)

	got, ok := dc.Get(ctx, "test-menu")
	if !ok {
		t.Fatal("expected cache hit after Set")
	}
	if string(got) != string(body) {
		t.Errorf("got %s, want %s", got, body)
	}

	dc.Invalidate(ctx, "test-menu")
	if _, ok := dc.Get(ctx, "test-menu"); ok {
		t.Error("expected miss after Invalidate")
	}
}

func TestDocumentCacheInvalidateAll(t *testing.T) {
	dc := testClient(t)
	ctx := context.Background()

	dc.Set(ctx, "test-a", []byte(`1`))
	dc.Set(ctx, "test-b", []byte(`2`))
	dc.InvalidateAll(ctx)

	if _, ok := dc.Get(ctx, "test-a"); ok {
		t.Error("test-a survived InvalidateAll")
	}
	if _, ok := dc.Get(ctx, "test-b"); ok {
		t.Error("test-b survived InvalidateAll")
	}
}

func TestNilDocumentCache(t *testing.T) {
	// A nil cache must be a silent no-op so the app runs without Valkey.
	var dc *DocumentCache
	ctx := context.Background()

	dc.Set(ctx, "x", []byte(`1`))
	if _, ok := dc.Get(ctx, "x"); ok {
		t.Error("nil cache returned a hit")
	}
	dc.Invalidate(ctx, "x")
	dc.InvalidateAll(ctx)
}
