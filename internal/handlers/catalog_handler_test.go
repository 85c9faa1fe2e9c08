// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"tattiadmin/internal/catalog"
	"tattiadmin/internal/metrics"
)

func TestCakesGet(t *testing.T) {
	docs := newFakeDocs()
	docs.docs["cakes"] = json.RawMessage(`{
		"napoleon": {"id": 10, "name": "Наполеон", "price": 1200, "images": ["n.webp"]},
		"medovik": {"id": 11, "name": "Медовик", "price": 1100}
	}`)
	_, srv := newTestServer(t, docs, noUploader{})

	resp := do(t, http.MethodGet, srv.URL+"/api/cakes", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	rows := decode[[]catalog.Row](t, resp)
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0].Key != "napoleon" || rows[1].Key != "medovik" {
		t.Errorf("key order = %s, %s", rows[0].Key, rows[1].Key)
	}
}

func TestCakesGetEmpty(t *testing.T) {
	_, srv := newTestServer(t, newFakeDocs(), noUploader{})

	resp := do(t, http.MethodGet, srv.URL+"/api/cakes", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if strings.TrimSpace(string(body)) != "[]" {
		t.Errorf("body = %s, want []", body)
	}
}

func TestCakesPut(t *testing.T) {
	docs := newFakeDocs()
	_, srv := newTestServer(t, docs, noUploader{})

	resp := do(t, http.MethodPut, srv.URL+"/api/cakes",
		`[{"key": "napoleon", "id": 10, "name": "Наполеон", "price": 1200, "images": ["n.webp"]}]`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	rows := catalog.ParseKeyed(docs.docs["cakes"])
	if len(rows) != 1 || rows[0].Name != "Наполеон" || rows[0].ID != 10 {
		t.Errorf("stored rows = %+v", rows)
	}
}

func TestEasterGet(t *testing.T) {
	docs := newFakeDocs()
	docs.docs["easter"] = json.RawMessage(`{
		"kulich": {"id": 1, "name": "Кулич", "price": 500, "image": "k.webp"},
		"pashalnyy-nabor": {"id": 2, "name": "Пасхальный набор", "price": 1500, "image": ["p1.webp", "p2.webp"]}
	}`)
	_, srv := newTestServer(t, docs, noUploader{})

	resp := do(t, http.MethodGet, srv.URL+"/api/easter", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	rows := decode[[]catalog.Row](t, resp)
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if len(rows[1].Images) != 2 {
		t.Errorf("images = %v, want both array entries", rows[1].Images)
	}
}

func TestEasterPutKeepsFlexibleImageShape(t *testing.T) {
	docs := newFakeDocs()
	_, srv := newTestServer(t, docs, noUploader{})

	resp := do(t, http.MethodPut, srv.URL+"/api/easter",
		`[{"key": "kulich", "id": 1, "name": "Кулич", "price": 500, "images": ["k.webp"]},
		  {"key": "nabor", "id": 2, "name": "Набор", "price": 1500, "images": ["p1.webp", "p2.webp"]}]`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var stored map[string]map[string]json.RawMessage
	if err := json.Unmarshal(docs.docs["easter"], &stored); err != nil {
		t.Fatal(err)
	}
	// One image: plain string. Several: array.
	if string(stored["kulich"]["image"]) != `"k.webp"` {
		t.Errorf("kulich image = %s, want string", stored["kulich"]["image"])
	}
	if string(stored["nabor"]["image"]) != `["p1.webp","p2.webp"]` {
		t.Errorf("nabor image = %s, want array", stored["nabor"]["image"])
	}
}

func TestNewYearPutStoresFirstImageOnly(t *testing.T) {
	docs := newFakeDocs()
	_, srv := newTestServer(t, docs, noUploader{})

	resp := do(t, http.MethodPut, srv.URL+"/api/new-year",
		`[{"key": "olivie", "id": 1, "name": "Оливье", "price": 400, "images": ["o1.webp", "o2.webp"]}]`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var stored map[string]map[string]json.RawMessage
	if err := json.Unmarshal(docs.docs["new-year"], &stored); err != nil {
		t.Fatal(err)
	}
	if string(stored["olivie"]["image"]) != `"o1.webp"` {
		t.Errorf("olivie image = %s, want first image as string", stored["olivie"]["image"])
	}

	resp = do(t, http.MethodGet, srv.URL+"/api/new-year", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d", resp.StatusCode)
	}
	rows := decode[[]catalog.Row](t, resp)
	if len(rows) != 1 || rows[0].Name != "Оливье" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestReviewsCreate(t *testing.T) {
	docs := newFakeDocs()
	_, srv := newTestServer(t, docs, noUploader{})

	resp := do(t, http.MethodPost, srv.URL+"/api/reviews",
		`{"name": "Анна", "reviewText": "Очень вкусно!", "rating": 5}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	rev := decode[catalog.Review](t, resp)
	if rev.ID == "" {
		t.Error("created review must get an id")
	}

	stored := catalog.ParseReviews(docs.docs["reviews"])
	if len(stored) != 1 || stored[0].Name != "Анна" {
		t.Errorf("stored reviews = %+v", stored)
	}
}

func TestReviewsCreateCountsWrite(t *testing.T) {
	_, srv := newTestServer(t, newFakeDocs(), noUploader{})

	counter := metrics.DocumentWritesTotal.WithLabelValues("reviews")
	before := testutil.ToFloat64(counter)

	resp := do(t, http.MethodPost, srv.URL+"/api/reviews",
		`{"name": "Борис", "reviewText": "Неплохо", "rating": 4}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("document writes = %v, want %v", got, before+1)
	}
}

func TestReviewsCreateValidation(t *testing.T) {
	_, srv := newTestServer(t, newFakeDocs(), noUploader{})

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"reviewText": "ok", "rating": 3}`},
		{"missing text", `{"name": "Анна", "rating": 3}`},
		{"rating too low", `{"name": "Анна", "reviewText": "ok", "rating": 0}`},
		{"rating too high", `{"name": "Анна", "reviewText": "ok", "rating": 6}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, srv.URL+"/api/reviews", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestReviewsPutRewrites(t *testing.T) {
	docs := newFakeDocs()
	docs.docs["reviews"] = json.RawMessage(
		`[{"id": "a", "name": "Анна", "reviewText": "Вкусно", "rating": 5},
		  {"id": "b", "name": "Борис", "reviewText": "Неплохо", "rating": 4}]`)
	_, srv := newTestServer(t, docs, noUploader{})

	// Editor deletes Борис by sending back the remaining list.
	resp := do(t, http.MethodPut, srv.URL+"/api/reviews",
		`[{"id": "a", "name": "Анна", "reviewText": "Вкусно", "rating": 5}]`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	stored := catalog.ParseReviews(docs.docs["reviews"])
	if len(stored) != 1 || stored[0].ID != "a" {
		t.Errorf("stored reviews = %+v", stored)
	}
}

// multipartImage builds a multipart body with one image part carrying an
// explicit content type.
func multipartImage(t *testing.T, contentType string, data []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="image"; filename="photo.jpg"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(data)
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestUpload(t *testing.T) {
	_, srv := newTestServer(t, newFakeDocs(), &fakeUploader{url: "https://cdn.example/u.webp"})

	body, ct := multipartImage(t, "image/jpeg", []byte("jpeg-bytes"))
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/upload", body)
	req.Header.Set("Content-Type", ct)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	out := decode[map[string]string](t, resp)
	if out["url"] != "https://cdn.example/u.webp" {
		t.Errorf("url = %q", out["url"])
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	_, srv := newTestServer(t, newFakeDocs(), &fakeUploader{url: "https://cdn.example/u.webp"})

	body, ct := multipartImage(t, "application/pdf", []byte("%PDF"))
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/upload", body)
	req.Header.Set("Content-Type", ct)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", resp.StatusCode)
	}
}

func TestUploadNoBackends(t *testing.T) {
	_, srv := newTestServer(t, newFakeDocs(), noUploader{})

	body, ct := multipartImage(t, "image/jpeg", []byte("jpeg-bytes"))
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/upload", body)
	req.Header.Set("Content-Type", ct)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

func TestUploadAllBackendsFail(t *testing.T) {
	_, srv := newTestServer(t, newFakeDocs(), &fakeUploader{err: errors.New("offline")})

	body, ct := multipartImage(t, "image/jpeg", []byte("jpeg-bytes"))
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/upload", body)
	req.Header.Set("Content-Type", ct)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
}
