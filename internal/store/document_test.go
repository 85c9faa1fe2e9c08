// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Integration tests for the document store. They require a running
// PostgreSQL instance and skip otherwise.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"tattiadmin/internal/database"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "tattiadmin")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "tattiadmin")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := database.Connect(dsn)
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// testDocName returns a unique document name so parallel test runs don't
// collide, and registers cleanup.
func testDocName(t *testing.T, db *sql.DB) string {
	t.Helper()
	name := fmt.Sprintf("test-%d", time.Now().UnixNano())
	t.Cleanup(func() {
		db.Exec("DELETE FROM documents WHERE name = $1", name)
	})
	return name
}

func TestDocumentPutGet(t *testing.T) {
	db := testDB(t)
	s := NewDocumentStore(db)
	name := testDocName(t, db)

	if _, err := s.Get(name); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get before Put: error = %v, want ErrNotFound", err)
	}

	body := json.RawMessage(`{"Салаты": []}`)
	if err := s.Put(name, body); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(name)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(got, &doc); err != nil {
		t.Fatalf("stored body not valid JSON: %v", err)
	}
	if _, ok := doc["Салаты"]; !ok {
		t.Errorf("stored body = %s", got)
	}

	// Put is whole-document overwrite.
	if err := s.Put(name, json.RawMessage(`{"a": 1}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _ = s.Get(name)
	doc = nil
	json.Unmarshal(got, &doc)
	if _, ok := doc["Салаты"]; ok {
		t.Error("overwrite kept old keys")
	}
}

func TestDocumentAppend(t *testing.T) {
	db := testDB(t)
	s := NewDocumentStore(db)
	name := testDocName(t, db)

	// Appending to a missing document creates a one-element list.
	if err := s.Append(name, json.RawMessage(`{"n": 1}`)); err != nil {
		t.Fatalf("Append to missing: %v", err)
	}
	if err := s.Append(name, json.RawMessage(`{"n": 2}`)); err != nil {
		t.Fatalf("second Append: %v", err)
	}

	got, err := s.Get(name)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	var list []struct {
		N int `json:"n"`
	}
	if err := json.Unmarshal(got, &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(list) != 2 || list[0].N != 1 || list[1].N != 2 {
		t.Errorf("list = %+v", list)
	}
}

func TestDocumentAppendRejectsNonList(t *testing.T) {
	db := testDB(t)
	s := NewDocumentStore(db)
	name := testDocName(t, db)

	if err := s.Put(name, json.RawMessage(`{"not": "a list"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Append(name, json.RawMessage(`1`)); !errors.Is(err, ErrNotList) {
		t.Errorf("error = %v, want ErrNotList", err)
	}
}

func TestDocumentList(t *testing.T) {
	db := testDB(t)
	s := NewDocumentStore(db)
	name := testDocName(t, db)

	if err := s.Put(name, json.RawMessage(`[]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	docs, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	found := false
	for _, d := range docs {
		if d.Name == name {
			found = true
			if d.UpdatedAt.IsZero() {
				t.Error("UpdatedAt is zero")
			}
		}
	}
	if !found {
		t.Errorf("document %s not in listing", name)
	}
}
