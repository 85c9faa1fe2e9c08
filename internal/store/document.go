// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access for the named JSON documents the
// admin console edits (menu, cakes, reviews, …). Documents are schema-free:
// the store moves whole bodies in and out and never interprets them beyond
// what Append needs.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Errors callers branch on.
var (
	// ErrNotFound is returned when no document with the given name exists.
	ErrNotFound = errors.New("store: document not found")
	// ErrNotList is returned by Append when the stored document is not a
	// JSON array.
	ErrNotList = errors.New("store: document is not a list")
)

// Document describes one stored document without its body.
type Document struct {
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DocumentStore handles all document-related database operations.
type DocumentStore struct {
	db *sql.DB
}

// NewDocumentStore creates a new DocumentStore with the given database
// connection.
func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Get returns the body of the named document.
func (s *DocumentStore) Get(name string) (json.RawMessage, error) {
	var body []byte
	err := s.db.QueryRow(`
		SELECT body FROM documents WHERE name = $1
	`, name).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", name, err)
	}
	return body, nil
}

// Put overwrites the named document with the given body, creating it if
// needed. Whole-document semantics: last write wins, no version check.
func (s *DocumentStore) Put(name string, body json.RawMessage) error {
	_, err := s.db.Exec(`
		INSERT INTO documents (name, body, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = now()
	`, name, []byte(body))
	if err != nil {
		return fmt.Errorf("put document %s: %w", name, err)
	}
	return nil
}

// Append adds one record to the end of a list-shaped document inside a
// transaction. A missing document becomes a one-element list; a document
// that exists but is not a JSON array yields ErrNotList.
func (s *DocumentStore) Append(name string, entry json.RawMessage) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("append document %s: begin: %w", name, err)
	}
	defer tx.Rollback()

	var body []byte
	err = tx.QueryRow(`
		SELECT body FROM documents WHERE name = $1 FOR UPDATE
	`, name).Scan(&body)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("append document %s: read: %w", name, err)
	}

	list := []json.RawMessage{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &list); err != nil {
			return ErrNotList
		}
	}
	list = append(list, entry)

	next, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("append document %s: marshal: %w", name, err)
	}

	if _, err := tx.Exec(`
		INSERT INTO documents (name, body, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = now()
	`, name, next); err != nil {
		return fmt.Errorf("append document %s: write: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("append document %s: commit: %w", name, err)
	}
	return nil
}

// List returns all stored documents, most recently updated first.
func (s *DocumentStore) List() ([]Document, error) {
	rows, err := s.db.Query(`
		SELECT name, updated_at FROM documents ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.Name, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
