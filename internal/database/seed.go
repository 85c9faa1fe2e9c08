package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// seedMenu is a small legacy-shaped menu so a fresh development install has
// something to edit.
const seedMenu = `{
  "Салаты": [
    {"id": 1, "name": "Греческий", "price": 350, "description": ["свежие овощи", "сыр фета"], "image": ""},
    {"id": 2, "name": "Цезарь", "price": 420, "description": ["курица", "пармезан"], "image": ""}
  ],
  "Десерты": [
    {"id": 1, "name": "Чизкейк", "price": 280, "description": [], "image": ""}
  ]
}`

const seedReviews = `[
  {"id": "seed-1", "name": "Анна", "reviewText": "Очень вкусно!", "rating": 5, "image": ""}
]`

// Seed populates the document store with initial development data.
// It inserts a sample menu and reviews document if no documents exist yet.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&count); err != nil {
		return fmt.Errorf("seed check documents: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	seeds := map[string]string{
		"menu":    seedMenu,
		"reviews": seedReviews,
	}
	for name, body := range seeds {
		if _, err := db.Exec(`
			INSERT INTO documents (name, body) VALUES ($1, $2)
		`, name, body); err != nil {
			return fmt.Errorf("seed insert %s: %w", name, err)
		}
	}

	slog.Info("database seeded with sample documents", "documents", len(seeds))
	return nil
}
