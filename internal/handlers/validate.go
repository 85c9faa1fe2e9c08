// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation limits for editor inputs.
const (
	maxDocNameLen    = 100
	maxTitleLen      = 300
	maxReviewNameLen = 200
	maxReviewTextLen = 5_000
	maxCategoryLen   = 200
)

// documentNamePattern matches the flat document namespace, which mixes
// camelCase (servicePackages) and kebab-case (new-year) names. No
// slashes, no dots, so a name can never traverse anywhere.
var documentNamePattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// cleanDocumentName strips an optional .json suffix and validates the
// remainder. Returns "" for names that are not allowed.
func cleanDocumentName(name string) string {
	name = strings.TrimSuffix(name, ".json")
	if name == "" || len(name) > maxDocNameLen {
		return ""
	}
	if !documentNamePattern.MatchString(name) {
		return ""
	}
	return name
}

// validateReview checks review form inputs and returns the first error found.
func validateReview(name, text string, rating int) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxReviewNameLen {
		return "Name is too long (max 200 characters)."
	}
	if strings.TrimSpace(text) == "" {
		return "Review text is required."
	}
	if utf8.RuneCountInString(text) > maxReviewTextLen {
		return "Review text is too long (max 5,000 characters)."
	}
	if rating < 1 || rating > 5 {
		return "Rating must be between 1 and 5."
	}
	return ""
}

// validateItemTitle checks a menu item title.
func validateItemTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	return ""
}

// validateCategoryName checks a category display name.
func validateCategoryName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Category name is required."
	}
	if utf8.RuneCountInString(name) > maxCategoryLen {
		return "Category name is too long (max 200 characters)."
	}
	return ""
}
