// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings,
// including Russian display names via transliteration.
package slug

import (
	"regexp"
	"strings"
)

// translit maps Cyrillic letters to their latin transliteration. Letters
// without a latin counterpart (ъ, ь) are dropped.
var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// nonAlphanumeric matches any run of characters that can't appear in a slug.
var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given string.
// Example: "Салаты и Закуски" → "salaty-i-zakuski"
func Generate(s string) string {
	lowered := strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if repl, ok := translit[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}

	result := nonAlphanumeric.ReplaceAllString(b.String(), "-")
	return strings.Trim(result, "-")
}
