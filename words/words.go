// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package words

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrEmptyWord   = errors.New("word cannot be empty")
	ErrWordTooLong = errors.New("word must be 50 characters or less")
)

// MaxWordLength is the maximum accepted length of a normalized word, in runes.
const MaxWordLength = 50

// stopWords are filtered from the cloud. Comparison is case-insensitive.
var stopWords = map[string]bool{
	"the": true,
	"a":   true,
	"an":  true,
	"is":  true,
	"are": true,
	"and": true,
	"or":  true,
	"but": true,
}

// punctuation stripped from the aggregation key.
const punctuation = ".,!?'-"

// allowedRune reports whether r survives normalization. The whitelist is
// ASCII letters and digits, whitespace, basic punctuation, and the extended
// Latin letters used by Swedish, French and German submissions.
func allowedRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == ' ', r == '\t', r == '\n', r == '\r':
		return true
	case strings.ContainsRune(punctuation, r):
		return true
	}
	switch r {
	case 'å', 'ä', 'ö', 'Å', 'Ä', 'Ö', 'é', 'É', 'è', 'È', 'ü', 'Ü':
		return true
	}
	return false
}

// Normalize turns raw input into its canonical uppercase form: surrounding
// whitespace trimmed, disallowed characters (emoji, symbols) removed, runs
// of whitespace collapsed to a single space. Normalize is idempotent.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if allowedRune(r) {
			b.WriteRune(r)
		}
	}
	normalized := strings.Join(strings.Fields(b.String()), " ")
	return strings.ToUpper(normalized)
}

// Key reduces a normalized word to its aggregation key by stripping basic
// punctuation, so "CLOUD'S" and "CLOUDS" count as the same entry. The key
// is the only form ever stored or compared at the aggregation boundary.
func Key(normalized string) string {
	stripped := strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, normalized)
	return strings.TrimSpace(stripped)
}

// Validate checks a normalized word against the submission rules.
func Validate(word string) error {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return ErrEmptyWord
	}
	if utf8.RuneCountInString(trimmed) > MaxWordLength {
		return ErrWordTooLong
	}
	return nil
}

// IsStopWord reports whether word is a filtered common word.
// The check is case-insensitive.
func IsStopWord(word string) bool {
	return stopWords[strings.ToLower(strings.TrimSpace(word))]
}
