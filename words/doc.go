// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package words normalizes and validates submitted words.

Normalization happens in two steps with distinct purposes:

	normalized := words.Normalize(raw) // display form, keeps .,!?'-
	key := words.Key(normalized)       // aggregation key, punctuation stripped

Normalize produces the canonical uppercase display form: trimmed,
disallowed characters removed (everything outside ASCII letters/digits,
whitespace, basic punctuation and the å ä ö é è ü letter set), whitespace
collapsed. Key strips the remaining punctuation so that "cloud's",
"Clouds" and "CLOUDS" all aggregate under the key "CLOUDS". Only keys are
ever stored or counted.

Validate enforces the submission rules (non-empty, at most 50 runes) and
IsStopWord filters a small fixed set of common words case-insensitively.
*/
package words
