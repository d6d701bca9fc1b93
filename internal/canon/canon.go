// Package canon derives stable, deterministic identifiers for linguistic
// entities from canonicalized text. Identical identity fields always yield
// the identical content id, which is what makes structural deduplication
// possible without a lookup table.
package canon

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Canonicalize lowercases ASCII letters, collapses runs of whitespace to one
// space and trims. Total and pure; safe to apply twice.
func Canonicalize(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	pendingSpace := false
	for _, r := range input {
		if unicode.IsSpace(r) {
			pendingSpace = true
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeText is the canonical form used for default sentence sequences and
// occurrence seeds.
func NormalizeText(input string) string {
	return Canonicalize(input)
}

// grammarPunct is the fixed set of transliteration marks stripped from
// grammar keys: modifier letters, curly quotes, primes and accents.
var grammarPunct = map[rune]bool{
	'ʻ': true, // ʻ
	'ʿ': true, // ʿ
	'ʼ': true, // ʼ
	'ʹ': true, // ʹ
	'ˊ': true, // ˊ
	'ˋ': true, // ˋ
	'ˈ': true, // ˈ
	'ˌ': true, // ˌ
	'‘': true, // ‘
	'’': true, // ’
	'′': true, // ′
	'`': true, // `
	'´': true, // ´
}

var (
	hyphenSpaceRe  = regexp.MustCompile(`[-\s]+`)
	nonKeyRuneRe   = regexp.MustCompile(`[^a-z0-9_]+`)
	underscoreRunRe = regexp.MustCompile(`_+`)
)

// NormalizeGrammarKey folds a grammar identifier or title down to an ASCII
// fuzzy key: decompose, strip diacritics and transliteration punctuation,
// lowercase, join words with underscores. Returns "" for non-Latin input;
// callers fall back to NormalizeLookupKey.
func NormalizeGrammarKey(input string) string {
	raw := input
	if i := strings.LastIndexByte(input, '|'); i >= 0 {
		raw = input[i+1:]
	}
	var b strings.Builder
	for _, r := range norm.NFKD.String(raw) {
		if unicode.Is(unicode.Mn, r) || grammarPunct[r] {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	s := hyphenSpaceRe.ReplaceAllString(b.String(), "_")
	s = nonKeyRuneRe.ReplaceAllString(s, "")
	s = underscoreRunRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// NormalizeLookupKey prefers the ASCII grammar key and falls back to an
// NFKC-trimmed form for input the fold cannot represent.
func NormalizeLookupKey(input string) string {
	if ascii := NormalizeGrammarKey(input); ascii != "" {
		return ascii
	}
	return strings.TrimSpace(norm.NFKC.String(input))
}
