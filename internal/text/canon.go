// Package text normalizes free-text place names and cuisine strings into
// stable join keys and vocabulary tokens.
package text

import "strings"

// umlautFolder replaces German umlauts and the sharp s with their ASCII
// digraphs. This is a fixed table, not general transliteration: the canonical
// key must be byte-identical across runs and data sources.
var umlautFolder = strings.NewReplacer(
	"ä", "ae",
	"ö", "oe",
	"ü", "ue",
	"Ä", "ae",
	"Ö", "oe",
	"Ü", "ue",
	"ß", "ss",
)

// Canon canonicalizes a neighborhood or district name for joins.
// It trims whitespace, folds umlauts/ß to ASCII, lowercases, and strips
// every character that is not an ASCII letter or digit. Canon is idempotent
// and returns "" for empty input.
func Canon(name string) string {
	s := umlautFolder.Replace(strings.TrimSpace(name))
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
