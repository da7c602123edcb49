package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeCuisines(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected []string
	}{
		{
			"keeps nationals, drops dishes",
			"Italian; Pizza; Japanese; Döner; Vietnamese",
			[]string{"italian", "japanese", "vietnamese"},
		},
		{
			"case insensitive",
			"ITALIAN; Turkish ",
			[]string{"italian", "turkish"},
		},
		{
			"unknown tokens dropped",
			"Klingon; Fusion; Thai",
			[]string{"thai"},
		},
		{
			"duplicates preserved in token list",
			"Thai;Thai",
			[]string{"thai", "thai"},
		},
		{"empty string", "", nil},
		{"only separators", ";;;", nil},
		{"only dishes", "Pizza; Sushi; Kebab", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TokenizeCuisines(tt.in))
		})
	}
}

func TestNationalsSet_Deduplicates(t *testing.T) {
	set := NationalsSet("Thai; thai; THAI; Pizza")
	assert.Len(t, set, 1)
	assert.Contains(t, set, "thai")
}
