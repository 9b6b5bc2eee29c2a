package terms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testTable = [][]string{
	{"脳卒中", "stroke", "CVA"},
	{"リハビリテーション", "rehabilitation", "rehab"},
	{"糖尿病", "diabetes"},
}

func TestLookup(t *testing.T) {
	idx := NewSynonymIndex(testTable)

	tests := []struct {
		name string
		term string
		want int
	}{
		{"Japanese surface form", "脳卒中", 3},
		{"English surface form", "stroke", 3},
		{"case-insensitive acronym", "cva", 3},
		{"mixed case", "Rehabilitation", 3},
		{"unknown term", "aspirin", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, idx.Lookup(tt.term), tt.want)
		})
	}
}

func TestExpandReflexive(t *testing.T) {
	idx := NewSynonymIndex(testTable)

	for _, class := range testTable {
		for _, term := range class {
			expanded := idx.Expand([]string{term})
			assert.Contains(t, lowered(expanded), strings.ToLower(term), "expansion must contain the input term")
		}
	}
}

func TestExpandSymmetric(t *testing.T) {
	idx := NewSynonymIndex(testTable)

	// Every pair of terms in one class must expand to each other
	for _, class := range testTable {
		for _, a := range class {
			got := lowered(idx.Expand([]string{a}))
			for _, b := range class {
				assert.Contains(t, got, strings.ToLower(b))
			}
		}
	}
}

func TestExpandDeduplicates(t *testing.T) {
	idx := NewSynonymIndex(testTable)

	expanded := idx.Expand([]string{"stroke", "Stroke", "CVA"})
	seen := make(map[string]int)
	for _, term := range expanded {
		seen[strings.ToLower(term)]++
	}
	for term, count := range seen {
		assert.Equal(t, 1, count, "term %q appears more than once", term)
	}
}

func TestExpandUnknownTermPassesThrough(t *testing.T) {
	idx := NewSynonymIndex(testTable)

	expanded := idx.Expand([]string{"aspirin"})
	assert.Equal(t, []string{"aspirin"}, expanded)
}

func lowered(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
