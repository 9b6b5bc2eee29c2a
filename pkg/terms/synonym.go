package terms

import "strings"

// SynonymIndex maps a lowercased medical term to its equivalence class.
// It is built once at startup and read-only afterwards, so lookups need
// no synchronization.
type SynonymIndex struct {
	classes map[string][]string
}

// NewSynonymIndex builds the index from a static table of equivalence
// classes. Each class is a list of surface terms mixing Japanese and Latin
// scripts in any case; every lowercased term keys the original class.
func NewSynonymIndex(table [][]string) *SynonymIndex {
	idx := &SynonymIndex{classes: make(map[string][]string)}
	for _, class := range table {
		members := make([]string, len(class))
		copy(members, class)
		for _, term := range class {
			idx.classes[strings.ToLower(term)] = members
		}
	}
	return idx
}

// Lookup returns the equivalence class of a term, or nil when unknown
func (s *SynonymIndex) Lookup(term string) []string {
	return s.classes[strings.ToLower(term)]
}

// Expand returns the union of each input term and its class members.
// Duplicates are removed by lowercased identity; the input terms come first
// in their original order.
func (s *SynonymIndex) Expand(parts []string) []string {
	seen := make(map[string]bool, len(parts))
	var out []string
	add := func(term string) {
		key := strings.ToLower(term)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, term)
	}
	for _, p := range parts {
		add(p)
		for _, member := range s.Lookup(p) {
			add(member)
		}
	}
	return out
}
