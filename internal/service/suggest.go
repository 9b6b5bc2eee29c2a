package service

import (
	"sort"
	"strings"

	"github.com/evidence-navigator-server/internal/domain"
)

const maxSuggestions = 15

// Suggester serves local autocomplete over CQ keywords and guideline
// disease names. The candidate pool is built once at startup.
type Suggester struct {
	candidates []string
}

// NewSuggester builds the candidate pool from the static corpora
func NewSuggester(guidelines []domain.Guideline, questions []domain.ClinicalQuestion) *Suggester {
	seen := make(map[string]bool)
	var candidates []string
	add := func(term string) {
		term = strings.TrimSpace(term)
		key := strings.ToLower(term)
		if term == "" || seen[key] {
			return
		}
		seen[key] = true
		candidates = append(candidates, term)
	}
	for _, gl := range guidelines {
		for _, d := range gl.Diseases {
			add(d)
		}
	}
	for _, cq := range questions {
		for _, kw := range cq.KW {
			add(kw)
		}
	}
	return &Suggester{candidates: candidates}
}

// Suggest returns up to 15 candidates containing the query, prefix
// matches first, then by ascending length
func (s *Suggester) Suggest(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []string{}
	}
	type scored struct {
		term   string
		prefix bool
	}
	var hits []scored
	for _, candidate := range s.candidates {
		lower := strings.ToLower(candidate)
		switch {
		case strings.HasPrefix(lower, q):
			hits = append(hits, scored{candidate, true})
		case strings.Contains(lower, q):
			hits = append(hits, scored{candidate, false})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].prefix != hits[j].prefix {
			return hits[i].prefix
		}
		if len(hits[i].term) != len(hits[j].term) {
			return len(hits[i].term) < len(hits[j].term)
		}
		return hits[i].term < hits[j].term
	})
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.term)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// CQList groups the clinical questions by guideline, optionally filtered
// by guideline category
func (o *Orchestrator) CQList(cat string) *domain.CQListResponse {
	groups := make([]domain.CQGroup, 0)
	totalCQs := 0
	for _, gl := range o.scorer.Guidelines() {
		if cat != "" && !strings.EqualFold(gl.Cat, cat) {
			continue
		}
		var cqs []domain.ClinicalQuestion
		for _, cq := range o.scorer.Questions() {
			if cq.GID == gl.ID {
				cqs = append(cqs, cq)
			}
		}
		if len(cqs) == 0 {
			continue
		}
		totalCQs += len(cqs)
		groups = append(groups, domain.CQGroup{Guideline: gl, CQs: cqs})
	}
	return &domain.CQListResponse{
		TotalGuidelines: len(groups),
		TotalCQs:        totalCQs,
		Groups:          groups,
	}
}
