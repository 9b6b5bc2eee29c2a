package service

import (
	"sort"
	"strings"

	"github.com/evidence-navigator-server/internal/domain"
)

// LocalScorer matches expanded query terms against the embedded guideline
// and clinical-question corpora. Pure computation over static data; it
// cannot fail.
type LocalScorer struct {
	guidelines []domain.Guideline
	questions  []domain.ClinicalQuestion
	byID       map[string]*domain.Guideline
}

// NewLocalScorer creates a scorer over the static corpora
func NewLocalScorer(guidelines []domain.Guideline, questions []domain.ClinicalQuestion) *LocalScorer {
	byID := make(map[string]*domain.Guideline, len(guidelines))
	for i := range guidelines {
		byID[guidelines[i].ID] = &guidelines[i]
	}
	return &LocalScorer{guidelines: guidelines, questions: questions, byID: byID}
}

// scoreTerms computes the match score of query terms against keyword
// surfaces and a title: +10 exact keyword match, +5 substring containment
// in either direction, +3 title containment, summed across all terms.
func scoreTerms(terms []string, keywords []string, title string) int {
	titleLower := strings.ToLower(title)
	loweredKeywords := make([]string, len(keywords))
	for i, k := range keywords {
		loweredKeywords[i] = strings.ToLower(k)
	}
	score := 0
	for _, term := range terms {
		t := strings.ToLower(strings.TrimSpace(term))
		if t == "" {
			continue
		}
		for _, k := range loweredKeywords {
			switch {
			case k == t:
				score += 10
			case strings.Contains(k, t) || strings.Contains(t, k):
				score += 5
			}
		}
		if strings.Contains(titleLower, t) {
			score += 3
		}
	}
	return score
}

// ScoreGuidelines scores every guideline against the query terms and
// returns those with positive score, best first
func (s *LocalScorer) ScoreGuidelines(terms []string) []domain.GuidelineMatch {
	matches := make([]domain.GuidelineMatch, 0)
	for _, gl := range s.guidelines {
		score := scoreTerms(terms, gl.Diseases, gl.Title)
		if score <= 0 {
			continue
		}
		matches = append(matches, domain.GuidelineMatch{Guideline: gl, Score: score})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Year > matches[j].Year
	})
	return matches
}

// ScoreQuestions scores every clinical question against the query terms,
// attaching the parent guideline when available
func (s *LocalScorer) ScoreQuestions(terms []string) []domain.CQMatch {
	matches := make([]domain.CQMatch, 0)
	for _, cq := range s.questions {
		score := scoreTerms(terms, cq.KW, cq.Q)
		if score <= 0 {
			continue
		}
		match := domain.CQMatch{ClinicalQuestion: cq, Score: score}
		if parent := s.byID[cq.GID]; parent != nil {
			match.GuidelineTitle = parent.Title
			match.GuidelineOrg = parent.Org
			match.GuidelineURL = parent.URL
		}
		matches = append(matches, match)
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		yi, yj := 0, 0
		if p := s.byID[matches[i].GID]; p != nil {
			yi = p.Year
		}
		if p := s.byID[matches[j].GID]; p != nil {
			yj = p.Year
		}
		return yi > yj
	})
	return matches
}

// Guidelines exposes the corpus for the CQ browser endpoint
func (s *LocalScorer) Guidelines() []domain.Guideline {
	return s.guidelines
}

// Questions exposes the corpus for the CQ browser endpoint
func (s *LocalScorer) Questions() []domain.ClinicalQuestion {
	return s.questions
}

// GuidelineByID returns a guideline by id, or nil
func (s *LocalScorer) GuidelineByID(id string) *domain.Guideline {
	return s.byID[id]
}
