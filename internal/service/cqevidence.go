package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/evidence-navigator-server/internal/data"
	"github.com/evidence-navigator-server/internal/domain"
	"github.com/evidence-navigator-server/pkg/terms"
)

// pubmedEvidenceFilter restricts CQ-evidence lookups to synthesis and
// trial publication types
const pubmedEvidenceFilter = "systematic review[pt] OR meta-analysis[pt] OR randomized controlled trial[pt]"

var (
	cqPrefixRe   = regexp.MustCompile(`^\s*(?:CQ|Q)\s*\d+[\s.。．:：・]*`)
	cqTokenRe    = regexp.MustCompile(`([ァ-ヴー]{2,})|([一-鿿]{2,})|([A-Za-z][A-Za-z0-9-]+)`)
	asciiPunctRe = regexp.MustCompile(`[!-/:-@\[-` + "`" + `{-~]`)
)

// kanjiStopList filters non-informative kanji compounds out of extracted
// CQ keywords
var kanjiStopList = map[string]bool{
	"患者": true, "対象": true, "効果": true, "推奨": true, "検討": true,
	"治療": true, "方法": true, "評価": true, "必要": true, "有効": true,
	"実施": true, "目的": true, "場合": true, "改善": true, "発症": true,
}

// enStopList is the closed English stop-list for CQ keyword extraction
var enStopList = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true, "was": true,
	"of": true, "in": true, "for": true, "to": true, "with": true, "on": true,
	"at": true, "by": true, "and": true, "or": true, "be": true, "can": true,
	"do": true, "does": true, "should": true, "what": true, "which": true,
	"how": true, "patients": true, "patient": true, "recommended": true,
	"effective": true, "versus": true, "vs": true,
}

// ExtractCQKeywords derives searchable keywords from a clinical-question
// text. Japanese questions yield katakana runs, kanji compounds and
// embedded Latin tokens in order of appearance (max 3); English questions
// yield stop-filtered words (max 4).
func ExtractCQKeywords(question string) []string {
	q := cqPrefixRe.ReplaceAllString(strings.TrimSpace(question), "")
	if q == "" {
		return []string{}
	}
	if terms.IsJapanese(q) {
		return extractJapaneseKeywords(q)
	}
	return extractEnglishKeywords(q)
}

func extractJapaneseKeywords(q string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range cqTokenRe.FindAllStringSubmatch(q, -1) {
		var token string
		switch {
		case m[1] != "": // katakana run
			token = m[1]
		case m[2] != "": // kanji run, strip trailing patient/case markers
			token = strings.TrimSuffix(m[2], "患者")
			token = strings.TrimSuffix(token, "症例")
			if len([]rune(token)) < 2 || kanjiStopList[token] {
				continue
			}
		case m[3] != "": // embedded Latin/acronym token
			if len(m[3]) < 2 {
				continue
			}
			token = m[3]
		}
		key := strings.ToLower(token)
		if token == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, token)
		if len(out) == 3 {
			break
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func extractEnglishKeywords(q string) []string {
	cleaned := asciiPunctRe.ReplaceAllString(q, " ")
	seen := make(map[string]bool)
	var out []string
	for _, word := range strings.Fields(cleaned) {
		key := strings.ToLower(word)
		if enStopList[key] || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, word)
		if len(out) == 4 {
			break
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// promoteToEnglish maps Japanese-only keywords to English: first through
// the synonym index, then through the curated therapy lexicon. Terms with
// no mapping stay as-is.
func (o *Orchestrator) promoteToEnglish(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if !terms.IsJapanese(kw) {
			out = append(out, kw)
			continue
		}
		promoted := ""
		for _, member := range o.synonyms.Lookup(kw) {
			if !terms.IsJapanese(member) {
				promoted = member
				break
			}
		}
		if promoted == "" {
			promoted = data.TherapyLexicon[kw]
		}
		if promoted == "" {
			promoted = kw
		}
		out = append(out, promoted)
	}
	return out
}

// CQEvidence answers the CQ-evidence endpoint: up to five PubMed records
// filtered to systematic review, meta-analysis and randomized controlled
// trial publication types. Upstream failure
// degrades to an empty result list.
func (o *Orchestrator) CQEvidence(ctx context.Context, question, kw string) *domain.CQEvidenceResponse {
	var keywords []string
	if kw != "" {
		for _, part := range strings.Split(kw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				keywords = append(keywords, trimmed)
			}
			if len(keywords) == 4 {
				break
			}
		}
	} else {
		keywords = o.promoteToEnglish(ExtractCQKeywords(question))
	}

	if len(keywords) == 0 {
		return &domain.CQEvidenceResponse{Results: []domain.Record{}, Keywords: []string{}}
	}

	query := fmt.Sprintf("(%s) AND (%s)", strings.Join(keywords, " AND "), pubmedEvidenceFilter)
	results, err := o.sources.PubMed.SearchLimited(ctx, query, 5)
	if err != nil {
		o.logger.WithField("error", err.Error()).Warn("CQ evidence lookup failed")
		results = []domain.Record{}
	}
	if results == nil {
		results = []domain.Record{}
	}
	return &domain.CQEvidenceResponse{
		Results:  results,
		Keywords: keywords,
		Query:    query,
	}
}
