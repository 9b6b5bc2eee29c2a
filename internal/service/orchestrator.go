// Package service contains the search orchestration, reconciliation and
// local scoring logic behind the API surface.
package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/evidence-navigator-server/internal/domain"
	"github.com/evidence-navigator-server/pkg/terms"
)

// ErrEmptyQuery is returned when a request carries no usable query parts
var ErrEmptyQuery = errors.New("query is required: pass q or one of disease/treatment/topic")

// Searcher is the orchestrator-side adapter contract
type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.Record, error)
}

// PubMedSearcher extends the contract with an explicit result cap, used by
// the CQ-evidence endpoint
type PubMedSearcher interface {
	Searcher
	SearchLimited(ctx context.Context, term string, retmax int) ([]domain.Record, error)
}

// Translator converts a short string between two-letter language codes,
// degrading to the empty string on failure
type Translator interface {
	Translate(ctx context.Context, text, src, tgt string) string
}

// Sources bundles the six bibliographic adapters
type Sources struct {
	PubMed   PubMedSearcher
	JStage   Searcher
	S2       Searcher
	OpenAlex Searcher
	CiNii    Searcher
	EPMC     Searcher
}

// SearchRequest is the parsed input of the primary endpoint
type SearchRequest struct {
	Q            string
	Disease      string
	Treatment    string
	Topic        string
	Multilingual bool
	PatientVoice bool
}

// Orchestrator fans a query out to the six sources, reconciles the
// results and appends local guideline/CQ matches
type Orchestrator struct {
	logger     *logrus.Logger
	synonyms   *terms.SynonymIndex
	translator Translator
	scorer     *LocalScorer
	sources    Sources
}

// NewOrchestrator wires the orchestrator
func NewOrchestrator(logger *logrus.Logger, synonyms *terms.SynonymIndex, translator Translator, scorer *LocalScorer, sources Sources) *Orchestrator {
	return &Orchestrator{
		logger:     logger,
		synonyms:   synonyms,
		translator: translator,
		scorer:     scorer,
		sources:    sources,
	}
}

// searchTask is one unit of the fan-out: a source label plus the call to
// execute. Several tasks may share a label when a source is dispatched in
// more than one language.
type searchTask struct {
	label string
	run   func(ctx context.Context) ([]domain.Record, error)
}

type taskOutcome struct {
	label   string
	records []domain.Record
	err     error
}

// Search executes the full orchestration for one request
func (o *Orchestrator) Search(ctx context.Context, req SearchRequest) (*domain.SearchResponse, error) {
	parts, fields := parseParts(req)
	if len(parts) == 0 {
		return nil, ErrEmptyQuery
	}

	joined := strings.Join(parts, " ")
	isJa := terms.IsJapanese(joined)
	needsTranslation := req.Multilingual || isJa

	src, tgt := "en", "ja"
	if isJa {
		src, tgt = "ja", "en"
	}

	var translatedParts []string
	var translatedFields map[string]string
	if needsTranslation {
		translatedParts, translatedFields = o.translateParts(ctx, parts, fields, src, tgt)
	}

	o.logger.WithFields(logrus.Fields{
		"query":        joined,
		"japanese":     isJa,
		"multilingual": req.Multilingual,
		"translated":   len(translatedParts),
	}).Info("Dispatching federated search")

	tasks := o.plan(parts, translatedParts, isJa, req.Multilingual)
	outcomes := o.dispatch(ctx, tasks)

	reconciler := NewReconciler()
	errorsByLabel := make(map[string]string)
	for _, outcome := range outcomes {
		if outcome.err != nil {
			if _, seen := errorsByLabel[outcome.label]; !seen {
				errorsByLabel[outcome.label] = outcome.err.Error()
			}
			continue
		}
		for _, rec := range outcome.records {
			reconciler.Add(rec)
		}
	}

	results := reconciler.Results()
	expanded := o.synonyms.Expand(parts)
	localTerms := append(append([]string{}, expanded...), translatedParts...)

	response := &domain.SearchResponse{
		Query:              joined,
		TotalCount:         len(results),
		Results:            GroupByLevel(results),
		NationalGuidelines: o.scorer.ScoreGuidelines(localTerms),
		ClinicalQuestions:  o.scorer.ScoreQuestions(localTerms),
		Sources: domain.SourceStats{
			Counts: reconciler.SourceCounts(),
			Errors: errorsByLabel,
		},
	}
	if req.Multilingual {
		response.Multilingual = &domain.MultilingualInfo{
			Requested:  true,
			Translated: translatedFields,
		}
	}
	if req.PatientVoice {
		response.PatientVoice = o.patientVoice(ctx, parts, translatedParts, isJa)
	}
	return response, nil
}

// parseParts splits a free-form q on whitespace, or falls back to the
// non-empty structured fields
func parseParts(req SearchRequest) ([]string, map[string]string) {
	if q := strings.TrimSpace(req.Q); q != "" {
		return strings.Fields(q), nil
	}
	fields := make(map[string]string)
	var parts []string
	for _, pair := range []struct{ name, value string }{
		{"disease", req.Disease},
		{"treatment", req.Treatment},
		{"topic", req.Topic},
	} {
		if v := strings.TrimSpace(pair.value); v != "" {
			fields[pair.name] = v
			parts = append(parts, v)
		}
	}
	return parts, fields
}

// translateParts translates each part in parallel. Failed translations
// drop out; field translations are kept by name for the multilingual
// response envelope.
func (o *Orchestrator) translateParts(ctx context.Context, parts []string, fields map[string]string, src, tgt string) ([]string, map[string]string) {
	translations := make([]string, len(parts))
	var wg sync.WaitGroup
	for i, part := range parts {
		wg.Add(1)
		go func(i int, part string) {
			defer wg.Done()
			translations[i] = o.translator.Translate(ctx, part, src, tgt)
		}(i, part)
	}
	wg.Wait()

	var translated []string
	for _, t := range translations {
		if t != "" {
			translated = append(translated, t)
		}
	}

	translatedFields := make(map[string]string)
	for name, value := range fields {
		for i, part := range parts {
			if part == value && translations[i] != "" {
				translatedFields[name] = translations[i]
			}
		}
	}
	return translated, translatedFields
}

// plan chooses the dispatch matrix: exactly one of the three plans
func (o *Orchestrator) plan(parts, translatedParts []string, isJa, multilingual bool) []searchTask {
	pubmedTerm := strings.Join(parts, " AND ")
	query := strings.Join(parts, " ")
	translatedTerm := strings.Join(translatedParts, " AND ")
	translatedQuery := strings.Join(translatedParts, " ")

	task := func(label string, s Searcher, q string) searchTask {
		return searchTask{label: label, run: func(ctx context.Context) ([]domain.Record, error) {
			return s.Search(ctx, q)
		}}
	}

	switch {
	case multilingual && len(translatedParts) > 0:
		// Both language variants to every source
		return []searchTask{
			task(domain.SourcePubMed, o.sources.PubMed, pubmedTerm),
			task(domain.SourceJStage, o.sources.JStage, query),
			task(domain.SourceS2, o.sources.S2, query),
			task(domain.SourceOpenAlex, o.sources.OpenAlex, query),
			task(domain.SourceCiNii, o.sources.CiNii, query),
			task(domain.SourceEPMC, o.sources.EPMC, query),
			task(domain.SourcePubMed, o.sources.PubMed, translatedTerm),
			task(domain.SourceJStage, o.sources.JStage, translatedQuery),
			task(domain.SourceS2, o.sources.S2, translatedQuery),
			task(domain.SourceOpenAlex, o.sources.OpenAlex, translatedQuery),
			task(domain.SourceCiNii, o.sources.CiNii, translatedQuery),
			task(domain.SourceEPMC, o.sources.EPMC, translatedQuery),
		}
	case isJa && len(translatedParts) > 0:
		// English-indexed sources get the translation; Japanese-capable
		// sources keep the original, with OpenAlex and Europe PMC also
		// widened by the English variant for bilingual records
		return []searchTask{
			task(domain.SourcePubMed, o.sources.PubMed, translatedTerm),
			task(domain.SourceS2, o.sources.S2, translatedQuery),
			task(domain.SourceJStage, o.sources.JStage, query),
			task(domain.SourceOpenAlex, o.sources.OpenAlex, query),
			task(domain.SourceCiNii, o.sources.CiNii, query),
			task(domain.SourceEPMC, o.sources.EPMC, query),
			task(domain.SourceOpenAlex, o.sources.OpenAlex, translatedQuery),
			task(domain.SourceEPMC, o.sources.EPMC, translatedQuery),
		}
	default:
		return []searchTask{
			task(domain.SourcePubMed, o.sources.PubMed, pubmedTerm),
			task(domain.SourceJStage, o.sources.JStage, query),
			task(domain.SourceS2, o.sources.S2, query),
			task(domain.SourceOpenAlex, o.sources.OpenAlex, query),
			task(domain.SourceCiNii, o.sources.CiNii, query),
			task(domain.SourceEPMC, o.sources.EPMC, query),
		}
	}
}

// dispatch launches every task concurrently and settles them all: each
// task completes independently, a failure never aborts its siblings, and
// per-task outcomes are preserved for the error report.
func (o *Orchestrator) dispatch(ctx context.Context, tasks []searchTask) []taskOutcome {
	outcomes := make([]taskOutcome, len(tasks))
	var wg sync.WaitGroup
	for i, t := range tasks {
		wg.Add(1)
		go func(i int, t searchTask) {
			defer wg.Done()
			records, err := t.run(ctx)
			if err != nil {
				o.logger.WithFields(logrus.Fields{
					"source": t.label,
					"error":  err.Error(),
				}).Warn("Source search failed")
			}
			outcomes[i] = taskOutcome{label: t.label, records: records, err: err}
		}(i, t)
	}
	wg.Wait()
	return outcomes
}
