package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/evidence-navigator-server/internal/data"
	"github.com/evidence-navigator-server/internal/domain"
)

const patientVoiceCap = 30

// pubmedQualitativeFilter restricts the PubMed branch to qualitative and
// patient-reported study designs
const pubmedQualitativeFilter = "qualitative research[pt] OR patient experience[tw] OR lived experience[tw] OR quality of life[tw] OR patient reported outcome[tw] OR patient perspective[tw]"

// patientVoice runs the second fan-out for qualitative-research results.
// Failures in this branch degrade to fewer results; they are logged but
// never reported to the client.
func (o *Orchestrator) patientVoice(ctx context.Context, parts, translatedParts []string, isJa bool) []domain.Record {
	enParts := parts
	if isJa && len(translatedParts) > 0 {
		enParts = translatedParts
	}

	pubmedTerm := fmt.Sprintf("(%s) AND (%s)", strings.Join(enParts, " AND "), pubmedQualitativeFilter)

	var quoted []string
	for _, term := range data.EnQualitativeTerms[:4] {
		quoted = append(quoted, fmt.Sprintf("%q", term))
	}
	epmcQuery := fmt.Sprintf("(%s) AND (%s)", strings.Join(enParts, " AND "), strings.Join(quoted, " OR "))

	tasks := []searchTask{
		{label: domain.SourcePubMed, run: func(ctx context.Context) ([]domain.Record, error) {
			return o.sources.PubMed.Search(ctx, pubmedTerm)
		}},
		{label: domain.SourceEPMC, run: func(ctx context.Context) ([]domain.Record, error) {
			return o.sources.EPMC.Search(ctx, epmcQuery)
		}},
	}
	if isJa {
		jaQuery := strings.Join(parts, " ") + " " + data.JaQualitativeTerms[0]
		tasks = append(tasks,
			searchTask{label: domain.SourceJStage, run: func(ctx context.Context) ([]domain.Record, error) {
				return o.sources.JStage.Search(ctx, jaQuery)
			}},
			searchTask{label: domain.SourceCiNii, run: func(ctx context.Context) ([]domain.Record, error) {
				return o.sources.CiNii.Search(ctx, jaQuery)
			}},
		)
	}

	reconciler := NewReconciler()
	for _, outcome := range o.dispatch(ctx, tasks) {
		if outcome.err != nil {
			continue
		}
		for _, rec := range outcome.records {
			reconciler.Add(rec)
		}
	}

	results := reconciler.Results()
	if len(results) > patientVoiceCap {
		results = results[:patientVoiceCap]
	}
	for i := range results {
		results[i].IsPatientVoice = true
	}
	return results
}
