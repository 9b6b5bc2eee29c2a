// Package setup wires the production object graph shared by the HTTP and
// MCP entry points.
package setup

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/evidence-navigator-server/internal/data"
	"github.com/evidence-navigator-server/internal/domain"
	"github.com/evidence-navigator-server/internal/service"
	"github.com/evidence-navigator-server/pkg/external"
	"github.com/evidence-navigator-server/pkg/terms"
)

// Components is the assembled object graph
type Components struct {
	Orchestrator *service.Orchestrator
	Suggester    *service.Suggester
	Translator   *external.TranslateClient
	Mesh         *external.MeSHClient
	AI           *external.AIClient
	Breakers     map[string]*external.ResilientSearcher
}

// Build constructs the six adapters behind circuit breakers, the synonym
// index, the local scorer and the orchestrator on top of them
func Build(cfg *domain.Config, logger *logrus.Logger) *Components {
	pubmed := external.NewPubMedClient(external.PubMedConfig{
		BaseURL: cfg.Sources.PubMed.BaseURL,
		APIKey:  cfg.Sources.PubMed.APIKey,
		Timeout: cfg.Sources.PubMed.Timeout,
	})
	jstage := external.NewJStageClient(external.JStageConfig{
		BaseURL: cfg.Sources.JStage.BaseURL,
		Timeout: cfg.Sources.JStage.Timeout,
	})
	s2 := external.NewS2Client(external.S2Config{
		BaseURL: cfg.Sources.S2.BaseURL,
		APIKey:  cfg.Sources.S2.APIKey,
		Timeout: cfg.Sources.S2.Timeout,
	})
	openalex := external.NewOpenAlexClient(external.OpenAlexConfig{
		BaseURL: cfg.Sources.OpenAlex.BaseURL,
		Timeout: cfg.Sources.OpenAlex.Timeout,
	})
	cinii := external.NewCiNiiClient(external.CiNiiConfig{
		BaseURL: cfg.Sources.CiNii.BaseURL,
		Timeout: cfg.Sources.CiNii.Timeout,
	})
	epmc := external.NewEPMCClient(external.EPMCConfig{
		BaseURL: cfg.Sources.EPMC.BaseURL,
		Timeout: cfg.Sources.EPMC.Timeout,
	})

	breakers := map[string]*external.ResilientSearcher{
		pubmed.Name():   external.NewResilientSearcher(pubmed, logger),
		jstage.Name():   external.NewResilientSearcher(jstage, logger),
		s2.Name():       external.NewResilientSearcher(s2, logger),
		openalex.Name(): external.NewResilientSearcher(openalex, logger),
		cinii.Name():    external.NewResilientSearcher(cinii, logger),
		epmc.Name():     external.NewResilientSearcher(epmc, logger),
	}

	translator := external.NewTranslateClient(external.TranslateClientConfig{
		BaseURL: cfg.Translate.BaseURL,
		Timeout: cfg.Translate.Timeout,
	})

	synonyms := terms.NewSynonymIndex(data.SynonymTable)
	scorer := service.NewLocalScorer(data.Guidelines, data.ClinicalQuestions)
	orchestrator := service.NewOrchestrator(logger, synonyms, translator, scorer, service.Sources{
		PubMed:   &resilientPubMed{raw: pubmed, breaker: breakers[pubmed.Name()]},
		JStage:   breakers[jstage.Name()],
		S2:       breakers[s2.Name()],
		OpenAlex: breakers[openalex.Name()],
		CiNii:    breakers[cinii.Name()],
		EPMC:     breakers[epmc.Name()],
	})

	return &Components{
		Orchestrator: orchestrator,
		Suggester:    service.NewSuggester(data.Guidelines, data.ClinicalQuestions),
		Translator:   translator,
		Mesh: external.NewMeSHClient(external.MeSHConfig{
			BaseURL: cfg.MeSH.BaseURL,
			Timeout: cfg.MeSH.Timeout,
		}),
		AI: external.NewAIClient(external.AIClientConfig{
			BaseURL: cfg.AI.BaseURL,
			Model:   cfg.AI.Model,
			Timeout: cfg.AI.Timeout,
		}),
		Breakers: breakers,
	}
}

// BreakerStates reports the current circuit state per source
func (c *Components) BreakerStates() map[string]string {
	states := make(map[string]string, len(c.Breakers))
	for name, breaker := range c.Breakers {
		states[name] = breaker.State().String()
	}
	return states
}

// resilientPubMed routes the plain search through the breaker while the
// capped CQ-evidence search keeps direct access to the E-utilities client
type resilientPubMed struct {
	raw     *external.PubMedClient
	breaker *external.ResilientSearcher
}

func (r *resilientPubMed) Search(ctx context.Context, query string) ([]domain.Record, error) {
	return r.breaker.Search(ctx, query)
}

func (r *resilientPubMed) SearchLimited(ctx context.Context, term string, retmax int) ([]domain.Record, error) {
	return r.raw.SearchLimited(ctx, term, retmax)
}
