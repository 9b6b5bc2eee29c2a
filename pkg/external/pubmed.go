package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/evidence-navigator-server/internal/domain"
	"github.com/evidence-navigator-server/pkg/evidence"
)

// PubMedClient searches NCBI PubMed via the E-utilities two-step
// esearch + esummary flow.
type PubMedClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// PubMedConfig contains configuration for the PubMed client
type PubMedConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewPubMedClient creates a new PubMed E-utilities client. Requests are
// throttled to the NCBI courtesy limit of 3 per second across both steps.
func NewPubMedClient(config PubMedConfig) *PubMedClient {
	if config.BaseURL == "" {
		config.BaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/"
	}
	if config.Timeout == 0 {
		config.Timeout = 8 * time.Second
	}
	return &PubMedClient{
		baseURL:    config.BaseURL,
		apiKey:     config.APIKey,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(3), 3),
	}
}

// Name returns the canonical source label
func (p *PubMedClient) Name() string {
	return domain.SourcePubMed
}

type esearchEnvelope struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type pubmedDoc struct {
	UID     string   `json:"uid"`
	Title   string   `json:"title"`
	Source  string   `json:"source"`
	PubDate string   `json:"pubdate"`
	Lang    []string `json:"lang"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	PubType    []string `json:"pubtype"`
	ArticleIDs []struct {
		IDType string `json:"idtype"`
		Value  string `json:"value"`
	} `json:"articleids"`
}

// esummaryResult mirrors the JSON esummary shape: a "uids" list next to one
// object per uid under the same "result" key.
type esummaryResult struct {
	Result map[string]json.RawMessage `json:"result"`
}

// Search runs the two-step query for a term. Parts joined with " AND "
// by the caller arrive here as a single term string.
func (p *PubMedClient) Search(ctx context.Context, term string) ([]domain.Record, error) {
	return p.SearchLimited(ctx, term, 50)
}

// SearchParts joins query parts with " AND " and searches
func (p *PubMedClient) SearchParts(ctx context.Context, parts []string) ([]domain.Record, error) {
	return p.Search(ctx, strings.Join(parts, " AND "))
}

// SearchLimited runs the two-step query with an explicit retmax
func (p *PubMedClient) SearchLimited(ctx context.Context, term string, retmax int) ([]domain.Record, error) {
	ids, err := p.esearch(ctx, term, retmax)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Record{}, nil
	}
	return p.esummary(ctx, ids)
}

func (p *PubMedClient) esearch(ctx context.Context, term string, retmax int) ([]string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, &domain.UpstreamError{Source: p.Name(), Err: err}
	}
	params := url.Values{
		"db":      {"pubmed"},
		"term":    {term},
		"retmode": {"json"},
		"retmax":  {fmt.Sprintf("%d", retmax)},
		"sort":    {"relevance"},
	}
	if p.apiKey != "" {
		params.Set("api_key", p.apiKey)
	}
	var envelope esearchEnvelope
	searchURL := fmt.Sprintf("%sesearch.fcgi?%s", p.baseURL, params.Encode())
	if err := getJSON(ctx, p.httpClient, p.Name(), searchURL, &envelope); err != nil {
		return nil, err
	}
	return envelope.ESearchResult.IDList, nil
}

func (p *PubMedClient) esummary(ctx context.Context, ids []string) ([]domain.Record, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, &domain.UpstreamError{Source: p.Name(), Err: err}
	}
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"json"},
	}
	if p.apiKey != "" {
		params.Set("api_key", p.apiKey)
	}
	var envelope esummaryResult
	summaryURL := fmt.Sprintf("%sesummary.fcgi?%s", p.baseURL, params.Encode())
	if err := getJSON(ctx, p.httpClient, p.Name(), summaryURL, &envelope); err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(ids))
	for _, id := range ids {
		raw, ok := envelope.Result[id]
		if !ok {
			continue
		}
		var doc pubmedDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		rec := p.toRecord(id, &doc)
		if rec.Title == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (p *PubMedClient) toRecord(id string, doc *pubmedDoc) domain.Record {
	authors := make([]string, 0, len(doc.Authors))
	for _, a := range doc.Authors {
		if a.Name != "" {
			authors = append(authors, a.Name)
		}
	}
	var doi string
	for _, aid := range doc.ArticleIDs {
		if aid.IDType == "doi" {
			doi = normalizeDOI(aid.Value)
			break
		}
	}
	var language string
	if len(doc.Lang) > 0 {
		language = strings.ToLower(doc.Lang[0])
	}
	title := stripHTML(doc.Title)
	return domain.Record{
		ID:            id,
		Title:         title,
		Authors:       capAuthors(authors),
		Journal:       doc.Source,
		Year:          yearFrom(doc.PubDate),
		PubTypes:      doc.PubType,
		EvidenceLevel: evidence.Classify(doc.PubType, title),
		DOI:           doi,
		URL:           fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", id),
		Source:        p.Name(),
		FoundIn:       []string{p.Name()},
		Language:      language,
	}
}
