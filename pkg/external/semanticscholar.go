package external

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/evidence-navigator-server/internal/domain"
	"github.com/evidence-navigator-server/pkg/evidence"
)

// S2Client searches the Semantic Scholar academic graph
type S2Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// S2Config contains configuration for the Semantic Scholar client
type S2Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewS2Client creates a new Semantic Scholar client
func NewS2Client(config S2Config) *S2Client {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.semanticscholar.org/graph/v1"
	}
	if config.Timeout == 0 {
		config.Timeout = 8 * time.Second
	}
	return &S2Client{
		baseURL:    config.BaseURL,
		apiKey:     config.APIKey,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Name returns the canonical source label
func (s *S2Client) Name() string {
	return domain.SourceS2
}

type s2Response struct {
	Data []s2Paper `json:"data"`
}

type s2Paper struct {
	PaperID          string   `json:"paperId"`
	Title            string   `json:"title"`
	Venue            string   `json:"venue"`
	Year             *int     `json:"year"`
	URL              string   `json:"url"`
	CitationCount    *int     `json:"citationCount"`
	PublicationTypes []string `json:"publicationTypes"`
	ExternalIDs      struct {
		DOI string `json:"DOI"`
	} `json:"externalIds"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
}

var systematicTitleRe = regexp.MustCompile(`(?i)systematic`)

// Search queries the paper search endpoint. A 429 from this aggregator is
// treated as an empty result, not an error, so the orchestration degrades
// gracefully under rate-limiting.
func (s *S2Client) Search(ctx context.Context, query string) ([]domain.Record, error) {
	params := url.Values{
		"query":  {query},
		"limit":  {"20"},
		"fields": {"title,venue,year,authors,externalIds,citationCount,publicationTypes,url"},
	}
	searchURL := fmt.Sprintf("%s/paper/search?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, &domain.UpstreamError{Source: s.Name(), Err: err}
	}
	if s.apiKey != "" {
		req.Header.Set("x-api-key", s.apiKey)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Source: s.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return []domain.Record{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &domain.UpstreamError{Source: s.Name(), Status: resp.StatusCode}
	}

	var envelope s2Response
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{Source: s.Name(), Err: fmt.Errorf("read response: %w", err)}
	}
	if err := unmarshalJSON(body, &envelope, s.Name()); err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(envelope.Data))
	for _, paper := range envelope.Data {
		title := stripHTML(paper.Title)
		if title == "" {
			continue
		}
		authors := make([]string, 0, len(paper.Authors))
		for _, a := range paper.Authors {
			if a.Name != "" {
				authors = append(authors, a.Name)
			}
		}
		doi := normalizeDOI(paper.ExternalIDs.DOI)
		pageURL := paper.URL
		if doi != "" {
			pageURL = "https://doi.org/" + doi
		}
		records = append(records, domain.Record{
			ID:            paper.PaperID,
			Title:         title,
			Authors:       capAuthors(authors),
			Journal:       paper.Venue,
			Year:          paper.Year,
			PubTypes:      paper.PublicationTypes,
			EvidenceLevel: s.classify(paper.PublicationTypes, title),
			DOI:           doi,
			URL:           pageURL,
			Source:        s.Name(),
			FoundIn:       []string{s.Name()},
			Citations:     paper.CitationCount,
		})
	}
	return records, nil
}

// classify maps the aggregator's publicationTypes vocabulary onto evidence
// levels in fixed priority, falling back to the title cascade
func (s *S2Client) classify(pubTypes []string, title string) domain.EvidenceLevel {
	has := func(wanted ...string) bool {
		for _, t := range pubTypes {
			lowered := strings.ToLower(t)
			for _, w := range wanted {
				if lowered == w {
					return true
				}
			}
		}
		return false
	}

	switch {
	case has("metaanalysis", "meta-analysis"):
		return domain.LevelSRMA
	case has("review") && systematicTitleRe.MatchString(title):
		return domain.LevelSRMA
	case has("clinicaltrial", "clinical trial"):
		return domain.LevelClinicalTrial
	case has("casereport", "case report"):
		return domain.LevelCaseReport
	case has("review"):
		return domain.LevelReview
	}
	return evidence.ClassifyByTitle(title)
}
