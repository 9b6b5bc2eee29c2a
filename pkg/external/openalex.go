package external

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/evidence-navigator-server/internal/domain"
	"github.com/evidence-navigator-server/pkg/evidence"
)

// OpenAlexClient searches the OpenAlex scholarly graph
type OpenAlexClient struct {
	baseURL    string
	httpClient *http.Client
}

// OpenAlexConfig contains configuration for the OpenAlex client
type OpenAlexConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewOpenAlexClient creates a new OpenAlex client
func NewOpenAlexClient(config OpenAlexConfig) *OpenAlexClient {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.openalex.org"
	}
	if config.Timeout == 0 {
		config.Timeout = 8 * time.Second
	}
	return &OpenAlexClient{
		baseURL:    config.BaseURL,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Name returns the canonical source label
func (o *OpenAlexClient) Name() string {
	return domain.SourceOpenAlex
}

type openAlexResponse struct {
	Results []openAlexWork `json:"results"`
}

type openAlexWork struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DisplayName     string `json:"display_name"`
	PublicationYear *int   `json:"publication_year"`
	DOI             string `json:"doi"`
	Type            string `json:"type"`
	CitedByCount    *int   `json:"cited_by_count"`
	Language        string `json:"language"`
	PrimaryLocation struct {
		Source struct {
			DisplayName string `json:"display_name"`
		} `json:"source"`
	} `json:"primary_location"`
	Authorships []struct {
		Author struct {
			DisplayName string `json:"display_name"`
		} `json:"author"`
	} `json:"authorships"`
}

// Systematic-synthesis markers in English and Japanese titles, used to
// upgrade a "review" typed work to sr_ma
var srMarkerRe = regexp.MustCompile(`(?i)systematic|meta[\s-]?analysis|システマティック|メタアナリシス|メタ分析`)

// Search queries the works endpoint
func (o *OpenAlexClient) Search(ctx context.Context, query string) ([]domain.Record, error) {
	params := url.Values{
		"search":   {query},
		"per-page": {"20"},
	}
	var envelope openAlexResponse
	searchURL := fmt.Sprintf("%s/works?%s", o.baseURL, params.Encode())
	if err := getJSON(ctx, o.httpClient, o.Name(), searchURL, &envelope); err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(envelope.Results))
	for _, work := range envelope.Results {
		title := work.Title
		if title == "" {
			title = work.DisplayName
		}
		title = stripHTML(title)
		if title == "" {
			continue
		}
		authors := make([]string, 0, len(work.Authorships))
		for _, a := range work.Authorships {
			if a.Author.DisplayName != "" {
				authors = append(authors, a.Author.DisplayName)
			}
		}
		doi := normalizeDOI(work.DOI)
		pageURL := work.ID
		if doi != "" {
			pageURL = "https://doi.org/" + doi
		}
		records = append(records, domain.Record{
			ID:            work.ID,
			Title:         title,
			Authors:       capAuthors(authors),
			Journal:       work.PrimaryLocation.Source.DisplayName,
			Year:          work.PublicationYear,
			EvidenceLevel: o.classify(work.Type, title),
			DOI:           doi,
			URL:           pageURL,
			Source:        o.Name(),
			FoundIn:       []string{o.Name()},
			Citations:     work.CitedByCount,
			Language:      work.Language,
		})
	}
	return records, nil
}

// classify re-inspects "review" typed works for systematic/meta markers;
// everything else defers to the title cascade
func (o *OpenAlexClient) classify(workType, title string) domain.EvidenceLevel {
	if workType == "review" {
		if srMarkerRe.MatchString(title) {
			return domain.LevelSRMA
		}
		return domain.LevelReview
	}
	return evidence.ClassifyByTitle(title)
}
