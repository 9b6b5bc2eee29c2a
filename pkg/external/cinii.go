package external

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/evidence-navigator-server/internal/domain"
	"github.com/evidence-navigator-server/pkg/evidence"
)

// CiNiiClient searches the CiNii Research open-search endpoint. Author
// names are not exposed in list view, so records carry an empty author
// list.
type CiNiiClient struct {
	baseURL    string
	httpClient *http.Client
}

// CiNiiConfig contains configuration for the CiNii client
type CiNiiConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewCiNiiClient creates a new CiNii open-search client
func NewCiNiiClient(config CiNiiConfig) *CiNiiClient {
	if config.BaseURL == "" {
		config.BaseURL = "https://cir.nii.ac.jp/opensearch"
	}
	if config.Timeout == 0 {
		config.Timeout = 8 * time.Second
	}
	return &CiNiiClient{
		baseURL:    config.BaseURL,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Name returns the canonical source label
func (c *CiNiiClient) Name() string {
	return domain.SourceCiNii
}

type ciniiResponse struct {
	Items []ciniiItem `json:"items"`
}

type ciniiItem struct {
	ID              string `json:"@id"`
	Title           string `json:"title"`
	PublicationName string `json:"prism:publicationName"`
	PublicationDate string `json:"prism:publicationDate"`
	Identifiers     []struct {
		Type  string `json:"@type"`
		Value string `json:"@value"`
	} `json:"dc:identifier"`
}

// Search queries the articles open-search
func (c *CiNiiClient) Search(ctx context.Context, query string) ([]domain.Record, error) {
	params := url.Values{
		"q":      {query},
		"format": {"json"},
		"count":  {"20"},
	}
	var envelope ciniiResponse
	searchURL := fmt.Sprintf("%s/articles?%s", c.baseURL, params.Encode())
	if err := getJSON(ctx, c.httpClient, c.Name(), searchURL, &envelope); err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(envelope.Items))
	for _, item := range envelope.Items {
		title := stripHTML(item.Title)
		if title == "" {
			continue
		}
		var doi string
		for _, ident := range item.Identifiers {
			if ident.Type == "cir:DOI" {
				doi = normalizeDOI(ident.Value)
				break
			}
		}
		pageURL := item.ID
		if doi != "" {
			pageURL = "https://doi.org/" + doi
		}
		records = append(records, domain.Record{
			ID:            item.ID,
			Title:         title,
			Authors:       []string{},
			Journal:       item.PublicationName,
			Year:          yearFrom(item.PublicationDate),
			EvidenceLevel: evidence.ClassifyByTitle(title),
			DOI:           doi,
			URL:           pageURL,
			Source:        c.Name(),
			FoundIn:       []string{c.Name()},
			Language:      "ja",
		})
	}
	return records, nil
}
