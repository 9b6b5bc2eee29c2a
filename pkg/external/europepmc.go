package external

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/evidence-navigator-server/internal/domain"
	"github.com/evidence-navigator-server/pkg/evidence"
)

// EPMCClient searches Europe PMC. The query string may already contain
// AND/OR parentheses; it is passed through verbatim.
type EPMCClient struct {
	baseURL    string
	httpClient *http.Client
}

// EPMCConfig contains configuration for the Europe PMC client
type EPMCConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewEPMCClient creates a new Europe PMC client
func NewEPMCClient(config EPMCConfig) *EPMCClient {
	if config.BaseURL == "" {
		config.BaseURL = "https://www.ebi.ac.uk/europepmc/webservices/rest"
	}
	if config.Timeout == 0 {
		config.Timeout = 8 * time.Second
	}
	return &EPMCClient{
		baseURL:    config.BaseURL,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Name returns the canonical source label
func (e *EPMCClient) Name() string {
	return domain.SourceEPMC
}

type epmcResponse struct {
	ResultList struct {
		Result []epmcResult `json:"result"`
	} `json:"resultList"`
}

type epmcResult struct {
	ID           string `json:"id"`
	PMID         string `json:"pmid"`
	Title        string `json:"title"`
	AuthorString string `json:"authorString"`
	JournalTitle string `json:"journalTitle"`
	PubYear      string `json:"pubYear"`
	DOI          string `json:"doi"`
	Language     string `json:"language"`
	CitedByCount *int   `json:"citedByCount"`
	PubTypeList  struct {
		PubType []string `json:"pubType"`
	} `json:"pubTypeList"`
}

// Search queries the REST search endpoint
func (e *EPMCClient) Search(ctx context.Context, query string) ([]domain.Record, error) {
	params := url.Values{
		"query":    {query},
		"format":   {"json"},
		"pageSize": {"25"},
	}
	var envelope epmcResponse
	searchURL := fmt.Sprintf("%s/search?%s", e.baseURL, params.Encode())
	if err := getJSON(ctx, e.httpClient, e.Name(), searchURL, &envelope); err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(envelope.ResultList.Result))
	for _, res := range envelope.ResultList.Result {
		title := stripHTML(res.Title)
		if title == "" {
			continue
		}
		var authors []string
		for _, name := range strings.Split(res.AuthorString, ",") {
			if trimmed := strings.TrimSuffix(strings.TrimSpace(name), "."); trimmed != "" {
				authors = append(authors, trimmed)
			}
		}
		doi := normalizeDOI(res.DOI)
		pageURL := ""
		switch {
		case res.PMID != "":
			pageURL = fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", res.PMID)
		case doi != "":
			pageURL = "https://doi.org/" + doi
		default:
			pageURL = fmt.Sprintf("https://europepmc.org/article/MED/%s", res.ID)
		}
		records = append(records, domain.Record{
			ID:            res.ID,
			Title:         title,
			Authors:       capAuthors(authors),
			Journal:       res.JournalTitle,
			Year:          yearFrom(res.PubYear),
			PubTypes:      res.PubTypeList.PubType,
			EvidenceLevel: evidence.Classify(res.PubTypeList.PubType, title),
			DOI:           doi,
			URL:           pageURL,
			Source:        e.Name(),
			FoundIn:       []string{e.Name()},
			Citations:     res.CitedByCount,
			Language:      res.Language,
		})
	}
	return records, nil
}
