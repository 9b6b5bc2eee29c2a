package external

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// MeSHClient proxies term lookups against the NLM MeSH vocabulary service
type MeSHClient struct {
	baseURL    string
	httpClient *http.Client
	cache      *lru.Cache[string, []string]
}

// MeSHConfig contains configuration for the MeSH lookup client
type MeSHConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewMeSHClient creates a new MeSH lookup client
func NewMeSHClient(config MeSHConfig) *MeSHClient {
	if config.BaseURL == "" {
		config.BaseURL = "https://id.nlm.nih.gov/mesh/lookup"
	}
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}
	cache, _ := lru.New[string, []string](256)
	return &MeSHClient{
		baseURL:    config.BaseURL,
		httpClient: &http.Client{Timeout: config.Timeout},
		cache:      cache,
	}
}

type meshTerm struct {
	Label string `json:"label"`
}

// Lookup returns matching MeSH labels for a query. Every failure mode
// returns the empty list.
func (m *MeSHClient) Lookup(ctx context.Context, query string) []string {
	key := strings.ToLower(strings.TrimSpace(query))
	if key == "" {
		return []string{}
	}
	if cached, ok := m.cache.Get(key); ok {
		return cached
	}

	params := url.Values{
		"label": {query},
		"match": {"contains"},
		"limit": {"10"},
	}
	var terms []meshTerm
	lookupURL := fmt.Sprintf("%s/term?%s", m.baseURL, params.Encode())
	if err := getJSON(ctx, m.httpClient, "mesh", lookupURL, &terms); err != nil {
		return []string{}
	}

	labels := make([]string, 0, len(terms))
	for _, t := range terms {
		if t.Label != "" {
			labels = append(labels, t.Label)
		}
	}
	m.cache.Add(key, labels)
	return labels
}
