package external

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/evidence-navigator-server/internal/domain"
)

const maxAuthors = 5

var (
	cdataRe   = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	tagRe     = regexp.MustCompile(`(?s)<[^>]*>`)
	yearRunRe = regexp.MustCompile(`\d{4}`)
	doiURLRe  = regexp.MustCompile(`(?i)^https?://doi\.org/`)
)

// stripHTML expands CDATA sections and removes every <…> span. The contract
// is deliberately approximate; source markup is narrow and predictable.
func stripHTML(s string) string {
	s = cdataRe.ReplaceAllString(s, "$1")
	s = tagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}

// yearFrom parses the first 4-digit run of a date string, absent if none
func yearFrom(s string) *int {
	run := yearRunRe.FindString(s)
	if run == "" {
		return nil
	}
	var y int
	fmt.Sscanf(run, "%d", &y)
	return &y
}

// normalizeDOI lowercases a DOI and strips any doi.org URL prefix
func normalizeDOI(doi string) string {
	return strings.ToLower(doiURLRe.ReplaceAllString(strings.TrimSpace(doi), ""))
}

// capAuthors truncates an author list to the record limit
func capAuthors(authors []string) []string {
	if len(authors) > maxAuthors {
		return authors[:maxAuthors]
	}
	return authors
}

// getJSON issues a GET with context and decodes the 200 body into v.
// Non-2xx statuses come back as *domain.UpstreamError so callers can
// distinguish HTTP failures from benign empties.
func getJSON(ctx context.Context, client *http.Client, source, rawURL string, v interface{}) error {
	resp, err := doGet(ctx, client, source, rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return &domain.UpstreamError{Source: source, Status: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.UpstreamError{Source: source, Err: fmt.Errorf("read response: %w", err)}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &domain.UpstreamError{Source: source, Err: fmt.Errorf("parse response: %w", err)}
	}
	return nil
}

// unmarshalJSON decodes a body into v, typing parse failures by source
func unmarshalJSON(body []byte, v interface{}, source string) error {
	if err := json.Unmarshal(body, v); err != nil {
		return &domain.UpstreamError{Source: source, Err: fmt.Errorf("parse response: %w", err)}
	}
	return nil
}

// doGet issues a GET with context, wrapping transport errors
func doGet(ctx context.Context, client *http.Client, source, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &domain.UpstreamError{Source: source, Err: fmt.Errorf("create request: %w", err)}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Source: source, Err: err}
	}
	return resp, nil
}
