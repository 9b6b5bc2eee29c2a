package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// TranslateClient translates short strings via the configured consumer
// translation endpoint. Every failure mode degrades to the empty string;
// the pipeline then proceeds as if translation had not been requested.
type TranslateClient struct {
	baseURL    string
	httpClient *http.Client
	memo       *lru.Cache[string, string]
}

// TranslateClientConfig contains configuration for the translation client
type TranslateClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewTranslateClient creates a new translation client with a bounded
// process-lifetime memo of previous translations
func NewTranslateClient(config TranslateClientConfig) *TranslateClient {
	if config.BaseURL == "" {
		config.BaseURL = "https://translate.googleapis.com/translate_a/single"
	}
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}
	memo, _ := lru.New[string, string](512)
	return &TranslateClient{
		baseURL:    config.BaseURL,
		httpClient: &http.Client{Timeout: config.Timeout},
		memo:       memo,
	}
}

// Translate converts text from src to tgt (two-letter codes). It returns
// the translation when non-empty and not case-insensitively identical to
// the input; otherwise the empty string. Network, timeout and parse
// failures all return the empty string, never an error.
func (t *TranslateClient) Translate(ctx context.Context, text, src, tgt string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	cacheKey := src + "|" + tgt + "|" + strings.ToLower(text)
	if cached, ok := t.memo.Get(cacheKey); ok {
		return cached
	}

	params := url.Values{
		"client": {"gtx"},
		"sl":     {src},
		"tl":     {tgt},
		"dt":     {"t"},
		"q":      {text},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", t.baseURL, params.Encode()), nil)
	if err != nil {
		return ""
	}
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return ""
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}

	translated := parseSegments(body)
	if translated == "" || strings.EqualFold(translated, text) {
		return ""
	}
	t.memo.Add(cacheKey, translated)
	return translated
}

// parseSegments reads the first element of the response as a sequence of
// segment tuples and concatenates segment[0] across all segments
func parseSegments(body []byte) string {
	var outer []json.RawMessage
	if err := json.Unmarshal(body, &outer); err != nil || len(outer) == 0 {
		return ""
	}
	var segments [][]json.RawMessage
	if err := json.Unmarshal(outer[0], &segments); err != nil {
		return ""
	}
	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var piece string
		if err := json.Unmarshal(seg[0], &piece); err != nil {
			continue
		}
		sb.WriteString(piece)
	}
	return strings.TrimSpace(sb.String())
}
