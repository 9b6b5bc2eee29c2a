package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/evidence-navigator-server/internal/domain"
)

// AIClient proxies the two generative-model endpoints. The aggregator never
// holds a key of its own; callers supply one per request.
type AIClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// AIClientConfig contains configuration for the generative-model proxy
type AIClientConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewAIClient creates a new generative-model proxy client
func NewAIClient(config AIClientConfig) *AIClient {
	if config.BaseURL == "" {
		config.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if config.Model == "" {
		config.Model = "gemini-2.0-flash"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	return &AIClient{
		baseURL:    config.BaseURL,
		model:      config.Model,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generatePart struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ParseQuery asks the model to decompose a free-form clinical question into
// structured search fields and returns the raw JSON it produced
func (a *AIClient) ParseQuery(ctx context.Context, query, apiKey string) (json.RawMessage, error) {
	prompt := fmt.Sprintf(
		"Decompose this clinical search query into JSON with keys disease, treatment, topic (string or null each). Reply with JSON only, no prose.\nQuery: %s", query)
	text, err := a.generate(ctx, prompt, apiKey)
	if err != nil {
		return nil, err
	}
	cleaned := stripCodeFence(text)
	var probe map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		// Model ignored the JSON instruction; hand back the raw text
		fallback, _ := json.Marshal(map[string]string{"raw": text})
		return fallback, nil
	}
	return json.RawMessage(cleaned), nil
}

// Summarize asks the model for a clinical summary of the search results
func (a *AIClient) Summarize(ctx context.Context, results json.RawMessage, query, apiKey string) (string, error) {
	prompt := fmt.Sprintf(
		"Summarize the evidence below for a clinician in a short paragraph. Query: %s\nResults JSON: %s", query, string(results))
	return a.generate(ctx, prompt, apiKey)
}

func (a *AIClient) generate(ctx context.Context, prompt, apiKey string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", a.baseURL, a.model, apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", &domain.UpstreamError{Source: "ai", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", &domain.UpstreamError{Source: "ai", Status: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.UpstreamError{Source: "ai", Err: err}
	}
	var envelope generateResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", &domain.UpstreamError{Source: "ai", Err: fmt.Errorf("parse response: %w", err)}
	}
	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return "", &domain.UpstreamError{Source: "ai", Err: fmt.Errorf("empty completion")}
	}
	return envelope.Candidates[0].Content.Parts[0].Text, nil
}

// stripCodeFence unwraps a ```json … ``` fenced block if present
func stripCodeFence(s string) string {
	trimmed := []byte(s)
	trimmed = bytes.TrimSpace(trimmed)
	if bytes.HasPrefix(trimmed, []byte("```")) {
		if i := bytes.IndexByte(trimmed, '\n'); i >= 0 {
			trimmed = trimmed[i+1:]
		}
		trimmed = bytes.TrimSuffix(bytes.TrimSpace(trimmed), []byte("```"))
	}
	return string(bytes.TrimSpace(trimmed))
}
