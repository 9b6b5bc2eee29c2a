package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evidence-navigator-server/internal/data"
	"github.com/evidence-navigator-server/internal/domain"
	"github.com/evidence-navigator-server/internal/middleware"
	"github.com/evidence-navigator-server/internal/service"
	"github.com/evidence-navigator-server/pkg/external"
	"github.com/evidence-navigator-server/pkg/terms"
)

type stubSource struct {
	records []domain.Record
	err     error
}

func (s *stubSource) Search(ctx context.Context, query string) ([]domain.Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func (s *stubSource) SearchLimited(ctx context.Context, term string, retmax int) ([]domain.Record, error) {
	return s.Search(ctx, term)
}

type stubTranslator struct{}

func (stubTranslator) Translate(ctx context.Context, text, src, tgt string) string {
	return ""
}

type stubMesh struct{ labels []string }

func (s *stubMesh) Lookup(ctx context.Context, query string) []string {
	return s.labels
}

func sourceRecord(source string, level domain.EvidenceLevel) []domain.Record {
	return []domain.Record{{
		ID:            source + "-1",
		Title:         "A distinct record title from " + source,
		Source:        source,
		FoundIn:       []string{source},
		DOI:           "10.1/" + source,
		Year:          domain.IntPtr(2023),
		EvidenceLevel: level,
	}}
}

type routerOption func(*Deps)

func testRouter(t *testing.T, s2Err error, opts ...routerOption) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	sources := service.Sources{
		PubMed:   &stubSource{records: sourceRecord(domain.SourcePubMed, domain.LevelRCT)},
		JStage:   &stubSource{records: sourceRecord(domain.SourceJStage, domain.LevelOther)},
		S2:       &stubSource{records: sourceRecord(domain.SourceS2, domain.LevelReview), err: s2Err},
		OpenAlex: &stubSource{records: sourceRecord(domain.SourceOpenAlex, domain.LevelSRMA)},
		CiNii:    &stubSource{records: sourceRecord(domain.SourceCiNii, domain.LevelOther)},
		EPMC:     &stubSource{records: sourceRecord(domain.SourceEPMC, domain.LevelClinicalTrial)},
	}

	synonyms := terms.NewSynonymIndex(data.SynonymTable)
	scorer := service.NewLocalScorer(data.Guidelines, data.ClinicalQuestions)
	orchestrator := service.NewOrchestrator(logger, synonyms, stubTranslator{}, scorer, sources)

	deps := Deps{
		Logger:       logger,
		Orchestrator: orchestrator,
		Suggester:    service.NewSuggester(data.Guidelines, data.ClinicalQuestions),
		Mesh:         &stubMesh{labels: []string{"Stroke", "Stroke Rehabilitation"}},
		Translator:   stubTranslator{},
		RateLimiter:  middleware.NewRateLimiter(60*time.Second, 60),
		CORSOrigins:  []string{"http://localhost:3000"},
		Health:       func() map[string]string { return map[string]string{"pubmed": "closed"} },
	}
	for _, opt := range opts {
		opt(&deps)
	}
	return NewRouter(deps)
}

func doRequest(router *gin.Engine, method, target string, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestSearchEndpoint(t *testing.T) {
	router := testRouter(t, nil)

	resp := doRequest(router, http.MethodGet, "/api/search?q=stroke+rehabilitation", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	var total int
	require.NoError(t, json.Unmarshal(body["totalCount"], &total))
	assert.Equal(t, 6, total)

	_, hasMultilingual := body["multilingual"]
	assert.False(t, hasMultilingual, "multilingual field must be absent when the flag is off")

	var sources domain.SourceStats
	require.NoError(t, json.Unmarshal(body["sources"], &sources))
	for _, name := range domain.AllSources {
		assert.Equal(t, 1, sources.Counts[name])
	}

	var grouped map[string][]domain.Record
	require.NoError(t, json.Unmarshal(body["results"], &grouped))
	assert.Len(t, grouped, 8, "all eight evidence buckets present")
	assert.Len(t, grouped["rct"], 1)
}

func TestSearchEndpointRequiresQuery(t *testing.T) {
	router := testRouter(t, nil)

	resp := doRequest(router, http.MethodGet, "/api/search", "")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), domain.ErrInvalidInput)
}

func TestSearchEndpointPartialFailure(t *testing.T) {
	router := testRouter(t, errors.New("s2 exploded"))

	resp := doRequest(router, http.MethodGet, "/api/search?q=stroke", "")
	require.Equal(t, http.StatusOK, resp.Code, "a source failure never changes the response status")

	var body struct {
		TotalCount int                `json:"totalCount"`
		Sources    domain.SourceStats `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, 5, body.TotalCount)
	assert.Equal(t, "s2 exploded", body.Sources.Errors[domain.SourceS2])
}

func TestStructuredFieldsQuery(t *testing.T) {
	router := testRouter(t, nil)

	resp := doRequest(router, http.MethodGet, "/api/search?disease=knee%20osteoarthritis", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Query string `json:"query"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "knee osteoarthritis", body.Query)
}

func TestSecurityHeaders(t *testing.T) {
	router := testRouter(t, nil)

	resp := doRequest(router, http.MethodGet, "/healthz", "")
	assert.Equal(t, "nosniff", resp.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header().Get("X-Frame-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", resp.Header().Get("Referrer-Policy"))
}

func TestCORS(t *testing.T) {
	router := testRouter(t, nil)

	t.Run("allow-listed origin echoed", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		router.ServeHTTP(w, req)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("null origin allowed", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", "null")
		router.ServeHTTP(w, req)
		assert.Equal(t, "null", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin not echoed", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", "https://evil.example")
		router.ServeHTTP(w, req)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight returns empty 200", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/api/search", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestUnknownPathReturns404(t *testing.T) {
	router := testRouter(t, nil)
	resp := doRequest(router, http.MethodGet, "/api/bogus", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestWrongMethodReturns405(t *testing.T) {
	router := testRouter(t, nil)
	resp := doRequest(router, http.MethodGet, "/api/ai/parse", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.Code)
}

func TestRateLimitReturns429(t *testing.T) {
	router := testRouter(t, nil, func(d *Deps) {
		d.RateLimiter = middleware.NewRateLimiter(60*time.Second, 2)
	})

	doRequest(router, http.MethodGet, "/healthz", "")
	doRequest(router, http.MethodGet, "/healthz", "")
	resp := doRequest(router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Equal(t, "60", resp.Header().Get("Retry-After"))
}

func TestMeshEndpoint(t *testing.T) {
	router := testRouter(t, nil)

	resp := doRequest(router, http.MethodGet, "/api/mesh?q=st", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var labels []string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &labels))
	assert.Equal(t, []string{"Stroke", "Stroke Rehabilitation"}, labels)

	short := doRequest(router, http.MethodGet, "/api/mesh?q=s", "")
	assert.Equal(t, http.StatusBadRequest, short.Code)
}

func TestSuggestEndpoint(t *testing.T) {
	router := testRouter(t, nil)

	resp := doRequest(router, http.MethodGet, "/api/suggest?q=stro", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var suggestions []string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &suggestions))
	assert.NotEmpty(t, suggestions)
	assert.LessOrEqual(t, len(suggestions), 15)

	missing := doRequest(router, http.MethodGet, "/api/suggest", "")
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}

func TestCQListEndpoint(t *testing.T) {
	router := testRouter(t, nil)

	resp := doRequest(router, http.MethodGet, "/api/cq/list", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var body domain.CQListResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Positive(t, body.TotalGuidelines)
	assert.Positive(t, body.TotalCQs)

	filtered := doRequest(router, http.MethodGet, "/api/cq/list?cat=rehabilitation", "")
	require.Equal(t, http.StatusOK, filtered.Code)
	var filteredBody domain.CQListResponse
	require.NoError(t, json.Unmarshal(filtered.Body.Bytes(), &filteredBody))
	assert.Less(t, filteredBody.TotalGuidelines, body.TotalGuidelines)
}

func TestCQEvidenceEndpoint(t *testing.T) {
	router := testRouter(t, nil)

	resp := doRequest(router, http.MethodGet, "/api/cq/evidence?q=CQ1+stroke+rehabilitation+effective", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var body domain.CQEvidenceResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Keywords)

	missing := doRequest(router, http.MethodGet, "/api/cq/evidence", "")
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}

func TestAIParseEndpoint(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"{\"disease\":\"stroke\",\"treatment\":null,\"topic\":null}"}]}}]}`)
	}))
	defer upstream.Close()

	router := testRouter(t, nil, func(d *Deps) {
		d.AI = external.NewAIClient(external.AIClientConfig{BaseURL: upstream.URL, Model: "test-model"})
	})

	resp := doRequest(router, http.MethodPost, "/api/ai/parse", `{"query":"stroke","apiKey":"k"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &parsed))
	assert.Equal(t, "stroke", parsed["disease"])

	missing := doRequest(router, http.MethodPost, "/api/ai/parse", `{"query":"stroke"}`)
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}

func TestAIEndpointsUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	router := testRouter(t, nil, func(d *Deps) {
		d.AI = external.NewAIClient(external.AIClientConfig{BaseURL: upstream.URL, Model: "test-model"})
	})

	resp := doRequest(router, http.MethodPost, "/api/ai/summary", `{"results":[{"title":"x"}],"query":"q","apiKey":"k"}`)
	assert.Equal(t, http.StatusBadGateway, resp.Code)
}

func TestTranslateEndpoint(t *testing.T) {
	router := testRouter(t, nil)

	resp := doRequest(router, http.MethodGet, "/api/translate?text=%E8%84%B3%E5%8D%92%E4%B8%AD", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "ja", body["src"])
	assert.Equal(t, "en", body["tgt"])

	missing := doRequest(router, http.MethodGet, "/api/translate", "")
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}
