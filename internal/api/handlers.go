package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/evidence-navigator-server/internal/domain"
	"github.com/evidence-navigator-server/internal/middleware"
	"github.com/evidence-navigator-server/internal/service"
	"github.com/evidence-navigator-server/pkg/terms"
)

// NewRouter builds the gin engine with the full middleware chain and all
// routes. Split from NewServer so handler tests can inject fakes.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(deps.CORSOrigins))
	router.Use(middleware.CorrelationID())
	router.Use(middleware.AuditLogger())
	if deps.RateLimiter != nil {
		router.Use(deps.RateLimiter.Middleware())
	}

	h := &handlers{deps: deps}

	router.GET("/healthz", h.health)
	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/search", h.search)
		apiGroup.GET("/mesh", h.mesh)
		apiGroup.GET("/suggest", h.suggest)
		apiGroup.GET("/cq/list", h.cqList)
		apiGroup.GET("/cq/evidence", h.cqEvidence)
		apiGroup.GET("/translate", h.translate)
		apiGroup.POST("/ai/parse", h.aiParse)
		apiGroup.POST("/ai/summary", h.aiSummary)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, domain.NewAPIError(domain.ErrNotFound, "unknown path", c.GetString("correlation_id")))
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, domain.NewAPIError(domain.ErrMethodNotAllowed, "method not allowed", c.GetString("correlation_id")))
	})
	return router
}

type handlers struct {
	deps Deps
}

func (h *handlers) badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, domain.NewAPIError(domain.ErrInvalidInput, message, c.GetString("correlation_id")))
}

// health reports liveness and per-source circuit states
func (h *handlers) health(c *gin.Context) {
	body := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	}
	if h.deps.Health != nil {
		body["sources"] = h.deps.Health()
	}
	c.JSON(http.StatusOK, body)
}

// search is the primary orchestrator endpoint
func (h *handlers) search(c *gin.Context) {
	req := service.SearchRequest{
		Q:            c.Query("q"),
		Disease:      c.Query("disease"),
		Treatment:    c.Query("treatment"),
		Topic:        c.Query("topic"),
		Multilingual: boolParam(c.Query("multilingual")),
		PatientVoice: boolParam(c.Query("patientVoice")),
	}

	response, err := h.deps.Orchestrator.Search(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			h.badRequest(c, err.Error())
			return
		}
		h.deps.Logger.WithField("error", err.Error()).Error("Search orchestration failed")
		c.JSON(http.StatusInternalServerError, domain.NewAPIError(domain.ErrInternalServer, "search failed", c.GetString("correlation_id")))
		return
	}
	c.JSON(http.StatusOK, response)
}

// mesh proxies a MeSH vocabulary lookup
func (h *handlers) mesh(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if len([]rune(q)) < 2 {
		h.badRequest(c, "q must be at least 2 characters")
		return
	}
	c.JSON(http.StatusOK, h.deps.Mesh.Lookup(c.Request.Context(), q))
}

// suggest serves local autocomplete
func (h *handlers) suggest(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		h.badRequest(c, "q is required")
		return
	}
	c.JSON(http.StatusOK, h.deps.Suggester.Suggest(q))
}

// cqList browses clinical questions grouped by guideline
func (h *handlers) cqList(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.Orchestrator.CQList(c.Query("cat")))
}

// cqEvidence runs the focused SR/MA/RCT lookup for one clinical question
func (h *handlers) cqEvidence(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		h.badRequest(c, "q is required")
		return
	}
	c.JSON(http.StatusOK, h.deps.Orchestrator.CQEvidence(c.Request.Context(), q, c.Query("kw")))
}

// translate proxies the translation endpoint, picking the direction from
// the script of the input
func (h *handlers) translate(c *gin.Context) {
	text := strings.TrimSpace(c.Query("text"))
	if text == "" {
		h.badRequest(c, "text is required")
		return
	}
	src, tgt := "en", "ja"
	if terms.IsJapanese(text) {
		src, tgt = "ja", "en"
	}
	translated := h.deps.Translator.Translate(c.Request.Context(), text, src, tgt)
	c.JSON(http.StatusOK, gin.H{"text": translated, "src": src, "tgt": tgt})
}

type aiParseRequest struct {
	Query  string `json:"query"`
	APIKey string `json:"apiKey"`
}

// aiParse proxies the structured-query extraction to the generative model
func (h *handlers) aiParse(c *gin.Context) {
	var req aiParseRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" || req.APIKey == "" {
		h.badRequest(c, "query and apiKey are required")
		return
	}
	parsed, err := h.deps.AI.ParseQuery(c.Request.Context(), req.Query, req.APIKey)
	if err != nil {
		h.deps.Logger.WithField("error", err.Error()).Warn("AI parse failed")
		c.JSON(http.StatusBadGateway, domain.NewAPIError(domain.ErrUpstream, "AI service error", c.GetString("correlation_id")))
		return
	}
	c.Data(http.StatusOK, "application/json", parsed)
}

type aiSummaryRequest struct {
	Results json.RawMessage `json:"results"`
	Query   string          `json:"query"`
	APIKey  string          `json:"apiKey"`
}

// aiSummary proxies the evidence summarization to the generative model
func (h *handlers) aiSummary(c *gin.Context) {
	var req aiSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Results) == 0 || req.APIKey == "" {
		h.badRequest(c, "results and apiKey are required")
		return
	}
	summary, err := h.deps.AI.Summarize(c.Request.Context(), req.Results, req.Query, req.APIKey)
	if err != nil {
		h.deps.Logger.WithField("error", err.Error()).Warn("AI summary failed")
		c.JSON(http.StatusBadGateway, domain.NewAPIError(domain.ErrUpstream, "AI service error", c.GetString("correlation_id")))
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// boolParam accepts the usual truthy query spellings
func boolParam(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}
