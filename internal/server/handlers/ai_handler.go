package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashugangtok/dietiq/internal/service/reporting"
	"github.com/ashugangtok/dietiq/internal/session"
	"github.com/ashugangtok/dietiq/pkg/clients/anthropic"
)

// AIHandler serves the generative flows: diet-plan extraction from PDF text
// and narrative summaries of the current aggregates.
type AIHandler struct {
	ai     anthropic.Client
	svc    *reporting.Service
	store  *session.Store
	logger *zap.Logger
}

// NewAIHandler constructs the HTTP handler adapter. The AI client may be nil
// when no API key is configured.
func NewAIHandler(ai anthropic.Client, svc *reporting.Service, store *session.Store, logger *zap.Logger) *AIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AIHandler{ai: ai, svc: svc, store: store, logger: logger}
}

// extractRequest carries the text layer of an uploaded PDF; extraction of
// the text itself happens client-side.
type extractRequest struct {
	DocumentText string `json:"document_text" binding:"required"`
}

// ExtractDietPlan converts PDF text into the structured diet-plan schema.
func (h *AIHandler) ExtractDietPlan(c *gin.Context) {
	if h.ai == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai features are not configured"})
		return
	}

	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document_text is required"})
		return
	}

	plan, err := h.ai.ExtractDietPlan(c.Request.Context(), req.DocumentText)
	if err != nil {
		h.logger.Error("diet plan extraction failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to extract diet plan"})
		return
	}

	c.JSON(http.StatusOK, plan)
}

// Summarize generates a narrative summary of the session's aggregates.
func (h *AIHandler) Summarize(c *gin.Context) {
	if h.ai == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai features are not configured"})
		return
	}

	records := h.store.Records(sessionID(c))
	if len(records) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no records loaded"})
		return
	}

	summary, err := h.ai.GenerateDietSummary(c.Request.Context(), h.svc.SummaryInput(records))
	if err != nil {
		h.logger.Error("summary generation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to generate summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
