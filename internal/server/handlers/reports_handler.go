package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashugangtok/dietiq/internal/domain/models"
	"github.com/ashugangtok/dietiq/internal/service/reporting"
	"github.com/ashugangtok/dietiq/internal/session"
)

// ReportsHandler serves the computed report trees. Each endpoint recomputes
// from the session's current dataset; one report failing never affects the
// others.
type ReportsHandler struct {
	store  *session.Store
	svc    *reporting.Service
	logger *zap.Logger
}

// NewReportsHandler constructs the HTTP handler adapter.
func NewReportsHandler(store *session.Store, svc *reporting.Service, logger *zap.Logger) *ReportsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportsHandler{store: store, svc: svc, logger: logger}
}

// Dashboard returns the overview counts and top ingredients.
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	topN := 0
	if raw := c.Query("top"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			topN = n
		}
	}

	records := h.store.Records(sessionID(c))
	c.JSON(http.StatusOK, h.svc.Dashboard(records, topN))
}

// Sites returns the (site, enclosure, species) overview rows.
func (h *ReportsHandler) Sites(c *gin.Context) {
	records := h.store.Records(sessionID(c))
	c.JSON(http.StatusOK, h.svc.SiteOverview(records))
}

// MealGroups returns the (meal group, item) totals.
func (h *ReportsHandler) MealGroups(c *gin.Context) {
	records := h.store.Records(sessionID(c))
	c.JSON(http.StatusOK, h.svc.MealGroups(records))
}

// Pivot returns the eight-field pivot rows.
func (h *ReportsHandler) Pivot(c *gin.Context) {
	records := h.store.Records(sessionID(c))
	c.JSON(http.StatusOK, h.svc.Pivot(records))
}

// Consolidated returns the merged diet blocks.
func (h *ReportsHandler) Consolidated(c *gin.Context) {
	records := h.store.Records(sessionID(c))

	diets, err := h.svc.Consolidated(records)
	if err != nil {
		h.logger.Error("consolidation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to consolidate diets"})
		return
	}
	c.JSON(http.StatusOK, diets)
}

// Packing returns the checklist rows with session statuses attached.
func (h *ReportsHandler) Packing(c *gin.Context) {
	sid := sessionID(c)
	records := h.store.Records(sid)

	rows, ids := h.svc.PackingList(records)
	items := h.store.ReconcilePacking(sid, ids)

	statuses := make(map[string]models.PackingStatus, len(items))
	for _, item := range items {
		statuses[item.ID] = item.Status
	}
	for i := range rows {
		if status, ok := statuses[rows[i].ID]; ok {
			rows[i].Status = status
		}
	}

	c.JSON(http.StatusOK, rows)
}

// packingStatusRequest is the body of a packing status update.
type packingStatusRequest struct {
	Status models.PackingStatus `json:"status" binding:"required"`
}

// SetPackingStatus updates one checklist item's status.
func (h *ReportsHandler) SetPackingStatus(c *gin.Context) {
	var req packingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be pending, packed or dispatched"})
		return
	}

	if err := h.store.SetPackingStatus(sessionID(c), c.Param("id"), req.Status); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown packing item"})
		return
	}
	c.Status(http.StatusNoContent)
}
