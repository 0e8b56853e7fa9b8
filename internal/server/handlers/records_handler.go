package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashugangtok/dietiq/internal/domain/models"
	"github.com/ashugangtok/dietiq/internal/repository/sheets"
	"github.com/ashugangtok/dietiq/internal/session"
)

// RecordsHandler manages the session dataset: JSON uploads, sheet syncs and
// the journal.
type RecordsHandler struct {
	store  *session.Store
	sheets sheets.Repository
	logger *zap.Logger
}

// NewRecordsHandler constructs the HTTP handler adapter. The sheets
// repository may be nil when the adapter is not configured.
func NewRecordsHandler(store *session.Store, sheetsRepo sheets.Repository, logger *zap.Logger) *RecordsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordsHandler{store: store, sheets: sheetsRepo, logger: logger}
}

// sessionID resolves the session for a request; absent headers fall back to
// the shared default session.
func sessionID(c *gin.Context) string {
	if id := c.GetHeader("X-Session-ID"); id != "" {
		return id
	}
	return session.DefaultID
}

// Upload replaces the session dataset with an already-parsed record array.
func (h *RecordsHandler) Upload(c *gin.Context) {
	var records []models.FeedingRecord
	if err := c.ShouldBindJSON(&records); err != nil {
		h.logger.Warn("invalid records payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid records payload"})
		return
	}

	uploadID := h.store.ReplaceRecords(sessionID(c), records)
	h.logger.Info("dataset replaced",
		zap.String("upload_id", uploadID),
		zap.Int("records", len(records)))

	c.JSON(http.StatusOK, gin.H{"upload_id": uploadID, "record_count": len(records)})
}

// SyncFromSheet pulls the configured Google Sheets export into the session.
func (h *RecordsHandler) SyncFromSheet(c *gin.Context) {
	if h.sheets == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "sheet sync is not configured"})
		return
	}

	records, err := h.sheets.ReadFeedingRecords(c.Request.Context())
	if err != nil {
		h.logger.Error("sheet sync failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to read sheet"})
		return
	}

	uploadID := h.store.ReplaceRecords(sessionID(c), records)
	c.JSON(http.StatusOK, gin.H{"upload_id": uploadID, "record_count": len(records)})
}

// journalRequest is the body of a journal POST.
type journalRequest struct {
	Text string `json:"text" binding:"required"`
}

// AddJournalEntry appends a note to the session journal.
func (h *RecordsHandler) AddJournalEntry(c *gin.Context) {
	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry := h.store.AddJournalEntry(sessionID(c), req.Text)
	c.JSON(http.StatusCreated, entry)
}

// ListJournal returns the session journal.
func (h *RecordsHandler) ListJournal(c *gin.Context) {
	entries := h.store.JournalEntries(sessionID(c))
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// Reset discards the session state.
func (h *RecordsHandler) Reset(c *gin.Context) {
	h.store.Reset(sessionID(c))
	c.Status(http.StatusNoContent)
}
