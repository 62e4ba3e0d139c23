package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	statssvc "github.com/egguard/egguard-backend/internal/service/farmstats"
)

// FarmHandler handles farm statistics HTTP endpoints.
type FarmHandler struct {
	svc    statssvc.Service
	logger *zap.Logger
}

// NewFarmHandler constructs the HTTP handler adapter.
func NewFarmHandler(svc statssvc.Service, logger *zap.Logger) *FarmHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FarmHandler{svc: svc, logger: logger}
}

// GetStats returns picked-egg statistics for a farm over a date window.
// endDate defaults to today and startDate to endDate minus seven days.
func (h *FarmHandler) GetStats(c *gin.Context) {
	farmID, ok := parseObjectID(c, "farm_id", "farm")
	if !ok {
		return
	}

	endDate := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := c.Query("endDate"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must use the YYYY-MM-DD format"})
			return
		}
		endDate = parsed
	}

	startDate := endDate.AddDate(0, 0, -7)
	if raw := c.Query("startDate"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must use the YYYY-MM-DD format"})
			return
		}
		startDate = parsed
	}

	if startDate.After(endDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start date cannot be after end date"})
		return
	}

	stats, err := h.svc.GetFarmStats(c.Request.Context(), farmID, startDate, endDate)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
