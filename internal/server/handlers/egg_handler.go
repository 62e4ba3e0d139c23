package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/egguard/egguard-backend/internal/domain/models"
	eggsvc "github.com/egguard/egguard-backend/internal/service/egg"
)

const dateLayout = "2006-01-02"

// EggHandler handles egg registration and lifecycle HTTP endpoints.
type EggHandler struct {
	svc    eggsvc.Service
	logger *zap.Logger
}

// NewEggHandler constructs the HTTP handler adapter.
func NewEggHandler(svc eggsvc.Service, logger *zap.Logger) *EggHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EggHandler{svc: svc, logger: logger}
}

// Register ingests a robot's egg observation.
func (h *EggHandler) Register(c *gin.Context) {
	robotID, ok := parseObjectID(c, "robot_id", "robot")
	if !ok {
		return
	}

	var req models.RegisterEggRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid egg payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordX, coordY and broken must be provided"})
		return
	}

	egg, err := h.svc.Register(c.Request.Context(), robotID, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, egg)
}

// ListByFarm returns a farm's eggs with optional picked/date filters.
func (h *EggHandler) ListByFarm(c *gin.Context) {
	farmID, ok := parseObjectID(c, "farm_id", "farm")
	if !ok {
		return
	}

	var filter models.EggFilter
	if raw := c.Query("picked"); raw != "" {
		picked, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "picked must be a boolean"})
			return
		}
		filter.Picked = &picked
	}
	if raw := c.Query("date"); raw != "" {
		date, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must use the YYYY-MM-DD format"})
			return
		}
		filter.Date = &date
	}

	eggs, err := h.svc.ListByFarm(c.Request.Context(), farmID, filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if eggs == nil {
		eggs = []models.Egg{}
	}

	c.JSON(http.StatusOK, eggs)
}

// MarkPicked flips a farm's unpicked eggs to picked, optionally bounded in time.
func (h *EggHandler) MarkPicked(c *gin.Context) {
	farmID, ok := parseObjectID(c, "farm_id", "farm")
	if !ok {
		return
	}

	var req models.PickEggsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("invalid pick payload", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "before must be an RFC 3339 timestamp"})
			return
		}
	}

	if err := h.svc.MarkPicked(c.Request.Context(), farmID, req.Before); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusOK)
}

// parseObjectID extracts and validates an ObjectID path parameter. On failure
// it writes a 400 response and returns ok=false.
func parseObjectID(c *gin.Context, param, entity string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + entity + " id"})
		return primitive.NilObjectID, false
	}
	return id, true
}
