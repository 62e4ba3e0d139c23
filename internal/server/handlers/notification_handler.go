package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/egguard/egguard-backend/internal/domain/models"
	notifsvc "github.com/egguard/egguard-backend/internal/service/notification"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	// maxImageSize bounds the notification photo at 10 MiB.
	maxImageSize = 10 << 20
)

var sortableFields = map[string]string{
	"timestamp": "timestamp",
	"severity":  "severity",
}

// NotificationHandler handles notification HTTP endpoints.
type NotificationHandler struct {
	svc    notifsvc.Service
	logger *zap.Logger
}

// NewNotificationHandler constructs the HTTP handler adapter.
func NewNotificationHandler(svc notifsvc.Service, logger *zap.Logger) *NotificationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationHandler{svc: svc, logger: logger}
}

// Register ingests a robot's notification, posted as multipart form data with
// an optional image part.
func (h *NotificationHandler) Register(c *gin.Context) {
	robotID, ok := parseObjectID(c, "robot_id", "robot")
	if !ok {
		return
	}

	var req models.RegisterNotificationRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("invalid notification payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "message (max 1000 chars) and severity (INFO, WARNING or CRITICAL) must be provided"})
		return
	}

	image, ok := h.readImage(c)
	if !ok {
		return
	}

	notification, err := h.svc.Register(c.Request.Context(), robotID, req, image)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, notification)
}

// ListByFarm returns one page of a farm's notifications, newest first by default.
func (h *NotificationHandler) ListByFarm(c *gin.Context) {
	farmID, ok := parseObjectID(c, "farm_id", "farm")
	if !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a non-negative integer"})
		return
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultPageSize)))
	if err != nil || size < 1 || size > maxPageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size must be between 1 and 100"})
		return
	}

	pageReq := models.PageRequest{Page: page, Size: size, SortField: "timestamp", Desc: true}
	if raw := c.Query("sort"); raw != "" {
		if !parseSort(raw, &pageReq) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sort must be <field>[,asc|desc] with field one of: timestamp, severity"})
			return
		}
	}

	result, err := h.svc.ListByFarm(c.Request.Context(), farmID, pageReq)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// readImage extracts the optional image part. A missing part yields (nil, true).
func (h *NotificationHandler) readImage(c *gin.Context) (*notifsvc.Image, bool) {
	header, err := c.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, true
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image part"})
		return nil, false
	}

	if header.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image must not exceed 10 MiB"})
		return nil, false
	}

	file, err := header.Open()
	if err != nil {
		h.logger.Error("failed to open uploaded image", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image part"})
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("failed to read uploaded image", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image part"})
		return nil, false
	}

	return &notifsvc.Image{
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
	}, true
}

// parseSort understands the "<field>[,asc|desc]" query format.
func parseSort(raw string, pageReq *models.PageRequest) bool {
	parts := strings.Split(raw, ",")
	field, ok := sortableFields[parts[0]]
	if !ok {
		return false
	}
	pageReq.SortField = field

	if len(parts) > 1 {
		switch strings.ToLower(parts[1]) {
		case "asc":
			pageReq.Desc = false
		case "desc":
			pageReq.Desc = true
		default:
			return false
		}
	}
	return len(parts) <= 2
}
