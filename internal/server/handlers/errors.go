package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/egguard/egguard-backend/internal/domain/apperr"
)

// writeError maps an application error to its HTTP status and a client-safe
// message. Anything unclassified is a 500 with no internals leaked.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindInvalidState:
		status = http.StatusBadRequest
	case apperr.KindDuplicate:
		status = http.StatusConflict
	case apperr.KindUploadFailed:
		status = http.StatusInternalServerError
	default:
		logger.Error("unhandled error", zap.Error(err))
	}

	c.JSON(status, gin.H{"error": apperr.MessageOf(err, "internal server error")})
}
