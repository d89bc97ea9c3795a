package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Roblokonha/StudyVault/internal/http/response"
	"github.com/Roblokonha/StudyVault/internal/platform/apierr"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
)

// uuidParam parses the named path parameter, answering 400 itself on failure.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := uuid.Parse(raw)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_"+name, err)
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return false
	}
	return true
}

func intQuery(c *gin.Context, name string, def int) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// respondDomainError maps coded errors onto HTTP statuses. Server side failures are logged.
func respondDomainError(c *gin.Context, log *logger.Logger, msg string, err error) {
	ae := apierr.FromError(err)
	if ae.Status >= http.StatusInternalServerError {
		log.Error(msg, "error", err)
	}
	response.RespondError(c, ae.Status, ae.Code, err)
}
