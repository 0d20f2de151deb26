package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/anypeace-oss/jeda/internal/errors"
	"github.com/anypeace-oss/jeda/internal/middleware"
	"github.com/anypeace-oss/jeda/internal/service"
)

type StatsHandler struct {
	statsService *service.StatsService
}

// trackRequest uses a pointer so a missing focusTime is distinguishable
// from an explicit zero.
type trackRequest struct {
	FocusTime *float64 `json:"focusTime"`
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) Track(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": gin.H{"code": "unauthorized", "message": "unauthorized"},
		})
		return
	}

	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.Validation(apperrors.FieldErrors{
			"focusTime": {"focusTime must be a number"},
		}))
		return
	}
	if req.FocusTime == nil {
		writeError(c, apperrors.Validation(apperrors.FieldErrors{
			"focusTime": {"focusTime is required"},
		}))
		return
	}
	if *req.FocusTime < 0 {
		writeError(c, apperrors.Validation(apperrors.FieldErrors{
			"focusTime": {"focusTime must be greater than or equal to 0"},
		}))
		return
	}

	stat, apiErr := h.statsService.Track(c.Request.Context(), userID, int(*req.FocusTime))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, stat)
}

func (h *StatsHandler) Summary(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": gin.H{"code": "unauthorized", "message": "unauthorized"},
		})
		return
	}

	summary, apiErr := h.statsService.Summary(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *StatsHandler) Rankings(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": gin.H{"code": "unauthorized", "message": "unauthorized"},
		})
		return
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 25)

	rankings, apiErr := h.statsService.Rankings(c.Request.Context(), page, limit)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, rankings)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
