package odds

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nssports/sportsbook/app/api"
	"github.com/nssports/sportsbook/models"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetActiveConfig returns the currently active odds configuration
func (h *Handler) GetActiveConfig(c *gin.Context) {
	cfg, err := h.service.GetActiveConfig(c.Request.Context())
	if err != nil {
		if errors.Is(err, models.ErrConfigMissing) {
			api.NotFoundResponse(c, "Active odds configuration")
			return
		}
		api.InternalErrorResponse(c, "Failed to get odds configuration")
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Active odds configuration", cfg)
}

// ReplaceConfig installs a new active configuration
func (h *Handler) ReplaceConfig(c *gin.Context) {
	var req ReplaceConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	cfg, err := h.service.ReplaceConfig(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidMargin) || errors.Is(err, models.ErrInvalidRounding) {
			api.ValidationErrorResponse(c, err.Error())
			return
		}
		api.InternalErrorResponse(c, "Failed to replace odds configuration")
		return
	}
	api.CreatedResponse(c, "Odds configuration replaced", cfg)
}

// GetHistory lists configuration replacement records, newest first
func (h *Handler) GetHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	history, err := h.service.GetHistory(c.Request.Context(), limit)
	if err != nil {
		api.InternalErrorResponse(c, "Failed to get configuration history")
		return
	}
	api.ListResponse(c, "Configuration history", history, len(history))
}

// QuoteMarket prices a raw two-sided market under the active configuration
func (h *Handler) QuoteMarket(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	quote, err := h.service.QuoteMarket(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidOdds) {
			api.ValidationErrorResponse(c, err.Error())
			return
		}
		api.InternalErrorResponse(c, "Failed to price market")
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Bound quote", quote)
}
