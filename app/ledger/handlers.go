package ledger

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nssports/sportsbook/app/api"
	"github.com/nssports/sportsbook/models"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// AdjustBalance applies a deposit, withdrawal or manual adjustment
func (h *Handler) AdjustBalance(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		api.BadRequestResponse(c, "invalid user ID")
		return
	}

	var req AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	entry, err := h.service.AdjustBalance(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInsufficientFunds):
			api.ConflictResponse(c, err.Error())
		case errors.Is(err, models.ErrRecordNotFound):
			api.NotFoundResponse(c, "Account")
		case errors.Is(err, models.ErrInvalidDelta):
			api.ValidationErrorResponse(c, err.Error())
		default:
			api.InternalErrorResponse(c, "Failed to adjust balance")
		}
		return
	}
	api.CreatedResponse(c, "Balance adjusted", entry)
}

// GetSummary returns balance, risk and available funds
func (h *Handler) GetSummary(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		api.BadRequestResponse(c, "invalid user ID")
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Account")
			return
		}
		api.InternalErrorResponse(c, "Failed to get account summary")
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Account summary", summary)
}

// GetEntries lists ledger entries, newest first
func (h *Handler) GetEntries(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		api.BadRequestResponse(c, "invalid user ID")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, err := h.service.Entries(c.Request.Context(), userID, limit, offset)
	if err != nil {
		api.InternalErrorResponse(c, "Failed to list ledger entries")
		return
	}
	api.ListResponse(c, "Ledger entries", entries, len(entries))
}
