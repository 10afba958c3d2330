package betting

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

// PlaceBet accepts a bet composition, prices it and commits the stake as risk
func (h *Handler) PlaceBet(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		api.BadRequestResponse(c, "invalid user ID")
		return
	}

	var req PlaceBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	bet, err := h.service.PlaceBet(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInsufficientFunds):
			api.ConflictResponse(c, err.Error())
		case errors.Is(err, models.ErrGameAlreadyStarted):
			api.ConflictResponse(c, err.Error())
		case errors.Is(err, models.ErrRecordNotFound):
			api.NotFoundResponse(c, "Account")
		case isCompositionError(err):
			api.ValidationErrorResponse(c, err.Error())
		default:
			api.InternalErrorResponse(c, "Failed to place bet")
		}
		return
	}
	api.CreatedResponse(c, "Bet placed", bet)
}

// GetBet returns one of the user's bets
func (h *Handler) GetBet(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		api.BadRequestResponse(c, "invalid user ID")
		return
	}
	betID, err := uuid.Parse(c.Param("bet_id"))
	if err != nil {
		api.BadRequestResponse(c, "invalid bet ID")
		return
	}

	bet, err := h.service.GetBetByID(c.Request.Context(), userID, betID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Bet")
			return
		}
		api.InternalErrorResponse(c, "Failed to get bet")
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Bet", bet)
}

// GetBets lists the user's bets, newest first, optionally filtered by status
func (h *Handler) GetBets(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		api.BadRequestResponse(c, "invalid user ID")
		return
	}

	status := c.Query("status")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	bets, err := h.service.GetUserBets(c.Request.Context(), userID, status, limit, offset)
	if err != nil {
		api.InternalErrorResponse(c, "Failed to list bets")
		return
	}
	api.ListResponse(c, "Bets", bets, len(bets))
}

func isCompositionError(err error) bool {
	for _, target := range []error{
		models.ErrInvalidStake,
		models.ErrStakeTooSmall,
		models.ErrStakeTooLarge,
		models.ErrInvalidBetType,
		models.ErrInvalidOdds,
		models.ErrConflictingLegs,
		models.ErrTooFewLegs,
		models.ErrTooManyLegs,
		models.ErrInvalidTeaserLeg,
		models.ErrInvalidPushRule,
		models.ErrUnsupportedTeaser,
		models.ErrInvalidGameID,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
