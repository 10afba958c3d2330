package games

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/nssports/sportsbook/app/api"
	"github.com/nssports/sportsbook/models"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw webhook body.
const SignatureHeader = "X-Result-Signature"

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateGame registers an upcoming game
func (h *Handler) CreateGame(c *gin.Context) {
	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	game, err := h.service.CreateGame(c.Request.Context(), &req)
	if err != nil {
		api.InternalErrorResponse(c, "Failed to create game")
		return
	}
	api.CreatedResponse(c, "Game created", game)
}

// GetGame returns one game
func (h *Handler) GetGame(c *gin.Context) {
	id, err := uuid.Parse(c.Param("game_id"))
	if err != nil {
		api.BadRequestResponse(c, "invalid game ID")
		return
	}

	game, err := h.service.GetGame(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Game")
			return
		}
		api.InternalErrorResponse(c, "Failed to get game")
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Game", game)
}

// GetGames lists games ordered by start time
func (h *Handler) GetGames(c *gin.Context) {
	status := c.Query("status")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	games, err := h.service.ListGames(c.Request.Context(), status, limit, offset)
	if err != nil {
		api.InternalErrorResponse(c, "Failed to list games")
		return
	}
	api.ListResponse(c, "Games", games, len(games))
}

// ResultWebhook ingests a signed result update from the external feed. The
// signature covers the raw body, so the payload is read before binding.
func (h *Handler) ResultWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		api.BadRequestResponse(c, "unreadable payload")
		return
	}

	if err := h.service.VerifySignature(payload, c.GetHeader(SignatureHeader)); err != nil {
		api.UnauthorizedResponse(c, "invalid signature")
		return
	}

	var req ResultRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	game, err := h.service.RecordResult(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Game")
			return
		}
		api.InternalErrorResponse(c, "Failed to record result")
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Result recorded", game)
}
