package settlement

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nssports/sportsbook/app/api"
	"github.com/nssports/sportsbook/models"
)

type Handler struct {
	service   Service
	scheduler *Scheduler
}

func NewHandler(service Service, scheduler *Scheduler) *Handler {
	return &Handler{service: service, scheduler: scheduler}
}

// SettleBet settles one bet synchronously. Already-settled bets return their
// stored terminal state; bets without a final result report deferred.
func (h *Handler) SettleBet(c *gin.Context) {
	betID, err := uuid.Parse(c.Param("bet_id"))
	if err != nil {
		api.BadRequestResponse(c, "invalid bet ID")
		return
	}

	result, err := h.service.SettleBet(c.Request.Context(), betID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Bet")
			return
		}
		api.InternalErrorResponse(c, "Failed to settle bet")
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Settlement result", result)
}

// RunSweep runs one bounded sweep synchronously and returns its report
func (h *Handler) RunSweep(c *gin.Context) {
	report, err := h.service.Sweep(c.Request.Context())
	if err != nil {
		api.InternalErrorResponse(c, "Sweep failed")
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Sweep complete", report)
}

// GetQueueStats reports scheduler queue depth
func (h *Handler) GetQueueStats(c *gin.Context) {
	api.SuccessResponse(c, http.StatusOK, "Queue stats", gin.H{
		"queue_depth": h.scheduler.QueueDepth(),
	})
}
