package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nssports/sportsbook/app/api"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Devig removes the margin from a two-sided market
func (h *Handler) Devig(c *gin.Context) {
	var req DevigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	result, err := Devig(req.SideAOdds, req.SideBOdds)
	if err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Devigged market", result)
}

// Kelly returns a fractional Kelly stake recommendation
func (h *Handler) Kelly(c *gin.Context) {
	var req KellyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	result, err := Kelly(req.TrueProbability, req.DecimalOdds, req.Bankroll, req.Multiplier)
	if err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Kelly recommendation", result)
}
