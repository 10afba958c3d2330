package games

import (
	"github.com/gin-gonic/gin"
	"github.com/nssports/sportsbook/internal/logger"
	"gorm.io/gorm"
)

// Dependencies represent the dependencies needed for the games module
type Dependencies struct {
	DB            *gorm.DB
	Trigger       SettlementTrigger
	WebhookSecret string
	Logger        logger.Logger
}

func Init(r *gin.RouterGroup, deps Dependencies) Service {
	repo := NewRepository(deps.DB)
	srvs := NewService(deps.DB, repo, deps.Trigger, deps.WebhookSecret, deps.Logger)
	handler := NewHandler(srvs)

	group := r.Group("/games")
	group.POST("", handler.CreateGame)
	group.GET("", handler.GetGames)
	group.GET("/:game_id", handler.GetGame)
	group.POST("/results/webhook", handler.ResultWebhook)

	return srvs
}
