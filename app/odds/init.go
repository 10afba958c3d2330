package odds

import (
	"github.com/gin-gonic/gin"
	"github.com/nssports/sportsbook/internal/cache"
	"github.com/nssports/sportsbook/internal/logger"
	"gorm.io/gorm"
)

// Dependencies represent the dependencies needed for the odds module
type Dependencies struct {
	DB     *gorm.DB
	Cache  cache.Cache[BoundQuote]
	Logger logger.Logger
}

func Init(r *gin.RouterGroup, deps Dependencies) (*Engine, Service) {
	repo := NewRepository(deps.DB)
	engine := NewEngine(repo, deps.Cache, deps.Logger)
	srvs := NewService(deps.DB, repo, engine)
	handler := NewHandler(srvs)

	oddsGroup := r.Group("/odds")
	oddsGroup.GET("/config", handler.GetActiveConfig)
	oddsGroup.PUT("/config", handler.ReplaceConfig)
	oddsGroup.GET("/config/history", handler.GetHistory)
	oddsGroup.POST("/quote", handler.QuoteMarket)

	return engine, srvs
}
