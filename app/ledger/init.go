package ledger

import (
	"github.com/gin-gonic/gin"
	"github.com/nssports/sportsbook/internal/cache"
	"gorm.io/gorm"
)

// Dependencies represent the dependencies needed for the ledger module
type Dependencies struct {
	DB        *gorm.DB
	RiskCache cache.Cache[string]
}

func Init(r *gin.RouterGroup, deps Dependencies) Service {
	repo := NewRepository(deps.DB)
	srvs := NewService(deps.DB, repo, deps.RiskCache)
	handler := NewHandler(srvs)

	group := r.Group("/ledger")
	group.POST("/:user_id/adjust", handler.AdjustBalance)
	group.GET("/:user_id/summary", handler.GetSummary)
	group.GET("/:user_id/entries", handler.GetEntries)

	return srvs
}
