package betting

import (
	"github.com/gin-gonic/gin"
	"github.com/nssports/sportsbook/app/ledger"
	"gorm.io/gorm"
)

// Dependencies represent the dependencies needed for the betting module
type Dependencies struct {
	DB         *gorm.DB
	Config     *Config
	LedgerRepo ledger.Repository
	LedgerSvc  ledger.Service
}

func Init(r *gin.RouterGroup, deps Dependencies) Service {
	cfg := deps.Config
	if cfg == nil {
		cfg = GetDefaultConfig()
	}

	repo := NewRepository(deps.DB)
	composer := NewComposer(cfg)
	srvs := NewService(deps.DB, repo, deps.LedgerRepo, deps.LedgerSvc, composer, cfg)
	handler := NewHandler(srvs)

	group := r.Group("/bets")
	group.POST("/:user_id", handler.PlaceBet)
	group.GET("/:user_id", handler.GetBets)
	group.GET("/:user_id/:bet_id", handler.GetBet)

	return srvs
}
