package settlement

import (
	"github.com/gin-gonic/gin"
	"github.com/nssports/sportsbook/app/ledger"
	"github.com/nssports/sportsbook/internal/logger"
	"gorm.io/gorm"
)

// Dependencies represent the dependencies needed for the settlement module
type Dependencies struct {
	DB         *gorm.DB
	Config     *Config
	LedgerRepo ledger.Repository
	LedgerSvc  ledger.Service
	Logger     logger.Logger
}

// Init wires the settlement module and returns its service and scheduler.
// The caller owns the scheduler lifecycle (Start/Stop).
func Init(r *gin.RouterGroup, deps Dependencies) (Service, *Scheduler) {
	cfg := deps.Config
	if cfg == nil {
		cfg = GetDefaultConfig()
	}

	repo := NewRepository(deps.DB)
	grader := NewGrader()
	srvs := NewService(deps.DB, repo, grader, deps.LedgerRepo, deps.LedgerSvc, cfg, deps.Logger)
	scheduler := NewScheduler(srvs, cfg, deps.Logger)
	handler := NewHandler(srvs, scheduler)

	group := r.Group("/settlement")
	group.POST("/bets/:bet_id", handler.SettleBet)
	group.POST("/sweep", handler.RunSweep)
	group.GET("/queue", handler.GetQueueStats)

	return srvs, scheduler
}
