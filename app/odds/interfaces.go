package odds

import (
	"context"

	"github.com/google/uuid"
	"github.com/nssports/sportsbook/models"
	"gorm.io/gorm"
)

// ConfigReader is the read side of the configuration store, consumed by the
// margin engine on every pricing call.
type ConfigReader interface {
	GetActiveConfig(ctx context.Context) (*models.OddsConfig, error)
}

// Repository defines the interface for odds configuration data access
type Repository interface {
	ConfigReader
	WithTx(tx *gorm.DB) Repository

	GetConfigByID(ctx context.Context, id uuid.UUID) (*models.OddsConfig, error)
	CreateConfig(ctx context.Context, cfg *models.OddsConfig) error
	DeactivateConfig(ctx context.Context, id uuid.UUID) error
	CreateHistory(ctx context.Context, h *models.OddsConfigHistory) error
	ListHistory(ctx context.Context, limit int) ([]models.OddsConfigHistory, error)
}

// Service defines the interface for odds configuration and pricing logic
type Service interface {
	GetActiveConfig(ctx context.Context) (*ConfigResponse, error)
	ReplaceConfig(ctx context.Context, req *ReplaceConfigRequest) (*ConfigResponse, error)
	GetHistory(ctx context.Context, limit int) ([]HistoryResponse, error)
	QuoteMarket(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error)
}
