package odds

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nssports/sportsbook/models"
	"gorm.io/gorm"
)

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new odds configuration repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// GetActiveConfig returns the single active configuration, or
// ErrConfigMissing when none is active.
func (r *repository) GetActiveConfig(ctx context.Context) (*models.OddsConfig, error) {
	var cfg models.OddsConfig
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrConfigMissing
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *repository) GetConfigByID(ctx context.Context, id uuid.UUID) (*models.OddsConfig, error) {
	var cfg models.OddsConfig
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *repository) CreateConfig(ctx context.Context, cfg *models.OddsConfig) error {
	return r.db.WithContext(ctx).Create(cfg).Error
}

func (r *repository) DeactivateConfig(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.OddsConfig{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("configuration %s was not active", id)
	}
	return nil
}

func (r *repository) CreateHistory(ctx context.Context, h *models.OddsConfigHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) ListHistory(ctx context.Context, limit int) ([]models.OddsConfigHistory, error) {
	var history []models.OddsConfigHistory
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&history).Error
	return history, err
}
