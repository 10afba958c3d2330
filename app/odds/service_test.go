package odds

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/nssports/sportsbook/internal/cache"
	"github.com/nssports/sportsbook/internal/logger"
	"github.com/nssports/sportsbook/internal/testutil"
	"github.com/nssports/sportsbook/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockConfigRepo struct {
	active      *models.OddsConfig
	deactivated []uuid.UUID
	created     []*models.OddsConfig
	history     []*models.OddsConfigHistory
}

func (m *mockConfigRepo) WithTx(_ *gorm.DB) Repository { return m }

func (m *mockConfigRepo) GetActiveConfig(_ context.Context) (*models.OddsConfig, error) {
	if m.active == nil {
		return nil, models.ErrConfigMissing
	}
	return m.active, nil
}

func (m *mockConfigRepo) GetConfigByID(_ context.Context, _ uuid.UUID) (*models.OddsConfig, error) {
	return nil, models.ErrRecordNotFound
}

func (m *mockConfigRepo) CreateConfig(_ context.Context, cfg *models.OddsConfig) error {
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	m.created = append(m.created, cfg)
	return nil
}

func (m *mockConfigRepo) DeactivateConfig(_ context.Context, id uuid.UUID) error {
	m.deactivated = append(m.deactivated, id)
	return nil
}

func (m *mockConfigRepo) CreateHistory(_ context.Context, h *models.OddsConfigHistory) error {
	m.history = append(m.history, h)
	return nil
}

func (m *mockConfigRepo) ListHistory(_ context.Context, limit int) ([]models.OddsConfigHistory, error) {
	out := make([]models.OddsConfigHistory, 0, limit)
	for _, h := range m.history {
		out = append(out, *h)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func replaceRequest() *ReplaceConfigRequest {
	return &ReplaceConfigRequest{
		Margins:        map[string]decimal.Decimal{"spread": decimal.NewFromInt(10)},
		Rounding:       "nearest_5",
		LiveMultiplier: decimal.NewFromFloat(1.5),
		ChangedBy:      "ops",
	}
}

func TestService_ReplaceConfig(t *testing.T) {
	prev := testConfig()
	repo := &mockConfigRepo{active: prev}

	invalidations := 0
	mockCache := &cache.Mock[BoundQuote]{
		DeletePrefixFunc: func(_ context.Context, _ string) error {
			invalidations++
			return nil
		},
	}
	engine := NewEngine(repo, mockCache, logger.NewNullLogger())

	db, mock := testutil.NewMockDB(t)
	svc := NewService(db, repo, engine)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.ReplaceConfig(context.Background(), replaceRequest())
	require.NoError(t, err)

	assert.True(t, resp.IsActive)
	assert.Equal(t, []uuid.UUID{prev.ID}, repo.deactivated)
	require.Len(t, repo.created, 1)
	require.Len(t, repo.history, 1)
	assert.Equal(t, repo.created[0].ID, repo.history[0].ConfigID)
	assert.NotEmpty(t, repo.history[0].PreviousValues)
	// the margin cache is flushed before the replacement commits
	assert.Equal(t, 1, invalidations)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ReplaceConfig_FirstInstall(t *testing.T) {
	repo := &mockConfigRepo{}
	engine := NewEngine(repo, &cache.Mock[BoundQuote]{}, logger.NewNullLogger())

	db, mock := testutil.NewMockDB(t)
	svc := NewService(db, repo, engine)

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := svc.ReplaceConfig(context.Background(), replaceRequest())
	require.NoError(t, err)

	assert.Empty(t, repo.deactivated)
	require.Len(t, repo.history, 1)
	assert.Empty(t, repo.history[0].PreviousValues)
}

func TestService_ReplaceConfig_InvalidationFailureAborts(t *testing.T) {
	repo := &mockConfigRepo{active: testConfig()}
	mockCache := &cache.Mock[BoundQuote]{
		DeletePrefixFunc: func(_ context.Context, _ string) error {
			return errors.New("redis down")
		},
	}
	engine := NewEngine(repo, mockCache, logger.NewNullLogger())

	db, mock := testutil.NewMockDB(t)
	svc := NewService(db, repo, engine)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.ReplaceConfig(context.Background(), replaceRequest())
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ReplaceConfig_RejectsInvalidConfig(t *testing.T) {
	repo := &mockConfigRepo{}
	engine := NewEngine(repo, &cache.Mock[BoundQuote]{}, logger.NewNullLogger())
	db, _ := testutil.NewMockDB(t)
	svc := NewService(db, repo, engine)

	req := replaceRequest()
	req.Margins = map[string]decimal.Decimal{"spread": decimal.NewFromInt(-1)}

	_, err := svc.ReplaceConfig(context.Background(), req)
	assert.ErrorIs(t, err, models.ErrInvalidMargin)
	assert.Empty(t, repo.created)
}
