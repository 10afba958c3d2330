package odds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nssports/sportsbook/models"
	"gorm.io/gorm"
)

type service struct {
	db     *gorm.DB
	repo   Repository
	engine *Engine
}

// NewService creates a new odds configuration service
func NewService(db *gorm.DB, repo Repository, engine *Engine) Service {
	return &service{db: db, repo: repo, engine: engine}
}

func (s *service) GetActiveConfig(ctx context.Context) (*ConfigResponse, error) {
	cfg, err := s.repo.GetActiveConfig(ctx)
	if err != nil {
		if errors.Is(err, models.ErrConfigMissing) {
			return nil, models.ErrConfigMissing
		}
		return nil, fmt.Errorf("failed to get active configuration: %w", err)
	}
	return ToConfigResponse(cfg), nil
}

// ReplaceConfig installs a new active configuration. The prior configuration
// is deactivated, a history record is appended, and the margin cache is
// invalidated before the transaction commits, so no request can observe a
// quote priced under a configuration that is no longer active.
func (s *service) ReplaceConfig(ctx context.Context, req *ReplaceConfigRequest) (*ConfigResponse, error) {
	next := req.ToModel()
	if err := next.Validate(); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		var prevValues models.JSONMap
		prev, err := txRepo.GetActiveConfig(ctx)
		switch {
		case err == nil:
			if err := txRepo.DeactivateConfig(ctx, prev.ID); err != nil {
				return fmt.Errorf("failed to deactivate configuration: %w", err)
			}
			prevValues = configSnapshot(prev)
		case errors.Is(err, models.ErrConfigMissing):
			// first configuration ever installed
		default:
			return fmt.Errorf("failed to load active configuration: %w", err)
		}

		if err := txRepo.CreateConfig(ctx, next); err != nil {
			return fmt.Errorf("failed to create configuration: %w", err)
		}

		history := &models.OddsConfigHistory{
			ConfigID:       next.ID,
			PreviousValues: prevValues,
			NewValues:      configSnapshot(next),
			ChangedBy:      req.ChangedBy,
		}
		if err := txRepo.CreateHistory(ctx, history); err != nil {
			return fmt.Errorf("failed to append configuration history: %w", err)
		}

		// Invalidation failure aborts the replacement rather than leaving
		// stale quotes behind a committed configuration.
		if err := s.engine.InvalidateCache(ctx); err != nil {
			return fmt.Errorf("failed to invalidate margin cache: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ToConfigResponse(next), nil
}

func (s *service) GetHistory(ctx context.Context, limit int) ([]HistoryResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	records, err := s.repo.ListHistory(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list configuration history: %w", err)
	}
	responses := make([]HistoryResponse, len(records))
	for i := range records {
		h := records[i]
		responses[i] = HistoryResponse{
			ID:             h.ID.String(),
			ConfigID:       h.ConfigID.String(),
			PreviousValues: h.PreviousValues,
			NewValues:      h.NewValues,
			ChangedBy:      h.ChangedBy,
			CreatedAt:      h.CreatedAt,
		}
	}
	return responses, nil
}

func (s *service) QuoteMarket(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	raw := &RawMarket{
		Market:    models.MarketType(req.Market),
		League:    req.League,
		Live:      req.Live,
		Line:      req.Line,
		SideAOdds: req.SideAOdds,
		SideBOdds: req.SideBOdds,
	}
	quote, err := s.engine.Price(ctx, raw)
	if err != nil {
		return nil, err
	}
	return &QuoteResponse{
		Market:      string(quote.Market),
		League:      quote.League,
		Live:        quote.Live,
		Line:        quote.Line,
		SideAOdds:   quote.SideAOdds,
		SideBOdds:   quote.SideBOdds,
		ImpliedHold: quote.ImpliedHold,
		ConfigID:    quote.ConfigID,
	}, nil
}

// configSnapshot flattens a configuration into the history JSONB shape.
func configSnapshot(cfg *models.OddsConfig) models.JSONMap {
	raw, _ := json.Marshal(cfg)
	var snapshot models.JSONMap
	_ = json.Unmarshal(raw, &snapshot)
	return snapshot
}
