package settlement

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nssports/sportsbook/app/ledger"
	"github.com/nssports/sportsbook/internal/logger"
	"github.com/nssports/sportsbook/internal/testutil"
	"github.com/nssports/sportsbook/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockRepo struct {
	bets          map[uuid.UUID]*models.Bet
	games         map[uuid.UUID]*models.Game
	settleResults []bool
	settleCalls   int
}

func (m *mockRepo) WithTx(_ *gorm.DB) Repository { return m }

func (m *mockRepo) GetBetByID(_ context.Context, id uuid.UUID) (*models.Bet, error) {
	bet, ok := m.bets[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	copied := *bet
	return &copied, nil
}

func (m *mockRepo) SettleBet(_ context.Context, betID uuid.UUID, status models.BetStatus, at time.Time) (bool, error) {
	won := true
	if m.settleCalls < len(m.settleResults) {
		won = m.settleResults[m.settleCalls]
	}
	m.settleCalls++
	if won {
		bet := m.bets[betID]
		bet.Status = status
		bet.SettledAt = &at
	} else {
		// the competing worker's transition is already committed
		m.bets[betID].Status = models.BetStatusWon
	}
	return won, nil
}

func (m *mockRepo) GetPendingBetsByGame(_ context.Context, gameID uuid.UUID) ([]models.Bet, error) {
	var out []models.Bet
	for _, bet := range m.bets {
		if bet.Status != models.BetStatusPending {
			continue
		}
		for _, leg := range bet.Legs {
			if leg.GameID == gameID {
				out = append(out, *bet)
				break
			}
		}
	}
	return out, nil
}

func (m *mockRepo) GetGamesByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Game, error) {
	out := make(map[uuid.UUID]*models.Game)
	for _, id := range ids {
		if g, ok := m.games[id]; ok {
			out[id] = g
		}
	}
	return out, nil
}

func (m *mockRepo) FindSettleableGames(_ context.Context, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id := range m.games {
		ids = append(ids, id)
		if len(ids) == limit {
			break
		}
	}
	return ids, nil
}

type mockLedgerRepo struct {
	ledger.Repository
	account *models.Account
	entries []*models.LedgerEntry
}

func (m *mockLedgerRepo) WithTx(_ *gorm.DB) ledger.Repository { return m }

func (m *mockLedgerRepo) GetAccountForUpdate(_ context.Context, _ uuid.UUID) (*models.Account, error) {
	return m.account, nil
}

func (m *mockLedgerRepo) UpdateAccount(_ context.Context, _ *models.Account) error { return nil }

func (m *mockLedgerRepo) CreateEntry(_ context.Context, entry *models.LedgerEntry) error {
	m.entries = append(m.entries, entry)
	return nil
}

type mockLedgerService struct {
	ledger.Service
	invalidated int
}

func (m *mockLedgerService) InvalidateRisk(_ context.Context, _ uuid.UUID) {
	m.invalidated++
}

func wonSingle(game *models.Game) *models.Bet {
	return &models.Bet{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		BetType:         models.BetTypeSingle,
		Status:          models.BetStatusPending,
		Stake:           decimal.NewFromInt(10),
		Odds:            -110,
		PotentialPayout: decimal.RequireFromString("19.09"),
		Legs: models.BetLegs{{
			GameID: game.ID, Market: models.MarketMoneyline, Selection: models.SelectionHome, Odds: -110,
		}},
	}
}

func TestService_SettleBet_WinCreditsLedger(t *testing.T) {
	game := finishedGame(24, 17)
	bet := wonSingle(game)

	repo := &mockRepo{
		bets:  map[uuid.UUID]*models.Bet{bet.ID: bet},
		games: map[uuid.UUID]*models.Game{game.ID: game},
	}
	ledgerRepo := &mockLedgerRepo{account: &models.Account{ID: uuid.New(), UserID: bet.UserID, Balance: decimal.NewFromInt(100)}}
	ledgerSvc := &mockLedgerService{}

	db, mock := testutil.NewMockDB(t)
	svc := NewService(db, repo, NewGrader(), ledgerRepo, ledgerSvc, GetDefaultConfig(), logger.NewNullLogger())

	mock.ExpectBegin()
	mock.ExpectCommit()

	result, err := svc.SettleBet(context.Background(), bet.ID)
	require.NoError(t, err)

	assert.Equal(t, string(models.BetStatusWon), result.Status)
	assert.True(t, result.Payout.Equal(decimal.RequireFromString("19.09")))

	require.Len(t, ledgerRepo.entries, 1)
	entry := ledgerRepo.entries[0]
	assert.Equal(t, models.LedgerReasonPayout, entry.Reason)
	assert.True(t, entry.Delta.Equal(decimal.RequireFromString("19.09")))
	assert.True(t, entry.BalanceAfter.Equal(decimal.RequireFromString("119.09")))
	require.NotNil(t, entry.ReferenceID)
	assert.Equal(t, bet.ID, *entry.ReferenceID)
	assert.Equal(t, 1, ledgerSvc.invalidated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SettleBet_LossLeavesBalanceAlone(t *testing.T) {
	game := finishedGame(10, 24)
	bet := wonSingle(game)

	repo := &mockRepo{
		bets:  map[uuid.UUID]*models.Bet{bet.ID: bet},
		games: map[uuid.UUID]*models.Game{game.ID: game},
	}
	ledgerRepo := &mockLedgerRepo{account: &models.Account{Balance: decimal.NewFromInt(100)}}

	db, mock := testutil.NewMockDB(t)
	svc := NewService(db, repo, NewGrader(), ledgerRepo, &mockLedgerService{}, GetDefaultConfig(), logger.NewNullLogger())

	mock.ExpectBegin()
	mock.ExpectCommit()

	result, err := svc.SettleBet(context.Background(), bet.ID)
	require.NoError(t, err)

	assert.Equal(t, string(models.BetStatusLost), result.Status)
	assert.True(t, result.Payout.IsZero())
	// the status flip alone releases the stake from risk
	assert.Empty(t, ledgerRepo.entries)
	assert.True(t, ledgerRepo.account.Balance.Equal(decimal.NewFromInt(100)))
}

func TestService_SettleBet_AlreadySettledIsNoOp(t *testing.T) {
	game := finishedGame(24, 17)
	bet := wonSingle(game)
	now := time.Now()
	bet.Status = models.BetStatusWon
	bet.SettledAt = &now

	repo := &mockRepo{
		bets:  map[uuid.UUID]*models.Bet{bet.ID: bet},
		games: map[uuid.UUID]*models.Game{game.ID: game},
	}
	ledgerRepo := &mockLedgerRepo{}

	db, _ := testutil.NewMockDB(t)
	svc := NewService(db, repo, NewGrader(), ledgerRepo, &mockLedgerService{}, GetDefaultConfig(), logger.NewNullLogger())

	result, err := svc.SettleBet(context.Background(), bet.ID)
	require.NoError(t, err)

	assert.Equal(t, string(models.BetStatusWon), result.Status)
	// no transaction, no ledger writes
	assert.Empty(t, ledgerRepo.entries)
	assert.Equal(t, 0, repo.settleCalls)
}

func TestService_SettleBet_LosesCASRace(t *testing.T) {
	game := finishedGame(24, 17)
	bet := wonSingle(game)

	repo := &mockRepo{
		bets:          map[uuid.UUID]*models.Bet{bet.ID: bet},
		games:         map[uuid.UUID]*models.Game{game.ID: game},
		settleResults: []bool{false},
	}
	ledgerRepo := &mockLedgerRepo{}

	db, mock := testutil.NewMockDB(t)
	svc := NewService(db, repo, NewGrader(), ledgerRepo, &mockLedgerService{}, GetDefaultConfig(), logger.NewNullLogger())

	mock.ExpectBegin()
	mock.ExpectRollback()

	result, err := svc.SettleBet(context.Background(), bet.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.BetStatusWon), result.Status)
	assert.Empty(t, ledgerRepo.entries)
}

func TestService_SettleBet_DefersWithoutScores(t *testing.T) {
	game := &models.Game{ID: uuid.New(), Status: models.GameStatusFinished}
	bet := wonSingle(game)
	bet.Legs[0].GameID = game.ID

	repo := &mockRepo{
		bets:  map[uuid.UUID]*models.Bet{bet.ID: bet},
		games: map[uuid.UUID]*models.Game{game.ID: game},
	}
	ledgerRepo := &mockLedgerRepo{}

	db, _ := testutil.NewMockDB(t)
	svc := NewService(db, repo, NewGrader(), ledgerRepo, &mockLedgerService{}, GetDefaultConfig(), logger.NewNullLogger())

	result, err := svc.SettleBet(context.Background(), bet.ID)
	require.NoError(t, err)

	assert.True(t, result.Deferred)
	assert.Equal(t, string(models.BetStatusPending), result.Status)
	assert.Empty(t, ledgerRepo.entries)
	assert.Equal(t, 0, repo.settleCalls)
}

func TestService_SettleGame(t *testing.T) {
	game := finishedGame(24, 17)
	winner := wonSingle(game)
	loser := wonSingle(game)
	loser.Legs[0].Selection = models.SelectionAway

	repo := &mockRepo{
		bets:  map[uuid.UUID]*models.Bet{winner.ID: winner, loser.ID: loser},
		games: map[uuid.UUID]*models.Game{game.ID: game},
	}
	ledgerRepo := &mockLedgerRepo{account: &models.Account{Balance: decimal.NewFromInt(100)}}

	db, mock := testutil.NewMockDB(t)
	svc := NewService(db, repo, NewGrader(), ledgerRepo, &mockLedgerService{}, GetDefaultConfig(), logger.NewNullLogger())

	// one transaction per settled bet
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	report, err := svc.SettleGame(context.Background(), game.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, report.BetsSettled)
	assert.Equal(t, 0, report.BetsDeferred)
	assert.Equal(t, 1, report.CountsByStatus["won"])
	assert.Equal(t, 1, report.CountsByStatus["lost"])
}

func TestService_Sweep(t *testing.T) {
	game := finishedGame(24, 17)
	bet := wonSingle(game)

	repo := &mockRepo{
		bets:  map[uuid.UUID]*models.Bet{bet.ID: bet},
		games: map[uuid.UUID]*models.Game{game.ID: game},
	}
	ledgerRepo := &mockLedgerRepo{account: &models.Account{Balance: decimal.NewFromInt(100)}}

	db, mock := testutil.NewMockDB(t)
	svc := NewService(db, repo, NewGrader(), ledgerRepo, &mockLedgerService{}, GetDefaultConfig(), logger.NewNullLogger())

	mock.ExpectBegin()
	mock.ExpectCommit()

	report, err := svc.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.GamesProcessed)
	assert.Equal(t, 1, report.BetsSettled)
	assert.Equal(t, 1, report.CountsByStatus["won"])
}
