package settlement

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nssports/sportsbook/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSettler struct {
	mu      sync.Mutex
	settled []uuid.UUID
	games   []uuid.UUID
	done    chan struct{}
}

func (s *stubSettler) SettleBet(_ context.Context, _ uuid.UUID) (*BetResult, error) {
	return nil, nil
}

func (s *stubSettler) SettleGame(_ context.Context, gameID uuid.UUID) (*GameReport, error) {
	s.mu.Lock()
	s.settled = append(s.settled, gameID)
	s.mu.Unlock()
	if s.done != nil {
		s.done <- struct{}{}
	}
	return &GameReport{GameID: gameID.String(), CountsByStatus: map[string]int{}}, nil
}

func (s *stubSettler) Sweep(_ context.Context) (*SweepReport, error) {
	return &SweepReport{}, nil
}

func (s *stubSettler) FindSettleableGames(_ context.Context, _ int) ([]uuid.UUID, error) {
	return s.games, nil
}

func (s *stubSettler) settledGames() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uuid.UUID, len(s.settled))
	copy(out, s.settled)
	return out
}

func testSchedulerConfig() *Config {
	return &Config{
		Workers:       2,
		SweepInterval: time.Hour, // keep the ticker quiet during tests
		SweepBatch:    10,
		DedupeWindow:  time.Minute,
	}
}

func TestScheduler_ProcessesEnqueuedJob(t *testing.T) {
	settler := &stubSettler{done: make(chan struct{}, 10)}
	scheduler := NewScheduler(settler, testSchedulerConfig(), logger.NewNullLogger())
	scheduler.Start()
	defer scheduler.Stop()

	gameID := uuid.New()
	scheduler.EnqueueGame(gameID, PriorityWebhook)

	select {
	case <-settler.done:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed")
	}
	assert.Equal(t, []uuid.UUID{gameID}, settler.settledGames())
}

func TestScheduler_DeduplicatesWithinWindow(t *testing.T) {
	settler := &stubSettler{}
	scheduler := NewScheduler(settler, testSchedulerConfig(), logger.NewNullLogger())
	// not started: jobs stay queued so dedup is observable

	gameID := uuid.New()
	scheduler.EnqueueGame(gameID, PriorityWebhook)
	scheduler.EnqueueGame(gameID, PriorityWebhook)
	scheduler.EnqueueGame(gameID, PriorityWebhook)

	assert.Equal(t, 1, scheduler.QueueDepth())

	// a different game is a different job
	scheduler.EnqueueGame(uuid.New(), PriorityWebhook)
	assert.Equal(t, 2, scheduler.QueueDepth())
}

func TestScheduler_PriorityOrdering(t *testing.T) {
	settler := &stubSettler{}
	scheduler := NewScheduler(settler, testSchedulerConfig(), logger.NewNullLogger())

	sweepGame := uuid.New()
	webhookGame := uuid.New()
	scheduler.EnqueueGame(sweepGame, PrioritySweep)
	scheduler.EnqueueGame(webhookGame, PriorityWebhook)

	// the webhook job preempts the earlier sweep job
	job, ok := scheduler.dequeue()
	require.True(t, ok)
	assert.Equal(t, webhookGame, job.GameID)
	assert.Equal(t, PriorityWebhook, job.Priority)

	job, ok = scheduler.dequeue()
	require.True(t, ok)
	assert.Equal(t, sweepGame, job.GameID)
}

func TestScheduler_FIFOWithinPriorityBand(t *testing.T) {
	settler := &stubSettler{}
	scheduler := NewScheduler(settler, testSchedulerConfig(), logger.NewNullLogger())

	first := uuid.New()
	second := uuid.New()
	scheduler.EnqueueGame(first, PrioritySweep)
	scheduler.EnqueueGame(second, PrioritySweep)

	job, ok := scheduler.dequeue()
	require.True(t, ok)
	assert.Equal(t, first, job.GameID)
}

func TestScheduler_ReleasesGameLocks(t *testing.T) {
	settler := &stubSettler{done: make(chan struct{}, 10)}
	scheduler := NewScheduler(settler, testSchedulerConfig(), logger.NewNullLogger())
	scheduler.Start()
	defer scheduler.Stop()

	scheduler.EnqueueGame(uuid.New(), PriorityWebhook)
	select {
	case <-settler.done:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed")
	}

	// the lock registry holds only in-flight games
	assert.Eventually(t, func() bool {
		return scheduler.gameLockCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_StopDrainsWorkers(t *testing.T) {
	settler := &stubSettler{}
	scheduler := NewScheduler(settler, testSchedulerConfig(), logger.NewNullLogger())
	scheduler.Start()

	done := make(chan struct{})
	go func() {
		scheduler.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}

	// enqueue after stop is dropped, not queued
	scheduler.EnqueueGame(uuid.New(), PriorityWebhook)
	assert.Equal(t, 0, scheduler.QueueDepth())
}

func TestScheduler_SweepEnqueuesSettleableGames(t *testing.T) {
	games := []uuid.UUID{uuid.New(), uuid.New()}
	settler := &stubSettler{games: games}
	scheduler := NewScheduler(settler, testSchedulerConfig(), logger.NewNullLogger())

	scheduler.enqueueSweep()
	assert.Equal(t, 2, scheduler.QueueDepth())
}
