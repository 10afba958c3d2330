package settlement

import (
	"container/heap"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nssports/sportsbook/internal/logger"
)

// Priority levels for settlement jobs. Webhook-driven jobs preempt sweep
// jobs in the same queue.
const (
	PrioritySweep   = 10
	PriorityWebhook = 100
)

// Job is one unit of settlement work: grade every pending bet on a game.
type Job struct {
	GameID   uuid.UUID
	Priority int
	// Epoch is the trigger time bucketed by the dedupe window; (GameID,
	// Epoch) is the job's logical identity.
	Epoch int64

	seq int64
}

func (j *Job) key() string {
	return fmt.Sprintf("%s:%d", j.GameID, j.Epoch)
}

// jobQueue is a max-heap on priority with FIFO order inside a priority band.
type jobQueue []*Job

func (q jobQueue) Len() int { return len(q) }

func (q jobQueue) Less(i, j int) bool {
	if q[i].Priority != q[j].Priority {
		return q[i].Priority > q[j].Priority
	}
	return q[i].seq < q[j].seq
}

func (q jobQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *jobQueue) Push(x interface{}) {
	*q = append(*q, x.(*Job))
}

func (q *jobQueue) Pop() interface{} {
	old := *q
	n := len(old)
	job := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return job
}

// Scheduler runs the settlement worker pool. A periodic sweep enqueues
// finished games with pending bets at low priority; result webhooks enqueue
// at high priority through EnqueueGame. Workers serialize per game so two of
// them never grade the same game concurrently, on top of the transactional
// compare-and-swap each bet already carries.
type Scheduler struct {
	service Service
	config  *Config
	logger  logger.Logger

	mu       sync.Mutex
	cond     *sync.Cond
	queue    jobQueue
	enqueued map[string]struct{}
	nextSeq  int64
	stopped  bool

	gameLocksMu sync.Mutex
	gameLocks   map[uuid.UUID]*gameLock

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewScheduler creates a new settlement scheduler
func NewScheduler(service Service, config *Config, lg logger.Logger) *Scheduler {
	s := &Scheduler{
		service:   service,
		config:    config,
		logger:    lg,
		enqueued:  make(map[string]struct{}),
		gameLocks: make(map[uuid.UUID]*gameLock),
		stopCh:    make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	heap.Init(&s.queue)
	return s
}

// Start launches the worker pool and the sweep ticker.
func (s *Scheduler) Start() {
	for i := 0; i < s.config.Workers; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
	s.wg.Add(1)
	go s.sweepLoop()

	s.logger.Info("settlement scheduler started", map[string]interface{}{
		"workers":        s.config.Workers,
		"sweep_interval": s.config.SweepInterval.String(),
	})
}

// Stop drains the scheduler. Queued jobs that have not started are dropped;
// the next sweep picks their games back up.
func (s *Scheduler) Stop() {
	close(s.stopCh)

	s.mu.Lock()
	s.stopped = true
	s.cond.Broadcast()
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("settlement scheduler stopped", nil)
}

// EnqueueGame adds a settlement job for the game. Duplicate triggers inside
// one dedupe window collapse to a single job.
func (s *Scheduler) EnqueueGame(gameID uuid.UUID, priority int) {
	epoch := time.Now().Truncate(s.config.DedupeWindow).Unix()
	job := &Job{GameID: gameID, Priority: priority, Epoch: epoch}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if _, dup := s.enqueued[job.key()]; dup {
		return
	}
	s.enqueued[job.key()] = struct{}{}
	s.nextSeq++
	job.seq = s.nextSeq
	heap.Push(&s.queue, job)
	s.cond.Signal()
}

// QueueDepth reports the number of jobs waiting to run.
func (s *Scheduler) QueueDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()
	for {
		job, ok := s.dequeue()
		if !ok {
			return
		}
		s.run(id, job)
	}
}

func (s *Scheduler) dequeue() (*Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.queue.Len() == 0 && !s.stopped {
		s.cond.Wait()
	}
	if s.stopped {
		return nil, false
	}
	job := heap.Pop(&s.queue).(*Job)
	delete(s.enqueued, job.key())
	return job, true
}

func (s *Scheduler) run(workerID int, job *Job) {
	lock := s.acquireGame(job.GameID)
	defer s.releaseGame(job.GameID, lock)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	report, err := s.service.SettleGame(ctx, job.GameID)
	if err != nil {
		s.logger.Error(err, map[string]interface{}{
			"worker":  workerID,
			"game_id": job.GameID.String(),
		})
		return
	}
	if report.BetsDeferred > 0 {
		s.logger.Debug("settlement deferred bets remain", map[string]interface{}{
			"game_id":       job.GameID.String(),
			"bets_deferred": report.BetsDeferred,
		})
	}
}

// gameLock serializes settlement per game. Entries are refcounted so the
// registry stays bounded by in-flight games instead of every game ever seen.
type gameLock struct {
	mu   sync.Mutex
	refs int
}

func (s *Scheduler) acquireGame(gameID uuid.UUID) *gameLock {
	s.gameLocksMu.Lock()
	lock, ok := s.gameLocks[gameID]
	if !ok {
		lock = &gameLock{}
		s.gameLocks[gameID] = lock
	}
	lock.refs++
	s.gameLocksMu.Unlock()

	lock.mu.Lock()
	return lock
}

func (s *Scheduler) releaseGame(gameID uuid.UUID, lock *gameLock) {
	lock.mu.Unlock()

	s.gameLocksMu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(s.gameLocks, gameID)
	}
	s.gameLocksMu.Unlock()
}

func (s *Scheduler) gameLockCount() int {
	s.gameLocksMu.Lock()
	defer s.gameLocksMu.Unlock()
	return len(s.gameLocks)
}

func (s *Scheduler) sweepLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.enqueueSweep()
		}
	}
}

func (s *Scheduler) enqueueSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	gameIDs, err := s.service.FindSettleableGames(ctx, s.config.SweepBatch)
	if err != nil {
		s.logger.Error(err, map[string]interface{}{"phase": "sweep"})
		return
	}
	for _, gameID := range gameIDs {
		s.EnqueueGame(gameID, PrioritySweep)
	}
}
