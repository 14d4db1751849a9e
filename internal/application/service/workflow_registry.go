package service

import (
	"sync"
	"time"

	"github.com/sangkips/warehouse-api/internal/domain/entity"
	"go.uber.org/zap"
)

const defaultSweepInterval = time.Minute

type registryEntry struct {
	workflow *ReceivingWorkflow
	lastSeen time.Time
}

// WorkflowRegistry holds one receiving workflow per signed-in user. A session
// idle for longer than the session token lifetime cannot be reached with a
// valid token any more and is evicted by Run.
type WorkflowRegistry struct {
	mu               sync.Mutex
	store            ReceivingStore
	logger           *zap.Logger
	defaultWarehouse int64
	sessionTTL       time.Duration
	sweepInterval    time.Duration
	now              func() time.Time
	sessions         map[int64]*registryEntry
}

// NewWorkflowRegistry creates an empty registry sharing store across sessions.
// A sessionTTL of zero keeps sessions until Drop.
func NewWorkflowRegistry(store ReceivingStore, defaultWarehouse int64, sessionTTL time.Duration, logger *zap.Logger) *WorkflowRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkflowRegistry{
		store:            store,
		logger:           logger,
		defaultWarehouse: defaultWarehouse,
		sessionTTL:       sessionTTL,
		sweepInterval:    defaultSweepInterval,
		now:              time.Now,
		sessions:         make(map[int64]*registryEntry),
	}
}

// For returns the workflow of user, creating it on first use
func (r *WorkflowRegistry) For(user entity.User) *ReceivingWorkflow {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.sessions[user.ID]; ok {
		entry.lastSeen = r.now()
		return entry.workflow
	}
	wf := NewReceivingWorkflow(r.store, user, r.defaultWarehouse, r.logger)
	r.sessions[user.ID] = &registryEntry{workflow: wf, lastSeen: r.now()}
	return wf
}

// Drop forgets the workflow of a user, discarding any open draft
func (r *WorkflowRegistry) Drop(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
}

// Len reports the number of live sessions
func (r *WorkflowRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Run evicts idle sessions until done is closed
func (r *WorkflowRegistry) Run(done <-chan struct{}) {
	if r.sessionTTL <= 0 {
		return
	}
	ticker := time.NewTicker(r.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictIdle()
		case <-done:
			return
		}
	}
}

func (r *WorkflowRegistry) evictIdle() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.sessionTTL)
	evicted := 0
	for userID, entry := range r.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(r.sessions, userID)
			evicted++
		}
	}
	if evicted > 0 {
		r.logger.Info("evicted idle receiving sessions", zap.Int("count", evicted), zap.Int("remaining", len(r.sessions)))
	}
	return evicted
}
