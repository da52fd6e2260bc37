package trip

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/domain/planner"
	"github.com/FACorreiaa/go-tripplanner/internal/app/observability/metrics"
)

// SessionStore keeps one Orchestrator per browser session. Entries expire
// after ttl without a request.
type SessionStore struct {
	mu       sync.Mutex
	draining bool
	items    *cache.Cache
	ttl      time.Duration
	planner  planner.Planner
	logger   *zap.Logger
}

func NewSessionStore(p planner.Planner, ttl time.Duration, logger *zap.Logger) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SessionStore{
		items:   cache.New(ttl, ttl/2),
		ttl:     ttl,
		planner: p,
		logger:  logger,
	}
	s.items.OnEvicted(func(id string, _ interface{}) {
		s.logger.Debug("Session expired", zap.String("session_id", id))
	})
	return s
}

// GetOrCreate returns the orchestrator for id, creating it in the Idle state
// on first use. Every call pushes the expiry out by ttl.
func (s *SessionStore) GetOrCreate(id string) *Orchestrator {
	s.mu.Lock()
	defer s.mu.Unlock()

	var o *Orchestrator
	if v, ok := s.items.Get(id); ok {
		o = v.(*Orchestrator)
	} else {
		o = NewOrchestrator(s.planner, s.logger.With(zap.String("session_id", id)))
		if s.draining {
			o.Close()
		}
		s.logger.Debug("Session created", zap.String("session_id", id))
	}
	s.items.Set(id, o, s.ttl)
	metrics.Get().ActiveSessions.Record(context.Background(), int64(s.items.ItemCount()))
	return o
}

// Len is the number of live sessions, expired ones included until the next sweep.
func (s *SessionStore) Len() int {
	return s.items.ItemCount()
}

// Drain closes every orchestrator, including ones created from now on, and
// waits for the planning calls already running.
func (s *SessionStore) Drain(ctx context.Context) error {
	s.mu.Lock()
	s.draining = true
	for _, item := range s.items.Items() {
		item.Object.(*Orchestrator).Close()
	}
	s.mu.Unlock()
	return s.WaitAll(ctx)
}

// WaitAll blocks until every session's planning call has settled or ctx is
// done. On timeout the waiter goroutine lives on until those calls settle.
func (s *SessionStore) WaitAll(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		for _, item := range s.items.Items() {
			item.Object.(*Orchestrator).Wait()
		}
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
