// Package service implements the hunt lifecycle controller: it validates
// input, enforces the status machine, mutates entities through the store,
// and appends journal events.
package service

import (
	"strconv"
	"sync"
	"time"

	"github.com/hunty/huntcore/internal/hunt/event"
	apperrors "github.com/hunty/huntcore/internal/platform/errors"
	"github.com/hunty/huntcore/internal/storage"
)

// Stores bundles the storage dependencies of the controller.
type Stores struct {
	Hunts    storage.HuntStore
	Clues    storage.ClueStore
	Progress storage.ProgressStore
	Events   storage.EventStore
}

// Service is the hunt lifecycle controller.
type Service struct {
	stores     Stores
	clock      func() time.Time
	emitter    *event.Emitter
	settlement Settlement
	locks      huntLocks
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the service clock. Intended for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithSettlement installs the settlement collaborator used for reward-pool
// refunds and payouts.
func WithSettlement(settlement Settlement) Option {
	return func(s *Service) {
		if settlement != nil {
			s.settlement = settlement
		}
	}
}

// NewService creates a hunt controller with default dependencies. Journal
// events are appended through the Events store when one is configured.
func NewService(stores Stores, opts ...Option) *Service {
	s := &Service{
		stores:     stores,
		clock:      time.Now,
		settlement: NoopSettlement{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.emitter == nil {
		s.emitter = event.NewEmitter(stores.Events).WithClock(s.clock)
	}
	return s
}

// huntLocks serializes read-modify-write sequences per hunt. Hunt-level
// granularity is sufficient: no invariant spans different hunt IDs.
type huntLocks struct {
	mu    sync.Mutex
	locks map[uint64]*sync.Mutex
}

// lock acquires the mutex for a hunt, creating it on first use.
func (l *huntLocks) lock(huntID uint64) *sync.Mutex {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[uint64]*sync.Mutex)
	}
	m, ok := l.locks[huntID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[huntID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m
}

// huntNotFound builds the not-found error for a hunt ID.
func huntNotFound(huntID uint64) error {
	return apperrors.WithMetadata(apperrors.CodeHuntNotFound,
		"hunt not found",
		map[string]string{"HuntID": strconv.FormatUint(huntID, 10)})
}

// huntNotActive builds the state-conflict error for player actions against
// an inactive or expired hunt.
func huntNotActive(huntID uint64) error {
	return apperrors.WithMetadata(apperrors.CodeHuntNotActive,
		"hunt is not active",
		map[string]string{"HuntID": strconv.FormatUint(huntID, 10)})
}

// unauthorized builds the authorization error for caller/creator mismatches.
func unauthorized() error {
	return apperrors.New(apperrors.CodeUnauthorized,
		"caller is not the hunt creator")
}

func formatHuntID(huntID uint64) string {
	return strconv.FormatUint(huntID, 10)
}
