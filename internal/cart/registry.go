package cart

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/slot"
	"github.com/aaravmahajanofficial/storefront/internal/tasks"
	"golang.org/x/sync/singleflight"
)

const defaultIdleTTL = 6 * time.Hour

// Registry owns one Store per user. A store is created and loaded from its
// slot on first use; concurrent first uses share a single load.
//
// Stores unused for longer than the idle TTL are dropped once nobody watches
// them and their last commit is durable. They reload from the slot on the
// next Get.
type Registry struct {
	mu         sync.Mutex
	stores     map[string]*Store
	used       map[string]time.Time
	group      singleflight.Group
	feedsEnded bool

	catalog Catalog
	runner  *tasks.Runner
	newSlot slot.Factory
	logger  *slog.Logger
	idleTTL time.Duration
	clock   func() time.Time
}

type RegistryOption func(*Registry)

// WithIdleTTL sets how long a store may go unused before it can be evicted.
func WithIdleTTL(ttl time.Duration) RegistryOption {
	return func(r *Registry) {
		if ttl > 0 {
			r.idleTTL = ttl
		}
	}
}

func WithClock(clock func() time.Time) RegistryOption {
	return func(r *Registry) {
		r.clock = clock
	}
}

// NewRegistry builds a registry. A nil newSlot keeps carts in memory only.
func NewRegistry(products Catalog, runner *tasks.Runner, newSlot slot.Factory, logger *slog.Logger, opts ...RegistryOption) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	if runner == nil {
		runner = tasks.NewRunner(logger, 0)
	}

	r := &Registry{
		stores:  make(map[string]*Store),
		used:    make(map[string]time.Time),
		catalog: products,
		runner:  runner,
		newSlot: newSlot,
		logger:  logger,
		idleTTL: defaultIdleTTL,
		clock:   time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Get returns the store of owner, creating it if needed.
func (r *Registry) Get(ctx context.Context, owner string) *Store {
	if s, ok := r.lookup(owner); ok {
		return s
	}

	v, _, _ := r.group.Do(owner, func() (any, error) {
		if s, ok := r.lookup(owner); ok {
			return s, nil
		}

		logger := r.logger.With(slog.String("cartOwner", owner))

		var sl slot.Slot
		if r.newSlot != nil {
			sl = r.newSlot(owner)
		}

		s := NewStore(r.catalog, r.runner, sl, WithLogger(logger))

		// The load belongs to the store, not to whichever request got here first.
		s.LoadPersisted(context.WithoutCancel(ctx))

		r.mu.Lock()
		if r.feedsEnded {
			s.closeSubscribers()
		}
		r.stores[owner] = s
		r.used[owner] = r.clock()
		metrics.ActiveCarts.Set(float64(len(r.stores)))
		r.mu.Unlock()

		return s, nil
	})

	return v.(*Store)
}

// Len reports how many stores are held in memory.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.stores)
}

// Evict drops owner's store from memory and ends its subscriptions. The
// durable copy is kept and reloaded on the next Get.
func (r *Registry) Evict(owner string) {
	r.mu.Lock()
	s, ok := r.stores[owner]
	r.dropLocked(owner)
	r.mu.Unlock()

	if ok {
		s.closeSubscribers()
	}
}

// EvictIdle drops every store unused for longer than the idle TTL that has
// no subscribers and nothing left to write. It returns how many were dropped.
func (r *Registry) EvictIdle() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.clock().Add(-r.idleTTL)
	evicted := 0

	for owner, s := range r.stores {
		if !r.used[owner].Before(cutoff) || !s.settled() {
			continue
		}

		r.dropLocked(owner)
		s.closeSubscribers()
		evicted++
	}

	return evicted
}

// RunEviction calls EvictIdle every interval until ctx ends.
func (r *Registry) RunEviction(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.EvictIdle(); n > 0 {
				r.logger.Debug("Evicted idle carts", slog.Int("count", n))
			}
		}
	}
}

// CloseFeeds ends every cart subscription, including those of stores created
// later. Pending writes are left running.
func (r *Registry) CloseFeeds() {
	r.mu.Lock()
	r.feedsEnded = true
	stores := make([]*Store, 0, len(r.stores))
	for _, s := range r.stores {
		stores = append(stores, s)
	}
	r.mu.Unlock()

	for _, s := range stores {
		s.closeSubscribers()
	}
}

// Close ends all subscriptions and waits for pending cart writes.
func (r *Registry) Close(ctx context.Context) error {
	r.CloseFeeds()

	return r.runner.Wait(ctx)
}

// lookup also marks owner as used.
func (r *Registry) lookup(owner string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stores[owner]
	if ok {
		r.used[owner] = r.clock()
	}

	return s, ok
}

func (r *Registry) dropLocked(owner string) {
	delete(r.stores, owner)
	delete(r.used, owner)
	metrics.ActiveCarts.Set(float64(len(r.stores)))
}
