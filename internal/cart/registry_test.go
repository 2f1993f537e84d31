package cart_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/cart"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/slot"
	"github.com/aaravmahajanofficial/storefront/internal/tasks"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingFactory hands out one memory slot per owner and counts creations.
type countingFactory struct {
	mu      sync.Mutex
	slots   map[string]*slot.Memory
	created int
}

func (f *countingFactory) New(owner string) slot.Slot {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.created++
	if s, ok := f.slots[owner]; ok {
		return s
	}

	s := slot.NewMemory()
	f.slots[owner] = s

	return s
}

// gatedSlot holds every write until release is closed.
type gatedSlot struct {
	*slot.Memory
	release chan struct{}
}

func (g *gatedSlot) Set(ctx context.Context, data []byte) error {
	select {
	case <-g.release:
	case <-ctx.Done():
		return ctx.Err()
	}

	return g.Memory.Set(ctx, data)
}

// fakeClock is a settable clock for idle eviction.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func TestRegistry(t *testing.T) {
	t.Run("Success - Same owner shares one store", func(t *testing.T) {
		// Arrange
		factory := &countingFactory{slots: map[string]*slot.Memory{}}
		registry := cart.NewRegistry(testCatalog(), tasks.NewRunner(discard, time.Second), factory.New, discard)

		// Act
		var wg sync.WaitGroup
		stores := make([]*cart.Store, 10)
		for i := range stores {
			wg.Add(1)
			go func() {
				defer wg.Done()
				stores[i] = registry.Get(t.Context(), "alice")
			}()
		}
		wg.Wait()

		// Assert
		for _, s := range stores {
			assert.Same(t, stores[0], s)
		}
		assert.Equal(t, 1, factory.created)
	})

	t.Run("Success - Owners are isolated", func(t *testing.T) {
		registry := cart.NewRegistry(testCatalog(), nil, nil, discard)

		add(t, registry.Get(t.Context(), "alice"), "1", 1)

		assert.Zero(t, registry.Get(t.Context(), "bob").Len())
	})

	t.Run("Success - Evicted store reloads from its slot", func(t *testing.T) {
		// Arrange
		factory := &countingFactory{slots: map[string]*slot.Memory{}}
		registry := cart.NewRegistry(testCatalog(), tasks.NewRunner(discard, time.Second), factory.New, discard)
		first := registry.Get(t.Context(), "alice")
		require.NoError(t, add(t, first, "1", 4).Wait(t.Context()))
		_, updates, _ := first.Subscribe()

		// Act
		registry.Evict("alice")
		second := registry.Get(t.Context(), "alice")

		// Assert
		assert.NotSame(t, first, second)
		assert.Equal(t, first.Items(), second.Items())
		_, open := <-updates
		assert.False(t, open, "eviction ends subscriptions")
	})

	t.Run("Success - Close drains pending writes", func(t *testing.T) {
		// Arrange
		factory := &countingFactory{slots: map[string]*slot.Memory{}}
		registry := cart.NewRegistry(testCatalog(), tasks.NewRunner(discard, time.Second), factory.New, discard)
		add(t, registry.Get(t.Context(), "alice"), "b", 2)

		// Act
		err := registry.Close(t.Context())

		// Assert
		require.NoError(t, err)
		_, getErr := factory.slots["alice"].Get(t.Context())
		assert.NoError(t, getErr)
	})

	t.Run("Success - CloseFeeds ends streams without waiting on writes", func(t *testing.T) {
		// Arrange
		gate := &gatedSlot{Memory: slot.NewMemory(), release: make(chan struct{})}
		registry := cart.NewRegistry(testCatalog(), tasks.NewRunner(discard, time.Minute), func(string) slot.Slot { return gate }, discard)
		store := registry.Get(t.Context(), "alice")
		_, updates, _ := store.Subscribe()
		pending := add(t, store, "1", 1)
		<-updates

		// Act
		registry.CloseFeeds()

		// Assert
		_, open := <-updates
		assert.False(t, open)
		_, later, _ := registry.Get(t.Context(), "bob").Subscribe()
		_, open = <-later
		assert.False(t, open, "stores created after CloseFeeds start closed")

		close(gate.release)
		require.NoError(t, pending.Wait(t.Context()))
		require.NoError(t, registry.Close(t.Context()))
	})
}

func TestRegistry_EvictIdle(t *testing.T) {
	newRegistry := func(s slot.Slot) (*cart.Registry, *fakeClock) {
		clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
		registry := cart.NewRegistry(testCatalog(), tasks.NewRunner(discard, time.Second),
			func(string) slot.Slot { return s }, discard,
			cart.WithIdleTTL(time.Minute), cart.WithClock(clock.Now))

		return registry, clock
	}

	t.Run("Success - Idle durable store is dropped and reloads", func(t *testing.T) {
		// Arrange
		registry, clock := newRegistry(slot.NewMemory())
		first := registry.Get(t.Context(), "alice")
		require.NoError(t, add(t, first, "1", 2).Wait(t.Context()))
		clock.Advance(2 * time.Minute)

		// Act
		evicted := registry.EvictIdle()

		// Assert
		assert.Equal(t, 1, evicted)
		assert.Zero(t, registry.Len())
		assert.Zero(t, testutil.ToFloat64(metrics.ActiveCarts))

		second := registry.Get(t.Context(), "alice")
		assert.NotSame(t, first, second)
		assert.Equal(t, first.Items(), second.Items())
	})

	t.Run("Success - Recently used store stays", func(t *testing.T) {
		// Arrange
		registry, clock := newRegistry(slot.NewMemory())
		store := registry.Get(t.Context(), "alice")
		clock.Advance(50 * time.Second)
		registry.Get(t.Context(), "alice")
		clock.Advance(50 * time.Second)

		// Act
		evicted := registry.EvictIdle()

		// Assert
		assert.Zero(t, evicted)
		assert.Same(t, store, registry.Get(t.Context(), "alice"))
	})

	t.Run("Failure - Watched store stays", func(t *testing.T) {
		// Arrange
		registry, clock := newRegistry(slot.NewMemory())
		store := registry.Get(t.Context(), "alice")
		_, updates, cancel := store.Subscribe()
		defer cancel()
		clock.Advance(time.Hour)

		// Act
		evicted := registry.EvictIdle()

		// Assert
		assert.Zero(t, evicted)
		assert.Equal(t, 1, registry.Len())
		select {
		case _, open := <-updates:
			assert.True(t, open)
		default:
		}
	})

	t.Run("Failure - Unwritten commit stays", func(t *testing.T) {
		// Arrange
		registry, clock := newRegistry(&failingSlot{})
		store := registry.Get(t.Context(), "alice")
		require.Error(t, add(t, store, "1", 1).Wait(t.Context()))
		clock.Advance(time.Hour)

		// Act
		evicted := registry.EvictIdle()

		// Assert
		assert.Zero(t, evicted)
		assert.Same(t, store, registry.Get(t.Context(), "alice"))
		assert.Equal(t, 1, store.Len())
	})

	t.Run("Failure - Memory only store stays", func(t *testing.T) {
		// Arrange
		clock := &fakeClock{now: time.Now()}
		registry := cart.NewRegistry(testCatalog(), nil, nil, discard, cart.WithIdleTTL(time.Minute), cart.WithClock(clock.Now))
		registry.Get(t.Context(), "alice")
		clock.Advance(time.Hour)

		// Act & Assert
		assert.Zero(t, registry.EvictIdle())
	})

	t.Run("Success - RunEviction sweeps until cancelled", func(t *testing.T) {
		// Arrange
		registry := cart.NewRegistry(testCatalog(), tasks.NewRunner(discard, time.Second),
			func(string) slot.Slot { return slot.NewMemory() }, discard, cart.WithIdleTTL(time.Millisecond))
		registry.Get(t.Context(), "alice")

		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan struct{})

		// Act
		go func() {
			defer close(done)
			registry.RunEviction(ctx, 5*time.Millisecond)
		}()

		// Assert
		assert.Eventually(t, func() bool { return registry.Len() == 0 }, time.Second, 5*time.Millisecond)
		cancel()
		<-done
	})
}
