// Package cart holds shopping carts in memory and writes them through to a
// durable slot so they survive restarts.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/slot"
	"github.com/aaravmahajanofficial/storefront/internal/tasks"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("cart: quantity must be positive")
	ErrMissingProduct  = errors.New("cart: product id is required")
)

// Catalog resolves product ids to products.
type Catalog interface {
	Lookup(id string) (models.Product, bool)
}

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Store is one user's cart. The in-memory list is authoritative; every
// committed mutation is followed by a best-effort write to the slot.
//
// Mutations are serialised by mu. Writes run as background tasks and may
// finish out of order, so each carries the version it snapshotted and writes
// older than the newest one already written are dropped.
type Store struct {
	mu      sync.Mutex
	items   []models.CartItem
	version uint64
	subs    map[uint64]chan []models.CartItem
	nextSub uint64
	closed  bool

	writeMu sync.Mutex
	written uint64
	durable uint64

	slot    slot.Slot
	catalog Catalog
	runner  *tasks.Runner
	logger  *slog.Logger
}

// NewStore creates an empty cart. A nil slot keeps the cart in memory only.
func NewStore(products Catalog, runner *tasks.Runner, s slot.Slot, opts ...Option) *Store {
	store := &Store{
		items:   []models.CartItem{},
		subs:    make(map[uint64]chan []models.CartItem),
		slot:    s,
		catalog: products,
		runner:  runner,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(store)
	}

	if store.runner == nil {
		store.runner = tasks.NewRunner(store.logger, 0)
	}

	return store
}

// AddItem merges item into the cart. An entry with the same product id has
// its quantity increased and keeps its position and option; otherwise item
// is appended. The returned Result reports the persistence write and may be
// ignored.
func (s *Store) AddItem(ctx context.Context, item models.CartItem) (tasks.Result, error) {
	if item.ID == "" {
		return nil, ErrMissingProduct
	}

	if item.Quantity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, item.Quantity)
	}

	s.mu.Lock()

	if idx := s.indexOf(item.ID); idx >= 0 {
		s.items[idx].Quantity += item.Quantity
	} else {
		s.items = append(s.items, item)
	}

	version, snapshot := s.commitLocked()
	s.mu.Unlock()

	metrics.CartMutations.WithLabelValues("add").Inc()

	return s.persist(ctx, version, snapshot, false), nil
}

// RemoveItem deletes every entry for productID. Removing an absent product
// leaves the cart unchanged but still counts as a commit.
func (s *Store) RemoveItem(ctx context.Context, productID string) tasks.Result {
	s.mu.Lock()

	s.items = slices.DeleteFunc(s.items, func(it models.CartItem) bool {
		return it.ID == productID
	})

	version, snapshot := s.commitLocked()
	s.mu.Unlock()

	metrics.CartMutations.WithLabelValues("remove").Inc()

	return s.persist(ctx, version, snapshot, false)
}

// Clear empties the cart and deletes its durable copy.
func (s *Store) Clear(ctx context.Context) tasks.Result {
	s.mu.Lock()

	s.items = []models.CartItem{}

	version, snapshot := s.commitLocked()
	s.mu.Unlock()

	metrics.CartMutations.WithLabelValues("clear").Inc()

	return s.persist(ctx, version, snapshot, true)
}

// Items returns a copy of the cart in insertion order.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.items)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

// TotalPrice sums unit price times quantity over the cart. Entries whose
// product is unknown or whose price does not parse contribute zero. The
// result is not rounded.
func (s *Store) TotalPrice() decimal.Decimal {
	return Total(s.Items(), s.catalog, s.logger)
}

// Total prices items against products with the same tolerance as TotalPrice.
func Total(items []models.CartItem, products Catalog, logger *slog.Logger) decimal.Decimal {
	total := decimal.Zero

	for _, it := range items {
		price, ok := UnitPrice(products, it.ID)
		if !ok {
			if logger != nil {
				logger.Debug("Skipping unpriced cart entry", slog.String("productId", it.ID))
			}
			continue
		}

		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	return total
}

// LoadPersisted replaces the cart with the slot's content. A missing or
// malformed value leaves the cart empty; neither is reported to the caller.
func (s *Store) LoadPersisted(ctx context.Context) {
	if s.slot == nil {
		return
	}

	data, err := s.slot.Get(ctx)
	if err != nil {
		if errors.Is(err, slot.ErrNotFound) {
			s.logger.Debug("No persisted cart found")
		} else {
			s.logger.Warn("⚠️ Failed to read persisted cart", slog.String("error", err.Error()))
		}

		return
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("⚠️ Discarding malformed persisted cart", slog.String("error", err.Error()))
		return
	}

	if items == nil {
		items = []models.CartItem{}
	}

	s.mu.Lock()
	s.items = items
	version, snapshot := s.commitLocked()
	s.mu.Unlock()

	// What was just read is already durable.
	s.writeMu.Lock()
	s.written = max(s.written, version)
	s.durable = max(s.durable, version)
	s.writeMu.Unlock()

	s.logger.Debug("Persisted cart loaded", slog.Int("items", len(snapshot)))
}

// Subscribe returns the current contents and a channel that receives the
// contents after every later commit. The channel holds one pending snapshot;
// a slow reader only ever sees the newest. Snapshots are shared between
// subscribers and must not be modified. cancel closes the channel.
func (s *Store) Subscribe() ([]models.CartItem, <-chan []models.CartItem, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan []models.CartItem, 1)
	snapshot := slices.Clone(s.items)

	if s.closed {
		close(ch)
		return snapshot, ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}

	return snapshot, ch, cancel
}

// settled reports whether the cart has a slot, no subscribers, and its newest
// commit already written.
func (s *Store) settled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slot == nil || len(s.subs) > 0 {
		return false
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.durable >= s.version
}

// closeSubscribers ends every subscription. Later commits are not published.
func (s *Store) closeSubscribers() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true

	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *Store) indexOf(productID string) int {
	return slices.IndexFunc(s.items, func(it models.CartItem) bool {
		return it.ID == productID
	})
}

// commitLocked bumps the version and publishes the new contents. s.mu must be
// held.
func (s *Store) commitLocked() (uint64, []models.CartItem) {
	s.version++
	snapshot := slices.Clone(s.items)

	for _, ch := range s.subs {
		select {
		case ch <- snapshot:
		default:
			// Replace the unread snapshot. s.mu makes this the only sender.
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}

	return s.version, snapshot
}

func (s *Store) persist(ctx context.Context, version uint64, snapshot []models.CartItem, remove bool) tasks.Result {
	if s.slot == nil {
		return tasks.Done()
	}

	return s.runner.Go(ctx, "cart.persist", func(ctx context.Context) error {
		return s.write(ctx, version, snapshot, remove)
	})
}

func (s *Store) write(ctx context.Context, version uint64, snapshot []models.CartItem, remove bool) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if version <= s.written {
		return nil
	}

	s.written = version

	if remove {
		if err := s.slot.Remove(ctx); err != nil {
			return fmt.Errorf("failed to remove persisted cart: %w", err)
		}
		s.durable = version
		return nil
	}

	if snapshot == nil {
		snapshot = []models.CartItem{}
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.slot.Set(ctx, data); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}

	s.durable = version

	return nil
}
