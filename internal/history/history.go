// Package history reads a user's placed orders and keeps live feeds of them.
package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
)

var ErrOrderNotFound = errors.New("history: order not found")

// Source is the remote order collection.
type Source interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// ListOrdersByUser returns the page newest first. A size of zero means
	// every order.
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]models.Order, int, error)
}

type History struct {
	source Source
	logger *slog.Logger

	mu      sync.Mutex
	feeds   map[uuid.UUID]map[uint64]*feed
	nextSub uint64
	closed  bool
}

// feed is one subscriber. pushed is set once a value newer than the
// subscription has been sent, so the initial snapshot never overwrites it.
type feed struct {
	ch     chan []models.Order
	pushed bool
}

// push replaces any unread value with orders. Callers hold h.mu.
func (f *feed) push(orders []models.Order) {
	select {
	case <-f.ch:
	default:
	}
	f.ch <- orders
	f.pushed = true
}

func New(source Source, logger *slog.Logger) *History {
	if logger == nil {
		logger = slog.Default()
	}

	return &History{
		source: source,
		logger: logger,
		feeds:  make(map[uuid.UUID]map[uint64]*feed),
	}
}

// Orders returns the order history of userID, newest first. When justPlaced
// is set only that order is returned, as long as it belongs to userID.
func (h *History) Orders(ctx context.Context, userID, justPlaced uuid.UUID) ([]models.Order, error) {
	if justPlaced != uuid.Nil {
		order, err := h.source.GetOrder(ctx, justPlaced)
		if err != nil {
			return nil, err
		}

		if order.UserID != userID {
			return nil, ErrOrderNotFound
		}

		return []models.Order{*order}, nil
	}

	orders, _, err := h.source.ListOrdersByUser(ctx, userID, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	if orders == nil {
		orders = []models.Order{}
	}

	return orders, nil
}

// Subscribe opens a live feed for userID. The first value is the current
// history; every later value is the full history after a change. The feed
// ends when ctx is done or cancel is called. A slow reader only ever sees
// the newest history.
func (h *History) Subscribe(ctx context.Context, userID uuid.UUID) (<-chan []models.Order, func(), error) {
	f := &feed{ch: make(chan []models.Order, 1)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(f.ch)
		return f.ch, func() {}, nil
	}

	id := h.nextSub
	h.nextSub++

	subs, ok := h.feeds[userID]
	if !ok {
		subs = make(map[uint64]*feed)
		h.feeds[userID] = subs
	}
	subs[id] = f
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() { h.unsubscribe(userID, id) })
	}

	// The feed is registered before the first read, so a Refresh racing
	// with it is delivered rather than lost.
	orders, err := h.Orders(ctx, userID, uuid.Nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}

	h.mu.Lock()
	if h.feeds[userID][id] == f && !f.pushed {
		f.push(orders)
	}
	h.mu.Unlock()

	stop := context.AfterFunc(ctx, cancel)

	return f.ch, func() {
		stop()
		cancel()
	}, nil
}

func (h *History) unsubscribe(userID uuid.UUID, id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.feeds[userID]
	if !ok {
		return
	}

	if f, ok := subs[id]; ok {
		delete(subs, id)
		close(f.ch)
	}

	if len(subs) == 0 {
		delete(h.feeds, userID)
	}
}

// Refresh reloads the history of userID and pushes it to every open feed of
// that user. Users without feeds are skipped.
func (h *History) Refresh(ctx context.Context, userID uuid.UUID) error {
	if !h.watched(userID) {
		return nil
	}

	orders, err := h.Orders(ctx, userID, uuid.Nil)
	if err != nil {
		h.logger.Warn("Failed to refresh order feed", slog.String("userId", userID.String()), slog.String("error", err.Error()))
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, f := range h.feeds[userID] {
		f.push(orders)
	}

	return nil
}

// OrderPlaced refreshes the feeds of the order's owner.
func (h *History) OrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error {
	return h.Refresh(ctx, event.UserID)
}

// Close ends every feed.
func (h *History) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true

	for userID, subs := range h.feeds {
		for id, f := range subs {
			delete(subs, id)
			close(f.ch)
		}
		delete(h.feeds, userID)
	}
}

func (h *History) watched(userID uuid.UUID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.feeds[userID]) > 0
}
