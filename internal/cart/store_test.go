package cart_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/cart"
	"github.com/aaravmahajanofficial/storefront/internal/catalog"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/slot"
	"github.com/aaravmahajanofficial/storefront/internal/tasks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func testCatalog() *catalog.Catalog {
	return catalog.New([]models.Product{
		{ID: "1", Name: "Pancit Canton", Price: "Php102"},
		{ID: "a", Name: "Hundred", Price: "Php100"},
		{ID: "b", Name: "Bulk", Price: "Php1,250"},
		{ID: "bad", Name: "Broken", Price: "Php??"},
	})
}

func newStore(s slot.Slot) (*cart.Store, *tasks.Runner) {
	runner := tasks.NewRunner(discard, time.Second)

	return cart.NewStore(testCatalog(), runner, s, cart.WithLogger(discard)), runner
}

func add(t *testing.T, store *cart.Store, id string, qty int) tasks.Result {
	t.Helper()

	res, err := store.AddItem(t.Context(), models.CartItem{ID: id, Quantity: qty})
	require.NoError(t, err)

	return res
}

// failingSlot records calls and fails every write.
type failingSlot struct {
	mu    sync.Mutex
	calls int
}

func (f *failingSlot) Get(ctx context.Context) ([]byte, error) { return nil, slot.ErrNotFound }
func (f *failingSlot) Set(ctx context.Context, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return errors.New("disk full")
}
func (f *failingSlot) Remove(ctx context.Context) error { return errors.New("disk full") }

func TestStore_AddItem(t *testing.T) {
	t.Run("Success - Same product merges quantities", func(t *testing.T) {
		// Arrange
		store, _ := newStore(nil)

		// Act
		add(t, store, "1", 2)
		add(t, store, "1", 3)

		// Assert
		items := store.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "1", items[0].ID)
		assert.Equal(t, 5, items[0].Quantity)
	})

	t.Run("Success - Insertion order is kept", func(t *testing.T) {
		// Arrange
		store, _ := newStore(nil)

		// Act
		add(t, store, "b", 1)
		add(t, store, "a", 1)
		add(t, store, "1", 1)
		add(t, store, "b", 4)

		// Assert
		items := store.Items()
		require.Len(t, items, 3)
		assert.Equal(t, []string{"b", "a", "1"}, []string{items[0].ID, items[1].ID, items[2].ID})
		assert.Equal(t, 5, items[0].Quantity)
	})

	t.Run("Success - Merge keeps the first option", func(t *testing.T) {
		// Arrange
		store, _ := newStore(nil)

		// Act
		_, err := store.AddItem(t.Context(), models.CartItem{ID: "1", Quantity: 1, Option: "Spicy"})
		require.NoError(t, err)
		_, err = store.AddItem(t.Context(), models.CartItem{ID: "1", Quantity: 1, Option: "Regular"})
		require.NoError(t, err)

		// Assert
		items := store.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "Spicy", items[0].Option)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("Failure - Non-positive quantity", func(t *testing.T) {
		// Arrange
		store, _ := newStore(nil)

		for _, qty := range []int{0, -2} {
			// Act
			res, err := store.AddItem(t.Context(), models.CartItem{ID: "1", Quantity: qty})

			// Assert
			require.ErrorIs(t, err, cart.ErrInvalidQuantity)
			assert.Nil(t, res)
		}

		assert.Zero(t, store.Len())
	})

	t.Run("Failure - Missing product id", func(t *testing.T) {
		store, _ := newStore(nil)

		_, err := store.AddItem(t.Context(), models.CartItem{Quantity: 1})

		require.ErrorIs(t, err, cart.ErrMissingProduct)
	})

	t.Run("Success - Persistence failure is not returned", func(t *testing.T) {
		// Arrange
		failing := &failingSlot{}
		store, _ := newStore(failing)

		// Act
		res, err := store.AddItem(t.Context(), models.CartItem{ID: "1", Quantity: 1})

		// Assert
		require.NoError(t, err, "AddItem must not surface persistence errors")
		assert.Error(t, res.Wait(t.Context()), "the write failure is still visible on the result")
		assert.Equal(t, 1, store.Len(), "in-memory cart stays authoritative")
	})
}

func TestStore_RemoveAndClear(t *testing.T) {
	t.Run("Success - Remove deletes the product", func(t *testing.T) {
		// Arrange
		store, _ := newStore(nil)
		add(t, store, "1", 1)
		add(t, store, "a", 1)

		// Act
		store.RemoveItem(t.Context(), "1")

		// Assert
		items := store.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "a", items[0].ID)
	})

	t.Run("Success - Removing an absent product is a no-op", func(t *testing.T) {
		// Arrange
		store, _ := newStore(nil)
		add(t, store, "1", 2)
		before := store.Items()

		// Act
		store.RemoveItem(t.Context(), "missing")

		// Assert
		assert.Equal(t, before, store.Items())
	})

	t.Run("Success - Clear empties the cart", func(t *testing.T) {
		// Arrange
		store, _ := newStore(nil)
		add(t, store, "1", 2)
		add(t, store, "b", 1)

		// Act
		store.Clear(t.Context())

		// Assert
		assert.Zero(t, store.Len())
		assert.True(t, store.TotalPrice().IsZero())
	})
}

func TestStore_TotalPrice(t *testing.T) {
	t.Run("Success - Strips prefix and separators", func(t *testing.T) {
		// Arrange
		store, _ := newStore(nil)
		add(t, store, "a", 2)
		add(t, store, "b", 1)

		// Act
		total := store.TotalPrice()

		// Assert
		assert.True(t, decimal.NewFromInt(1450).Equal(total), "got %s", total)
	})

	t.Run("Success - Unknown product contributes zero", func(t *testing.T) {
		// Arrange
		store, _ := newStore(nil)
		add(t, store, "1", 1)
		add(t, store, "ghost", 7)
		add(t, store, "bad", 3)

		// Act
		total := store.TotalPrice()

		// Assert
		assert.True(t, decimal.NewFromInt(102).Equal(total), "got %s", total)
	})

	t.Run("Success - Empty cart", func(t *testing.T) {
		store, _ := newStore(nil)

		assert.True(t, store.TotalPrice().IsZero())
	})
}

func TestUnitPrice(t *testing.T) {
	products := testCatalog()

	t.Run("Success - Thousands separator", func(t *testing.T) {
		price, ok := cart.UnitPrice(products, "b")
		require.True(t, ok)
		assert.True(t, decimal.NewFromInt(1250).Equal(price))
	})

	t.Run("Failure - Unparsable price", func(t *testing.T) {
		_, ok := cart.UnitPrice(products, "bad")
		assert.False(t, ok)
	})

	t.Run("Failure - Unknown product", func(t *testing.T) {
		_, ok := cart.UnitPrice(products, "404")
		assert.False(t, ok)
	})
}

func TestStore_Persistence(t *testing.T) {
	t.Run("Success - Round trip after completed write", func(t *testing.T) {
		// Arrange
		durable := slot.NewMemory()
		store, _ := newStore(durable)
		add(t, store, "1", 3)
		_, err := store.AddItem(t.Context(), models.CartItem{ID: "a", Quantity: 1, Option: "Large", Name: "Hundred", Price: "Php100"})
		require.NoError(t, err)
		res := add(t, store, "1", 1)
		require.NoError(t, res.Wait(t.Context()))

		// Act
		restarted, _ := newStore(durable)
		restarted.LoadPersisted(t.Context())

		// Assert
		assert.Equal(t, store.Items(), restarted.Items())
	})

	t.Run("Success - Clear removes the durable copy", func(t *testing.T) {
		// Arrange
		durable := slot.NewMemory()
		store, _ := newStore(durable)
		require.NoError(t, add(t, store, "1", 1).Wait(t.Context()))

		// Act
		require.NoError(t, store.Clear(t.Context()).Wait(t.Context()))

		// Assert
		_, err := durable.Get(t.Context())
		assert.ErrorIs(t, err, slot.ErrNotFound)
	})

	t.Run("Success - Slot converges to the last commit", func(t *testing.T) {
		// Arrange
		durable := slot.NewMemory()
		store, runner := newStore(durable)

		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = store.AddItem(context.Background(), models.CartItem{ID: "1", Quantity: 1})
			}()
		}
		wg.Wait()

		// Act
		require.NoError(t, runner.Wait(t.Context()))

		// Assert
		data, err := durable.Get(t.Context())
		require.NoError(t, err)

		var persisted []models.CartItem
		require.NoError(t, json.Unmarshal(data, &persisted))
		assert.Equal(t, store.Items(), persisted)
		assert.Equal(t, 20, persisted[0].Quantity)
	})

	t.Run("Success - Malformed content leaves the cart empty", func(t *testing.T) {
		// Arrange
		durable := slot.NewMemory()
		require.NoError(t, durable.Set(t.Context(), []byte(`{"not":"a list"}`)))
		store, _ := newStore(durable)

		// Act
		store.LoadPersisted(t.Context())

		// Assert
		assert.Zero(t, store.Len())
	})

	t.Run("Success - Missing content leaves the cart empty", func(t *testing.T) {
		store, _ := newStore(slot.NewMemory())

		store.LoadPersisted(t.Context())

		assert.Zero(t, store.Len())
	})

	t.Run("Success - Loaded content is not rewritten", func(t *testing.T) {
		// Arrange
		failing := &failingSlot{}
		store, runner := newStore(failing)

		// Act
		store.LoadPersisted(t.Context())
		require.NoError(t, runner.Wait(t.Context()))

		// Assert
		assert.Zero(t, failing.calls)
	})
}

func TestStore_Subscribe(t *testing.T) {
	t.Run("Success - Receives snapshots after commits", func(t *testing.T) {
		// Arrange
		store, _ := newStore(nil)
		add(t, store, "1", 1)
		initial, updates, cancel := store.Subscribe()
		defer cancel()

		// Act
		add(t, store, "a", 2)

		// Assert
		require.Len(t, initial, 1)

		select {
		case snap := <-updates:
			require.Len(t, snap, 2)
			assert.Equal(t, "a", snap[1].ID)
		case <-time.After(time.Second):
			t.Fatal("no snapshot delivered")
		}
	})

	t.Run("Success - Slow reader sees only the newest snapshot", func(t *testing.T) {
		// Arrange
		store, _ := newStore(nil)
		_, updates, cancel := store.Subscribe()
		defer cancel()

		// Act
		add(t, store, "1", 1)
		add(t, store, "1", 1)
		add(t, store, "1", 1)

		// Assert
		snap := <-updates
		require.Len(t, snap, 1)
		assert.Equal(t, 3, snap[0].Quantity)

		select {
		case extra := <-updates:
			t.Fatalf("unexpected extra snapshot %v", extra)
		default:
		}
	})

	t.Run("Success - Cancel closes the channel", func(t *testing.T) {
		// Arrange
		store, _ := newStore(nil)
		_, updates, cancel := store.Subscribe()

		// Act
		cancel()
		cancel()
		add(t, store, "1", 1)

		// Assert
		_, open := <-updates
		assert.False(t, open)
	})
}
