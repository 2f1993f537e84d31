package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/cart"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/tasks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func setupCartService(t *testing.T) (service.CartService, *cart.Registry) {
	t.Helper()

	products := testCatalog()
	registry := cart.NewRegistry(products, tasks.NewRunner(discard, time.Second), nil, discard)
	t.Cleanup(func() { _ = registry.Close(context.Background()) })

	return service.NewCartService(registry, products, discard), registry
}

func TestCartService_AddItem(t *testing.T) {

	ctx := context.Background()

	t.Run("Success - Lines merge by product", func(t *testing.T) {

		// Arrange
		cartService, _ := setupCartService(t)
		userID := uuid.New()

		// Act
		_, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: "1", Quantity: 1, Option: "Spicy"})
		require.NoError(t, err)
		_, err = cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: "2", Quantity: 1})
		require.NoError(t, err)
		got, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: "1", Quantity: 2, Option: "Regular"})

		// Assert
		require.NoError(t, err)
		require.Len(t, got.Items, 2)
		assert.Equal(t, "1", got.Items[0].ID)
		assert.Equal(t, 3, got.Items[0].Quantity)
		assert.Equal(t, "Spicy", got.Items[0].Option, "The first option is kept on merge")
		assert.Equal(t, "Pancit Canton", got.Items[0].Name)
		assert.Equal(t, "Php102", got.Items[0].Price)
		assert.Equal(t, "395.00", got.Total)
		assert.Equal(t, 2, got.Count)
	})

	t.Run("Success - Thousands separator in price", func(t *testing.T) {

		// Arrange
		cartService, _ := setupCartService(t)

		// Act
		got, err := cartService.AddItem(ctx, uuid.New(), &models.AddItemRequest{ProductID: "3", Quantity: 2})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "2500.00", got.Total)
	})

	t.Run("Failure - Unknown product", func(t *testing.T) {

		// Arrange
		cartService, _ := setupCartService(t)

		// Act
		got, err := cartService.AddItem(ctx, uuid.New(), &models.AddItemRequest{ProductID: "99", Quantity: 1})

		// Assert
		assert.Nil(t, got)
		assertAppErrorCode(t, err, appErrors.ErrCodeNotFound)
	})

	t.Run("Failure - Option not offered", func(t *testing.T) {

		// Arrange
		cartService, _ := setupCartService(t)

		// Act
		got, err := cartService.AddItem(ctx, uuid.New(), &models.AddItemRequest{ProductID: "1", Quantity: 1, Option: "Sweet"})

		// Assert
		assert.Nil(t, got)
		assertAppErrorCode(t, err, appErrors.ErrCodeValidation)
	})

	t.Run("Failure - Non-positive quantity", func(t *testing.T) {

		// Arrange
		cartService, registry := setupCartService(t)
		userID := uuid.New()

		// Act
		got, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: "1", Quantity: 0})

		// Assert
		assert.Nil(t, got)
		assertAppErrorCode(t, err, appErrors.ErrCodeValidation)
		assert.Zero(t, registry.Get(ctx, userID.String()).Len())
	})
}

func TestCartService_RemoveAndClear(t *testing.T) {

	ctx := context.Background()

	t.Run("Success - Remove drops the line", func(t *testing.T) {

		// Arrange
		cartService, _ := setupCartService(t)
		userID := uuid.New()
		_, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: "1", Quantity: 1})
		require.NoError(t, err)
		_, err = cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: "2", Quantity: 1})
		require.NoError(t, err)

		// Act
		got, err := cartService.RemoveItem(ctx, userID, "1")

		// Assert
		require.NoError(t, err)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "2", got.Items[0].ID)
		assert.Equal(t, "89.00", got.Total)
	})

	t.Run("Success - Removing an absent product changes nothing", func(t *testing.T) {

		// Arrange
		cartService, _ := setupCartService(t)
		userID := uuid.New()
		_, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: "2", Quantity: 2})
		require.NoError(t, err)

		// Act
		got, err := cartService.RemoveItem(ctx, userID, "42")

		// Assert
		require.NoError(t, err)
		assert.Len(t, got.Items, 1)
		assert.Equal(t, "178.00", got.Total)
	})

	t.Run("Success - Clear empties the cart", func(t *testing.T) {

		// Arrange
		cartService, _ := setupCartService(t)
		userID := uuid.New()
		_, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: "1", Quantity: 4})
		require.NoError(t, err)

		// Act
		got, err := cartService.ClearCart(ctx, userID)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, got.Items)
		assert.Equal(t, "0.00", got.Total)
		assert.Zero(t, got.Count)
	})

	t.Run("Success - Carts are per user", func(t *testing.T) {

		// Arrange
		cartService, _ := setupCartService(t)
		_, err := cartService.AddItem(ctx, uuid.New(), &models.AddItemRequest{ProductID: "1", Quantity: 1})
		require.NoError(t, err)

		// Act
		got, err := cartService.GetCart(ctx, uuid.New())

		// Assert
		require.NoError(t, err)
		assert.Empty(t, got.Items)
		assert.NotNil(t, got.Items)
	})
}

func TestCartService_Subscribe(t *testing.T) {

	t.Run("Success - Snapshot then updates", func(t *testing.T) {

		// Arrange
		cartService, _ := setupCartService(t)
		userID := uuid.New()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		updates, stop, err := cartService.Subscribe(ctx, userID)
		require.NoError(t, err)
		defer stop()

		initial := <-updates
		assert.Empty(t, initial.Items)

		// Act
		_, err = cartService.AddItem(context.Background(), userID, &models.AddItemRequest{ProductID: "2", Quantity: 3})
		require.NoError(t, err)

		// Assert
		select {
		case got := <-updates:
			require.Len(t, got.Items, 1)
			assert.Equal(t, "267.00", got.Total)
		case <-time.After(time.Second):
			t.Fatal("no cart update received")
		}
	})

	t.Run("Success - Context end closes the stream", func(t *testing.T) {

		// Arrange
		cartService, _ := setupCartService(t)
		ctx, cancel := context.WithCancel(context.Background())

		updates, _, err := cartService.Subscribe(ctx, uuid.New())
		require.NoError(t, err)
		<-updates

		// Act
		cancel()

		// Assert
		select {
		case _, ok := <-updates:
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("stream was not closed")
		}
	})
}
