package repository_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderColumns = []string{"id", "user_id", "items", "total", "delivery", "payment_method", "address", "status", "created_at"}

func setupOrderRepoTest(t *testing.T) (repository.OrderRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewOrderRepository(db)
	require.NotNil(t, repo, "NewOrderRepository should return a non-nil repository")

	return repo, mock
}

func TestCreateOrder(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	order := &models.Order{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		Items:         []models.OrderItem{{ID: "1", Quantity: 3}},
		Total:         "306.00",
		Delivery:      models.DeliveryCashOnDelivery,
		PaymentMethod: models.DeliveryCashOnDelivery,
		Address:       "123 Main St",
		Status:        models.OrderStatusPending,
		CreatedAt:     now,
	}

	expectedSQL := regexp.QuoteMeta(`
		INSERT INTO orders (id, user_id, items, total, delivery, payment_method, address, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`)

	t.Run("Success - Single insert", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectExec(expectedSQL).
			WithArgs(order.ID, order.UserID, []byte(`[{"id":"1","quantity":3}]`), "306.00", order.Delivery, order.PaymentMethod, "123 Main St", order.Status, now).
			WillReturnResult(sqlmock.NewResult(1, 1))

		// Act
		err := repo.CreateOrder(t.Context(), order)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Insert Error", func(t *testing.T) {
		repo, mock := setupOrderRepoTest(t)
		dbErr := errors.New("DB error on order insert")
		mock.ExpectExec(expectedSQL).WillReturnError(dbErr)

		err := repo.CreateOrder(t.Context(), order)

		require.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetOrder(t *testing.T) {
	expectedSQL := regexp.QuoteMeta(`
		SELECT id, user_id, items, total, delivery, payment_method, address, status, created_at
		FROM orders
		WHERE id = $1
	`)

	t.Run("Success - Order Found", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		id, userID := uuid.New(), uuid.New()
		now := time.Now().UTC()

		mock.ExpectQuery(expectedSQL).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(orderColumns).
				AddRow(id, userID, []byte(`[{"id":"1","quantity":3}]`), "306.00", "Cash on Delivery", "Cash on Delivery", "123 Main St", "Pending", now))

		// Act
		order, err := repo.GetOrder(t.Context(), id)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, userID, order.UserID)
		assert.Equal(t, []models.OrderItem{{ID: "1", Quantity: 3}}, order.Items)
		assert.Equal(t, "306.00", order.Total)
		assert.Equal(t, models.DeliveryCashOnDelivery, order.PaymentMethod)
	})

	t.Run("Failure - Order Not Found", func(t *testing.T) {
		repo, mock := setupOrderRepoTest(t)
		id := uuid.New()
		mock.ExpectQuery(expectedSQL).WithArgs(id).WillReturnError(sql.ErrNoRows)

		order, err := repo.GetOrder(t.Context(), id)

		require.ErrorIs(t, err, repository.ErrOrderNotFound)
		assert.Nil(t, order)
	})
}

func TestListOrdersByUser(t *testing.T) {
	countSQL := regexp.QuoteMeta(`SELECT COUNT(*) FROM orders WHERE user_id = $1`)
	listSQL := regexp.QuoteMeta(`
		SELECT id, user_id, items, total, delivery, payment_method, address, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`)

	userID := uuid.New()
	newer, older := uuid.New(), uuid.New()
	now := time.Now().UTC()

	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows(orderColumns).
			AddRow(newer, userID, []byte(`[{"id":"2","quantity":1}]`), "89.00", "E-Wallet (Gcash)", "E-Wallet (Gcash)", "B", "Pending", now).
			AddRow(older, userID, []byte(`[{"id":"1","quantity":3}]`), "306.00", "Cash on Delivery", "Cash on Delivery", "A", "Pending", now.Add(-time.Hour))
	}

	t.Run("Success - Page of orders", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectQuery(countSQL).WithArgs(userID).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
		mock.ExpectQuery(listSQL).WithArgs(userID, int64(10), 10).WillReturnRows(rows())

		// Act
		orders, total, err := repo.ListOrdersByUser(t.Context(), userID, 2, 10)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		require.Len(t, orders, 2)
		assert.Equal(t, newer, orders[0].ID)
		assert.Equal(t, older, orders[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Size zero lists every order", func(t *testing.T) {
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectQuery(countSQL).WithArgs(userID).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(listSQL).WithArgs(userID, nil, 0).WillReturnRows(rows())

		orders, _, err := repo.ListOrdersByUser(t.Context(), userID, 1, 0)

		require.NoError(t, err)
		assert.Len(t, orders, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - No orders", func(t *testing.T) {
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectQuery(countSQL).WithArgs(userID).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(listSQL).WithArgs(userID, nil, 0).WillReturnRows(sqlmock.NewRows(orderColumns))

		orders, total, err := repo.ListOrdersByUser(t.Context(), userID, 1, 0)

		require.NoError(t, err)
		assert.Zero(t, total)
		assert.NotNil(t, orders)
		assert.Empty(t, orders)
	})

	t.Run("Failure - Count Error", func(t *testing.T) {
		repo, mock := setupOrderRepoTest(t)
		dbErr := errors.New("count failed")
		mock.ExpectQuery(countSQL).WithArgs(userID).WillReturnError(dbErr)

		_, _, err := repo.ListOrdersByUser(t.Context(), userID, 1, 10)

		require.ErrorIs(t, err, dbErr)
	})
}
