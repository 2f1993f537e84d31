//go:build integration

package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgres(ctx context.Context, t *testing.T) *sql.DB {
	t.Helper()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("storefront"),
		postgres.WithPassword("storefront"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	_, filename, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(filename), "..", "..", "migrations")

	m, err := migrate.New("file://"+migrationsDir, connStr)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("failed to run migrations: %v", err)
	}
	_, _ = m.Close()

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestRepositories_Postgres(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	repos := repository.NewFromDB(setupPostgres(ctx, t))

	// Users
	user := &models.User{Email: "ana@example.com", Password: "hashed", DisplayName: "Ana"}
	require.NoError(t, repos.Users.CreateUser(ctx, user))
	require.NotEqual(t, uuid.Nil, user.ID)

	err := repos.Users.CreateUser(ctx, &models.User{Email: "ana@example.com", Password: "hashed", DisplayName: "Other"})
	assert.ErrorIs(t, err, repository.ErrEmailTaken)

	addresses := []models.Address{{ID: "1714559400000", Address: "12 Mabini St"}}
	require.NoError(t, repos.Users.SetAddresses(ctx, user.ID, addresses))

	stored, err := repos.Users.GetAddresses(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, addresses, stored)

	updated, err := repos.Users.UpdateProfile(ctx, user.ID, models.Profile{DisplayName: "Ana Cruz", Phone: "0917", Address: "12 Mabini St"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Cruz", updated.DisplayName)

	require.NoError(t, repos.Users.SetPhotoURL(ctx, user.ID, "http://localhost:8080/api/v1/blobs/profile_photos/"+user.ID.String()))

	byEmail, err := repos.Users.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hashed", byEmail.Password)
	assert.NotEmpty(t, byEmail.PhotoURL)

	// Orders
	older := models.Order{
		ID:            uuid.New(),
		Items:         []models.OrderItem{{ID: "1", Quantity: 3}},
		Total:         "306.00",
		Delivery:      models.DeliveryCashOnDelivery,
		PaymentMethod: models.DeliveryCashOnDelivery,
		Address:       "12 Mabini St",
		UserID:        user.ID,
		CreatedAt:     time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
		Status:        models.OrderStatusPending,
	}
	newer := older
	newer.ID = uuid.New()
	newer.Total = "1250.00"
	newer.CreatedAt = older.CreatedAt.Add(time.Hour)

	require.NoError(t, repos.Orders.CreateOrder(ctx, &older))
	require.NoError(t, repos.Orders.CreateOrder(ctx, &newer))

	got, err := repos.Orders.GetOrder(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, "306.00", got.Total)
	assert.Equal(t, older.Items, got.Items)

	list, total, err := repos.Orders.ListOrdersByUser(ctx, user.ID, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)

	_, err = repos.Orders.GetOrder(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)

	// Notifications
	notification := &models.Notification{
		ID:        uuid.New(),
		OrderID:   older.ID,
		Type:      models.NotificationTypeEmail,
		Recipient: "ana@example.com",
		Subject:   "Order Placed",
		Content:   "Total: Php306.00",
		Status:    models.StatusPending,
	}
	require.NoError(t, repos.Notifications.CreateNotification(ctx, notification))
	require.NoError(t, repos.Notifications.UpdateNotificationStatus(ctx, notification.ID, models.StatusSent, ""))

	audited, err := repos.Notifications.GetNotificationById(ctx, notification.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSent, audited.Status)
	assert.NotNil(t, audited.SentAt)
}
