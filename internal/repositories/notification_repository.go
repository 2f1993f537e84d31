package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetNotificationById(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, errorMsg string) error
}

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepo(db *sql.DB) NotificationRepository {
	return &notificationRepository{DB: db}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO notifications (id, order_id, type, recipient, subject, content, status, error_message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`

	_, err := r.DB.ExecContext(dbCtx, query, notification.ID, notification.OrderID, notification.Type, notification.Recipient, notification.Subject, notification.Content, notification.Status, notification.Error)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (r *notificationRepository) GetNotificationById(ctx context.Context, id uuid.UUID) (*models.Notification, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, order_id, type, recipient, subject, content, status, error_message, created_at, updated_at, sent_at
		FROM notifications
		WHERE id = $1
	`

	result := &models.Notification{}
	var sentAt sql.NullTime

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&result.ID, &result.OrderID, &result.Type, &result.Recipient, &result.Subject, &result.Content, &result.Status, &result.Error, &result.CreatedAt, &result.UpdatedAt, &sentAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotificationNotFound
		}

		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	if sentAt.Valid {
		result.SentAt = &sentAt.Time
	}

	return result, nil
}

// UpdateNotificationStatus records the outcome of a send. sent_at is set
// when the status becomes sent.
func (r *notificationRepository) UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, errorMsg string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var sentAt sql.NullTime
	if status == models.StatusSent {
		sentAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	}

	query := `
		UPDATE notifications SET status = $1, error_message = $2, sent_at = COALESCE($3, sent_at), updated_at = NOW()
		WHERE id = $4
	`

	result, err := r.DB.ExecContext(dbCtx, query, status, errorMsg, sentAt, id)
	if err != nil {
		return fmt.Errorf("failed to update the notification status: %w", err)
	}

	return expectOneRow(result, ErrNotificationNotFound)
}
