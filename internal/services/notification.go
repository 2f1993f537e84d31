package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/pkg/sendgrid"
	"github.com/google/uuid"
)

const orderPlacedSubject = "Order Placed"

type NotificationService interface {
	SendOrderConfirmation(ctx context.Context, order models.Order) (*models.Notification, error)
}

type notificationService struct {
	repo         repository.NotificationRepository
	users        repository.UserRepository
	emailService sendgrid.EmailService
	now          func() time.Time
}

func NewNotificationService(repo repository.NotificationRepository, users repository.UserRepository, emailService sendgrid.EmailService) NotificationService {
	return &notificationService{repo: repo, users: users, emailService: emailService, now: time.Now}
}

// SendOrderConfirmation emails the buyer a summary of a placed order. Every
// attempt is recorded, and a failed send is recorded as failed before the
// error is returned.
func (n *notificationService) SendOrderConfirmation(ctx context.Context, order models.Order) (*models.Notification, error) {

	logger := middleware.LoggerFromContext(ctx)

	user, err := n.users.GetUserById(ctx, order.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up buyer: %w", err)
	}

	req := &models.EmailNotificationRequest{
		Subject: orderPlacedSubject,
		Content: orderConfirmationText(order),
		To:      user.Email,
		ToName:  user.DisplayName,
	}

	now := n.now()
	notification := &models.Notification{
		ID:        uuid.New(),
		OrderID:   order.ID,
		Type:      models.NotificationTypeEmail,
		Recipient: req.To,
		Subject:   req.Subject,
		Content:   req.Content,
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Save to the database
	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification record: %w", err)
	}

	if err := n.emailService.Send(ctx, req); err != nil {

		notification.Status = models.StatusFailed
		notification.Error = err.Error()

		if updateErr := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusFailed, notification.Error); updateErr != nil {
			logger.Warn("⚠️ Failed to record failed notification", slog.String("notificationId", notification.ID.String()), slog.String("error", updateErr.Error()))
		}

		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	notification.Status = models.StatusSent
	sentAt := n.now()
	notification.SentAt = &sentAt

	if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusSent, ""); err != nil {
		return nil, fmt.Errorf("notification sent successfully but failed to update notification status: %w", err)
	}

	logger.Info("📧 Order confirmation sent", slog.String("orderId", order.ID.String()))

	return notification, nil
}

func orderConfirmationText(order models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Your order has been placed successfully.\n\n")
	fmt.Fprintf(&b, "Order: %s\n", order.ID)
	fmt.Fprintf(&b, "Total: Php%s\n", order.Total)
	fmt.Fprintf(&b, "Payment: %s\n", order.PaymentMethod)
	fmt.Fprintf(&b, "Deliver to: %s\n", order.Address)

	return b.String()
}
