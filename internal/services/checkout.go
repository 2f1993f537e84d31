package service

import (
	"context"
	stdErrors "errors"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/cart"
	"github.com/aaravmahajanofficial/storefront/internal/checkout"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/tasks"
	"github.com/google/uuid"
)

type CheckoutService interface {
	Start(ctx context.Context, userID uuid.UUID) (*models.CheckoutSummary, error)
	Get(ctx context.Context, sessionID, userID uuid.UUID) (*models.CheckoutSummary, error)
	AddAddress(ctx context.Context, sessionID, userID uuid.UUID, req *models.AddAddressRequest) (*models.CheckoutSummary, error)
	SelectAddress(ctx context.Context, sessionID, userID uuid.UUID, req *models.SelectAddressRequest) (*models.CheckoutSummary, error)
	DeliverToSelected(ctx context.Context, sessionID, userID uuid.UUID) (*models.CheckoutSummary, error)
	SelectDeliveryMethod(ctx context.Context, sessionID, userID uuid.UUID, req *models.SelectDeliveryRequest) (*models.CheckoutSummary, error)
	Next(ctx context.Context, sessionID, userID uuid.UUID) (*models.CheckoutSummary, error)
	PlaceOrder(ctx context.Context, sessionID, userID uuid.UUID) (*models.Order, error)
}

type checkoutService struct {
	sessions *checkout.Manager
	carts    *cart.Registry
}

func NewCheckoutService(sessions *checkout.Manager, carts *cart.Registry) CheckoutService {
	return &checkoutService{sessions: sessions, carts: carts}
}

// Start opens a checkout over the user's current cart.
func (s *checkoutService) Start(ctx context.Context, userID uuid.UUID) (*models.CheckoutSummary, error) {

	store := s.carts.Get(ctx, userID.String())

	session, err := s.sessions.Start(ctx, userID, store)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load addresses").WithError(err)
	}

	return session.Summary(), nil
}

func (s *checkoutService) Get(ctx context.Context, sessionID, userID uuid.UUID) (*models.CheckoutSummary, error) {

	session, err := s.sessions.Get(sessionID, userID)
	if err != nil {
		return nil, checkoutError(err)
	}

	return session.Summary(), nil
}

func (s *checkoutService) AddAddress(ctx context.Context, sessionID, userID uuid.UUID, req *models.AddAddressRequest) (*models.CheckoutSummary, error) {

	return s.apply(sessionID, userID, func(session *checkout.Session) error {
		_, err := session.AddAddress(ctx, req.Address)
		return err
	})
}

func (s *checkoutService) SelectAddress(ctx context.Context, sessionID, userID uuid.UUID, req *models.SelectAddressRequest) (*models.CheckoutSummary, error) {

	return s.apply(sessionID, userID, func(session *checkout.Session) error {
		return session.SelectAddress(req.AddressID)
	})
}

func (s *checkoutService) DeliverToSelected(ctx context.Context, sessionID, userID uuid.UUID) (*models.CheckoutSummary, error) {

	return s.apply(sessionID, userID, (*checkout.Session).DeliverToSelected)
}

func (s *checkoutService) SelectDeliveryMethod(ctx context.Context, sessionID, userID uuid.UUID, req *models.SelectDeliveryRequest) (*models.CheckoutSummary, error) {

	return s.apply(sessionID, userID, func(session *checkout.Session) error {
		return session.SelectDeliveryMethod(req.DeliveryMethod)
	})
}

func (s *checkoutService) Next(ctx context.Context, sessionID, userID uuid.UUID) (*models.CheckoutSummary, error) {

	return s.apply(sessionID, userID, (*checkout.Session).Next)
}

func (s *checkoutService) PlaceOrder(ctx context.Context, sessionID, userID uuid.UUID) (*models.Order, error) {

	session, err := s.sessions.Get(sessionID, userID)
	if err != nil {
		return nil, checkoutError(err)
	}

	order, err := session.PlaceOrder(ctx)
	if err != nil {
		return nil, checkoutError(err)
	}

	return order, nil
}

func (s *checkoutService) apply(sessionID, userID uuid.UUID, step func(*checkout.Session) error) (*models.CheckoutSummary, error) {

	session, err := s.sessions.Get(sessionID, userID)
	if err != nil {
		return nil, checkoutError(err)
	}

	if err := step(session); err != nil {
		return nil, checkoutError(err)
	}

	return session.Summary(), nil
}

func checkoutError(err error) error {
	switch {
	case stdErrors.Is(err, checkout.ErrSessionNotFound):
		return errors.NotFoundError("Checkout session not found").WithError(err)
	case stdErrors.Is(err, checkout.ErrUnknownAddress):
		return errors.NotFoundError("Address not found").WithError(err)
	case stdErrors.Is(err, checkout.ErrNoAddressSelected):
		return errors.ValidationError("Please select a delivery address").WithError(err)
	case stdErrors.Is(err, checkout.ErrEmptyCart):
		return errors.ValidationError("Your cart is empty").WithError(err)
	case stdErrors.Is(err, checkout.ErrEmptyAddress):
		return errors.AddValidationError("address", "must contain text").WithError(err)
	case stdErrors.Is(err, checkout.ErrInvalidDeliveryMethod):
		return errors.AddValidationError("delivery_method", "unsupported delivery method").WithError(err)
	case stdErrors.Is(err, checkout.ErrWrongStep):
		return errors.BadRequestError("Action not allowed at this checkout step").WithError(err)
	case stdErrors.Is(err, checkout.ErrPlacementInProgress):
		return errors.ConflictError("Order placement already in progress").WithError(err)
	default:
		return errors.DatabaseError("Checkout failed").WithError(err)
	}
}

// EventPublisher announces placed orders to other instances.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, order models.Order) error
}

// FeedRefresher pushes a user's order list to live history feeds.
type FeedRefresher interface {
	Refresh(ctx context.Context, userID uuid.UUID) error
}

// NewOrderPlacedHook returns the follow-up work for a placed order: refresh
// the user's history feed, send the confirmation email and publish the
// event. Every step runs on runner and none can fail the placement. Nil
// collaborators are skipped.
func NewOrderPlacedHook(runner *tasks.Runner, feed FeedRefresher, notifier NotificationService, publisher EventPublisher, logger *slog.Logger) func(ctx context.Context, order models.Order) {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, order models.Order) {

		if feed != nil {
			runner.Go(ctx, "history_refresh", func(ctx context.Context) error {
				return feed.Refresh(ctx, order.UserID)
			})
		}

		if notifier != nil {
			runner.Go(ctx, "order_confirmation", func(ctx context.Context) error {
				_, err := notifier.SendOrderConfirmation(ctx, order)
				return err
			})
		}

		if publisher != nil {
			runner.Go(ctx, "publish_order_placed", func(ctx context.Context) error {
				return publisher.PublishOrderPlaced(ctx, order)
			})
		}

		logger.Debug("Order follow-ups scheduled", slog.String("orderId", order.ID.String()))
	}
}
