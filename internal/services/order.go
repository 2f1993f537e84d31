package service

import (
	"context"
	stdErrors "errors"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/history"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
)

const maxOrderPageSize = 50

type OrderService interface {
	ListOrders(ctx context.Context, userID, justPlaced uuid.UUID, page, size int) (*models.PaginatedResponse, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	Subscribe(ctx context.Context, userID uuid.UUID) (<-chan []models.Order, func(), error)
}

type orderService struct {
	history *history.History
	repo    repository.OrderRepository
}

func NewOrderService(h *history.History, repo repository.OrderRepository) OrderService {
	return &orderService{history: h, repo: repo}
}

// ListOrders returns the user's orders, newest first. A non-nil justPlaced
// narrows the result to that order. A size of zero returns every order on a
// single page.
func (s *orderService) ListOrders(ctx context.Context, userID, justPlaced uuid.UUID, page, size int) (*models.PaginatedResponse, error) {

	if justPlaced != uuid.Nil || size <= 0 {
		orders, err := s.history.Orders(ctx, userID, justPlaced)
		if err != nil {
			return nil, orderError(err)
		}

		return &models.PaginatedResponse{Data: orders, Total: len(orders), Page: 1, PageSize: len(orders)}, nil
	}

	if page < 1 {
		page = 1
	}

	if size > maxOrderPageSize {
		size = maxOrderPageSize
	}

	orders, total, err := s.repo.ListOrdersByUser(ctx, userID, page, size)
	if err != nil {
		return nil, orderError(err)
	}

	if orders == nil {
		orders = []models.Order{}
	}

	return &models.PaginatedResponse{Data: orders, Total: total, Page: page, PageSize: size}, nil
}

func (s *orderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {

	if orderID == uuid.Nil {
		return nil, errors.NotFoundError("Order not found")
	}

	orders, err := s.history.Orders(ctx, userID, orderID)
	if err != nil {
		return nil, orderError(err)
	}

	return &orders[0], nil
}

func (s *orderService) Subscribe(ctx context.Context, userID uuid.UUID) (<-chan []models.Order, func(), error) {

	feed, cancel, err := s.history.Subscribe(ctx, userID)
	if err != nil {
		return nil, nil, orderError(err)
	}

	return feed, cancel, nil
}

func orderError(err error) error {
	if stdErrors.Is(err, history.ErrOrderNotFound) || stdErrors.Is(err, repository.ErrOrderNotFound) {
		return errors.NotFoundError("Order not found").WithError(err)
	}

	return errors.DatabaseError("Failed to load orders").WithError(err)
}
