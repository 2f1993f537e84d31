package service

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"slices"

	"github.com/aaravmahajanofficial/storefront/internal/cart"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productID string) (*models.Cart, error)
	ClearCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	Subscribe(ctx context.Context, userID uuid.UUID) (<-chan *models.Cart, func(), error)
}

type cartService struct {
	carts   *cart.Registry
	catalog cart.Catalog
	logger  *slog.Logger
}

func NewCartService(carts *cart.Registry, catalog cart.Catalog, logger *slog.Logger) CartService {
	if logger == nil {
		logger = slog.Default()
	}

	return &cartService{carts: carts, catalog: catalog, logger: logger}
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {

	store := s.carts.Get(ctx, userID.String())

	return s.view(store.Items()), nil
}

// AddItem resolves the product and merges it into the user's cart. The
// product's display fields are copied onto the line.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error) {

	product, ok := s.catalog.Lookup(req.ProductID)
	if !ok {
		return nil, errors.NotFoundError("Product not found").WithDetail(req.ProductID)
	}

	if req.Option != "" && !slices.Contains(product.Options, req.Option) {
		return nil, errors.AddValidationError("option", "not offered for this product")
	}

	item := models.CartItem{
		ID:          product.ID,
		Quantity:    req.Quantity,
		Option:      req.Option,
		Name:        product.Name,
		Price:       product.Price,
		Description: product.Description,
	}

	store := s.carts.Get(ctx, userID.String())

	if _, err := store.AddItem(ctx, item); err != nil {
		if stdErrors.Is(err, cart.ErrInvalidQuantity) {
			return nil, errors.AddValidationError("quantity", "must be positive")
		}

		return nil, errors.BadRequestError("Failed to add item").WithError(err)
	}

	return s.view(store.Items()), nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID string) (*models.Cart, error) {

	store := s.carts.Get(ctx, userID.String())
	store.RemoveItem(ctx, productID)

	return s.view(store.Items()), nil
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {

	store := s.carts.Get(ctx, userID.String())
	store.Clear(ctx)

	return s.view(store.Items()), nil
}

// Subscribe streams the user's cart, starting with its current contents. A
// slow reader only sees the newest cart. The channel is closed when ctx ends
// or stop is called.
func (s *cartService) Subscribe(ctx context.Context, userID uuid.UUID) (<-chan *models.Cart, func(), error) {

	store := s.carts.Get(ctx, userID.String())
	snapshot, updates, cancel := store.Subscribe()

	out := make(chan *models.Cart, 1)
	out <- s.view(snapshot)

	go func() {
		defer close(out)
		defer cancel()

		for {
			select {
			case items, ok := <-updates:
				if !ok {
					return
				}

				select {
				case <-out:
				default:
				}
				out <- s.view(items)

			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cancel, nil
}

func (s *cartService) view(items []models.CartItem) *models.Cart {
	if items == nil {
		items = []models.CartItem{}
	}

	return &models.Cart{
		Items: items,
		Total: cart.Total(items, s.catalog, s.logger).StringFixed(2),
		Count: len(items),
	}
}
