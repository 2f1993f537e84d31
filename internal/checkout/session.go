// Package checkout implements the three-step checkout flow: pick an address,
// pick a delivery method, review and confirm.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/cart"
	"github.com/aaravmahajanofficial/storefront/internal/catalog"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

type Step int

const (
	StepSelectAddress Step = iota
	StepSelectDelivery
	StepReviewAndConfirm
	StepPlaced
)

func (s Step) String() string {
	switch s {
	case StepSelectAddress:
		return "select_address"
	case StepSelectDelivery:
		return "select_delivery"
	case StepReviewAndConfirm:
		return "review_and_confirm"
	case StepPlaced:
		return "placed"
	default:
		return "unknown"
	}
}

var (
	ErrNoAddressSelected     = errors.New("checkout: no address selected")
	ErrEmptyCart             = errors.New("checkout: cart is empty")
	ErrEmptyAddress          = errors.New("checkout: address text is required")
	ErrUnknownAddress        = errors.New("checkout: address not found")
	ErrInvalidDeliveryMethod = errors.New("checkout: unsupported delivery method")
	ErrWrongStep             = errors.New("checkout: action not allowed at this step")
	ErrPlacementInProgress   = errors.New("checkout: order placement already in progress")
	ErrSessionNotFound       = errors.New("checkout: session not found")
)

// AddressBook reads and replaces the saved addresses of a user.
type AddressBook interface {
	GetAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	SetAddresses(ctx context.Context, userID uuid.UUID, addresses []models.Address) error
}

// OrderStore writes an order as a single document.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
}

// Cart is the read side of the cart a session checks out.
type Cart interface {
	Items() []models.CartItem
}

// Deps are the collaborators shared by every session.
type Deps struct {
	Catalog   cart.Catalog
	Addresses AddressBook
	Orders    OrderStore
	Logger    *slog.Logger

	// OnPlaced runs after an order has been written. It must not block.
	OnPlaced func(ctx context.Context, order models.Order)

	Clock func() time.Time
	NewID func() uuid.UUID
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	if d.Clock == nil {
		d.Clock = time.Now
	}

	if d.NewID == nil {
		d.NewID = uuid.New
	}

	return d
}

// Session is one walk through checkout for one user.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time

	mu        sync.Mutex
	step      Step
	addresses []models.Address
	loaded    bool
	selected  string
	method    models.DeliveryMethod
	placing   bool
	placed    *models.Order

	// addMu serialises AddAddress so two adds cannot both replace the
	// remote list from the same base.
	addMu sync.Mutex

	cart      Cart
	deps      Deps
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
}

func NewSession(userID uuid.UUID, c Cart, deps Deps) *Session {
	deps = deps.withDefaults()
	id := deps.NewID()

	return &Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: deps.Clock(),
		step:      StepSelectAddress,
		addresses: []models.Address{},
		method:    models.DeliveryCashOnDelivery,
		cart:      c,
		deps:      deps,
		sanitizer: bluemonday.StrictPolicy(),
		logger: deps.Logger.With(
			slog.String("checkoutId", id.String()),
			slog.String("userId", userID.String()),
		),
	}
}

func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.step
}

// LoadAddresses fetches the user's saved addresses once per session and
// selects the first one. A failed fetch can be retried.
func (s *Session) LoadAddresses(ctx context.Context) error {
	s.mu.Lock()
	if s.loaded {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	addresses, err := s.deps.Addresses.GetAddresses(ctx, s.UserID)
	if err != nil {
		return fmt.Errorf("failed to load addresses: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}

	s.addresses = slices.Clone(addresses)
	if s.addresses == nil {
		s.addresses = []models.Address{}
	}
	s.loaded = true

	if s.selected == "" && len(s.addresses) > 0 {
		s.selected = s.addresses[0].ID
	}

	return nil
}

// AddAddress saves a new free-text address. The remote list is written
// first; the local list only changes once that write succeeds.
func (s *Session) AddAddress(ctx context.Context, text string) (models.Address, error) {
	text = strings.TrimSpace(s.sanitizer.Sanitize(strings.TrimSpace(text)))
	if text == "" {
		return models.Address{}, ErrEmptyAddress
	}

	s.addMu.Lock()
	defer s.addMu.Unlock()

	if err := s.LoadAddresses(ctx); err != nil {
		return models.Address{}, err
	}

	s.mu.Lock()
	if s.step != StepSelectAddress {
		s.mu.Unlock()
		return models.Address{}, ErrWrongStep
	}

	addr := models.Address{ID: s.nextAddressIDLocked(), Address: text}
	next := append(slices.Clone(s.addresses), addr)
	s.mu.Unlock()

	if err := s.deps.Addresses.SetAddresses(ctx, s.UserID, next); err != nil {
		return models.Address{}, fmt.Errorf("failed to save address: %w", err)
	}

	s.mu.Lock()
	s.addresses = next
	s.mu.Unlock()

	s.logger.Info("Address added", slog.String("addressId", addr.ID))

	return addr, nil
}

// nextAddressIDLocked uses the current unix millisecond, moving forward if
// that id is already taken.
func (s *Session) nextAddressIDLocked() string {
	ms := s.deps.Clock().UnixMilli()

	for {
		id := strconv.FormatInt(ms, 10)
		taken := slices.ContainsFunc(s.addresses, func(a models.Address) bool { return a.ID == id })
		if !taken {
			return id
		}
		ms++
	}
}

func (s *Session) SelectAddress(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepSelectAddress {
		return ErrWrongStep
	}

	if !slices.ContainsFunc(s.addresses, func(a models.Address) bool { return a.ID == id }) {
		return ErrUnknownAddress
	}

	s.selected = id

	return nil
}

// DeliverToSelected confirms the selected address and moves to delivery
// method selection.
func (s *Session) DeliverToSelected() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepSelectAddress {
		return ErrWrongStep
	}

	if _, ok := s.selectedAddressLocked(); !ok {
		return ErrNoAddressSelected
	}

	s.moveLocked(StepSelectDelivery)

	return nil
}

func (s *Session) SelectDeliveryMethod(method models.DeliveryMethod) error {
	if !method.Valid() {
		return ErrInvalidDeliveryMethod
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepSelectDelivery {
		return ErrWrongStep
	}

	s.method = method

	return nil
}

// Next moves from delivery selection to review.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepSelectDelivery {
		return ErrWrongStep
	}

	s.moveLocked(StepReviewAndConfirm)

	return nil
}

// Review prices the current cart for display. Unknown products are listed
// with an empty unit price and contribute zero.
func (s *Session) Review() models.OrderReview {
	s.mu.Lock()
	method := s.method
	addr, _ := s.selectedAddressLocked()
	s.mu.Unlock()

	items := s.cart.Items()
	lines := make([]models.ReviewLine, 0, len(items))

	for _, it := range items {
		line := models.ReviewLine{ProductID: it.ID, Name: it.Name, Quantity: it.Quantity}

		if p, ok := s.deps.Catalog.Lookup(it.ID); ok {
			line.Name = p.Name
		}

		if price, ok := cart.UnitPrice(s.deps.Catalog, it.ID); ok {
			line.UnitPrice = catalog.FormatPrice(price)
			line.LineTotal = catalog.FormatPrice(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}

		lines = append(lines, line)
	}

	return models.OrderReview{
		Lines:          lines,
		Total:          cart.Total(items, s.deps.Catalog, s.logger).StringFixed(2),
		DeliveryMethod: method,
		Address:        addr.Address,
	}
}

// PlaceOrder writes the order and moves the session to StepPlaced. It needs a
// selected address and a non-empty cart, and only one call may be in flight.
// The write is not cancelled with ctx. On failure nothing changes and the
// call can be repeated.
func (s *Session) PlaceOrder(ctx context.Context) (*models.Order, error) {
	s.mu.Lock()

	if s.placing {
		s.mu.Unlock()
		return nil, ErrPlacementInProgress
	}

	if s.step == StepPlaced {
		s.mu.Unlock()
		return nil, ErrWrongStep
	}

	addr, ok := s.selectedAddressLocked()
	if !ok {
		s.mu.Unlock()
		return nil, ErrNoAddressSelected
	}

	items := s.cart.Items()
	if len(items) == 0 {
		s.mu.Unlock()
		return nil, ErrEmptyCart
	}

	if s.step != StepReviewAndConfirm {
		s.mu.Unlock()
		return nil, ErrWrongStep
	}

	s.placing = true
	method := s.method
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.placing = false
		s.mu.Unlock()
	}()

	order := &models.Order{
		ID:            s.deps.NewID(),
		Items:         make([]models.OrderItem, 0, len(items)),
		Total:         cart.Total(items, s.deps.Catalog, s.logger).StringFixed(2),
		Delivery:      method,
		PaymentMethod: method,
		Address:       addr.Address,
		UserID:        s.UserID,
		CreatedAt:     s.deps.Clock().UTC(),
		Status:        models.OrderStatusPending,
	}

	for _, it := range items {
		order.Items = append(order.Items, models.OrderItem{ID: it.ID, Quantity: it.Quantity})
	}

	if err := s.deps.Orders.CreateOrder(context.WithoutCancel(ctx), order); err != nil {
		s.logger.Error("❌ Failed to place order", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.mu.Lock()
	s.placed = order
	s.moveLocked(StepPlaced)
	s.mu.Unlock()

	metrics.OrdersPlaced.Inc()
	s.logger.Info("✅ Order placed", slog.String("orderId", order.ID.String()), slog.String("total", order.Total))

	if s.deps.OnPlaced != nil {
		s.deps.OnPlaced(ctx, *order)
	}

	return order, nil
}

// Summary renders the session for clients.
func (s *Session) Summary() *models.CheckoutSummary {
	s.mu.Lock()
	summary := &models.CheckoutSummary{
		SessionID:         s.ID,
		Step:              s.step.String(),
		Addresses:         slices.Clone(s.addresses),
		SelectedAddressID: s.selected,
		DeliveryMethod:    s.method,
		Order:             s.placed,
	}
	step := s.step
	s.mu.Unlock()

	if step == StepReviewAndConfirm {
		review := s.Review()
		summary.Review = &review
	}

	return summary
}

func (s *Session) selectedAddressLocked() (models.Address, bool) {
	if s.selected == "" {
		return models.Address{}, false
	}

	idx := slices.IndexFunc(s.addresses, func(a models.Address) bool { return a.ID == s.selected })
	if idx < 0 {
		return models.Address{}, false
	}

	return s.addresses[idx], true
}

func (s *Session) moveLocked(to Step) {
	s.logger.Debug("Checkout step changed", slog.String("from", s.step.String()), slog.String("to", to.String()))
	s.step = to
	metrics.CheckoutTransitions.WithLabelValues(to.String()).Inc()
}
