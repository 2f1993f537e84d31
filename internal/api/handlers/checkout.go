package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: validator.New()}
}

// StartCheckout godoc
//	@Summary		Start a checkout
//	@Description	Opens a checkout session over the current cart at the address step.
//	@Tags			Checkout
//	@Produce		json
//	@Success		201	{object}	models.CheckoutSummary	"New checkout session"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/checkout [post]
func (h *CheckoutHandler) StartCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		summary, err := h.checkoutService.Start(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to start checkout", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Checkout started", slog.String("sessionId", summary.SessionID.String()))
		response.Success(w, http.StatusCreated, summary)
	}
}

// GetCheckout godoc
//	@Summary		Get a checkout session
//	@Tags			Checkout
//	@Produce		json
//	@Param			id	path		string					true	"Session ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.CheckoutSummary	"Checkout session"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Session not found"
//	@Security		BearerAuth
//	@Router			/checkout/{id} [get]
func (h *CheckoutHandler) GetCheckout() http.HandlerFunc {
	return h.step("Get checkout", func(ctx context.Context, sessionID, userID uuid.UUID, _ *http.Request) (*models.CheckoutSummary, error) {
		summary, err := h.checkoutService.Get(ctx, sessionID, userID)
		return summary, err
	})
}

// AddAddress godoc
//	@Summary		Add a delivery address
//	@Description	Saves a new address to the user's address book and selects it.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Session ID (UUID)"	Format(uuid)
//	@Param			address	body		models.AddAddressRequest	true	"Address text"
//	@Success		200		{object}	models.CheckoutSummary		"Updated session"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error or wrong step"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse		"Session not found"
//	@Security		BearerAuth
//	@Router			/checkout/{id}/addresses [post]
func (h *CheckoutHandler) AddAddress() http.HandlerFunc {
	return h.step("Add address", func(ctx context.Context, sessionID, userID uuid.UUID, r *http.Request) (*models.CheckoutSummary, error) {
		var req models.AddAddressRequest
		if err := h.decode(r, &req); err != nil {
			return nil, err
		}

		summary, err := h.checkoutService.AddAddress(ctx, sessionID, userID, &req)
		return summary, err
	})
}

// SelectAddress godoc
//	@Summary		Select a saved address
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Session ID (UUID)"	Format(uuid)
//	@Param			address	body		models.SelectAddressRequest	true	"Address ID"
//	@Success		200		{object}	models.CheckoutSummary		"Updated session"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error or wrong step"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse		"Session or address not found"
//	@Security		BearerAuth
//	@Router			/checkout/{id}/address [put]
func (h *CheckoutHandler) SelectAddress() http.HandlerFunc {
	return h.step("Select address", func(ctx context.Context, sessionID, userID uuid.UUID, r *http.Request) (*models.CheckoutSummary, error) {
		var req models.SelectAddressRequest
		if err := h.decode(r, &req); err != nil {
			return nil, err
		}

		summary, err := h.checkoutService.SelectAddress(ctx, sessionID, userID, &req)
		return summary, err
	})
}

// DeliverToSelected godoc
//	@Summary		Continue with the selected address
//	@Description	Moves the session to the delivery step.
//	@Tags			Checkout
//	@Produce		json
//	@Param			id	path		string					true	"Session ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.CheckoutSummary	"Updated session"
//	@Failure		400	{object}	response.ErrorResponse	"No address selected or wrong step"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Session not found"
//	@Security		BearerAuth
//	@Router			/checkout/{id}/deliver [post]
func (h *CheckoutHandler) DeliverToSelected() http.HandlerFunc {
	return h.step("Deliver to selected address", func(ctx context.Context, sessionID, userID uuid.UUID, _ *http.Request) (*models.CheckoutSummary, error) {
		summary, err := h.checkoutService.DeliverToSelected(ctx, sessionID, userID)
		return summary, err
	})
}

// SelectDeliveryMethod godoc
//	@Summary		Choose a delivery method
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string							true	"Session ID (UUID)"	Format(uuid)
//	@Param			delivery	body		models.SelectDeliveryRequest	true	"Delivery method"
//	@Success		200			{object}	models.CheckoutSummary			"Updated session"
//	@Failure		400			{object}	response.ErrorResponse			"Unknown method or wrong step"
//	@Failure		401			{object}	response.ErrorResponse			"Authentication required"
//	@Failure		404			{object}	response.ErrorResponse			"Session not found"
//	@Security		BearerAuth
//	@Router			/checkout/{id}/delivery [put]
func (h *CheckoutHandler) SelectDeliveryMethod() http.HandlerFunc {
	return h.step("Select delivery method", func(ctx context.Context, sessionID, userID uuid.UUID, r *http.Request) (*models.CheckoutSummary, error) {
		var req models.SelectDeliveryRequest
		if err := h.decode(r, &req); err != nil {
			return nil, err
		}

		summary, err := h.checkoutService.SelectDeliveryMethod(ctx, sessionID, userID, &req)
		return summary, err
	})
}

// Next godoc
//	@Summary		Continue to review
//	@Description	Moves the session from the delivery step to the review step.
//	@Tags			Checkout
//	@Produce		json
//	@Param			id	path		string					true	"Session ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.CheckoutSummary	"Updated session with review"
//	@Failure		400	{object}	response.ErrorResponse	"Wrong step"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Session not found"
//	@Security		BearerAuth
//	@Router			/checkout/{id}/next [post]
func (h *CheckoutHandler) Next() http.HandlerFunc {
	return h.step("Advance checkout", func(ctx context.Context, sessionID, userID uuid.UUID, _ *http.Request) (*models.CheckoutSummary, error) {
		summary, err := h.checkoutService.Next(ctx, sessionID, userID)
		return summary, err
	})
}

// PlaceOrder godoc
//	@Summary		Confirm and place the order
//	@Tags			Checkout
//	@Produce		json
//	@Param			id	path		string					true	"Session ID (UUID)"	Format(uuid)
//	@Success		201	{object}	models.Order			"Placed order"
//	@Failure		400	{object}	response.ErrorResponse	"Empty cart or wrong step"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Session not found"
//	@Failure		409	{object}	response.ErrorResponse	"Placement already in progress"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/checkout/{id}/confirm [post]
func (h *CheckoutHandler) PlaceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		sessionID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.checkoutService.PlaceOrder(r.Context(), sessionID, claims.UserID)
		if err != nil {
			logger.Error("Failed to place order", slog.String("sessionId", sessionID.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Order placed", slog.String("orderId", order.ID.String()), slog.String("total", order.Total))
		response.Success(w, http.StatusCreated, order)
	}
}

type checkoutStep func(ctx context.Context, sessionID, userID uuid.UUID, r *http.Request) (*models.CheckoutSummary, error)

// step wraps the claims and session id handling shared by every checkout
// transition.
func (h *CheckoutHandler) step(action string, fn checkoutStep) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		sessionID, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid session id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		summary, err := fn(r.Context(), sessionID, claims.UserID, r)
		if err != nil {
			logger.Warn(action+" failed", slog.String("sessionId", sessionID.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info(action+" succeeded", slog.String("sessionId", sessionID.String()), slog.String("step", summary.Step))
		response.Success(w, http.StatusOK, summary)
	}
}

func (h *CheckoutHandler) decode(r *http.Request, dest any) error {
	if err := utils.DecodeJSONBody(r, dest); err != nil {
		return errors.BadRequestError("Invalid request body").WithDetail(err.Error()).WithError(err)
	}

	if err := utils.ValidateStruct(h.validator, dest); err != nil {
		return errors.ValidationError("Validation failed").WithDetail(err.Error()).WithError(err)
	}

	return nil
}
