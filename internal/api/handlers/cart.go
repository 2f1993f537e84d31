package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart godoc
//	@Summary		Get the signed-in user's cart
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.Cart				"Cart with total"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to get cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// AddItem godoc
//	@Summary		Add a product to the cart
//	@Description	Merges with an existing line for the same product by adding the quantities.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Product and quantity"
//	@Success		200		{object}	models.Cart				"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Security		BearerAuth
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add to cart input")
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Failed to add item to cart", slog.String("productId", req.ProductID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.String("productId", req.ProductID), slog.Int("quantity", req.Quantity))
		response.Success(w, http.StatusOK, cart)
	}
}

// RemoveItem godoc
//	@Summary		Remove a product from the cart
//	@Tags			Cart
//	@Produce		json
//	@Param			id	path		string					true	"Product ID"
//	@Success		200	{object}	models.Cart				"Updated cart"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		productID := r.PathValue("id")
		if productID == "" {
			response.Error(w, errors.BadRequestError("Product ID is required"))
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), claims.UserID, productID)
		if err != nil {
			logger.Error("Failed to remove cart item", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Item removed from cart", slog.String("productId", productID))
		response.Success(w, http.StatusOK, cart)
	}
}

// ClearCart godoc
//	@Summary		Empty the cart
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.Cart				"Empty cart"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		cart, err := h.cartService.ClearCart(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to clear cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Cart cleared")
		response.Success(w, http.StatusOK, cart)
	}
}

// StreamCart godoc
//	@Summary		Follow the cart live
//	@Description	Server-sent events. A "cart" event carries the current cart on connect and after every change.
//	@Tags			Cart
//	@Produce		text/event-stream
//	@Success		200	{object}	models.Cart				"Stream of carts"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/cart/stream [get]
func (h *CartHandler) StreamCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		updates, stop, err := h.cartService.Subscribe(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to follow cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}
		defer stop()

		logger.Debug("Cart stream opened")
		streamEvents(w, r, "cart", updates, logger)
		logger.Debug("Cart stream closed")
	}
}
