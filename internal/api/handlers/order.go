package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GetOrder godoc
//	@Summary		Get an order by ID
//	@Description	Retrieves one order placed by the authenticated user.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Order			"Successfully retrieved order"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID format"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		logger = logger.With(slog.String("userID", claims.UserID.String()))

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetOrder(r.Context(), claims.UserID, id)
		if err != nil {
			logger.Error("Failed to get order", slog.String("orderId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Order retrieved successfully", slog.String("orderId", id.String()))
		response.Success(w, http.StatusOK, order)
	}
}

// ListOrders godoc
//	@Summary		List the user's orders
//	@Description	Returns orders newest first. Without pageSize the whole history is returned. just_placed narrows the result to the order that was just placed.
//	@Tags			Orders
//	@Produce		json
//	@Param			page		query		int												false	"Page number (default: 1)"	minimum(1)
//	@Param			pageSize	query		int												false	"Items per page (max: 50)"	minimum(1)	maximum(50)
//	@Param			just_placed	query		string											false	"Order ID to show alone"	Format(uuid)
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Order}	"Successfully retrieved list of orders"
//	@Failure		400			{object}	response.ErrorResponse							"Invalid just_placed value"
//	@Failure		401			{object}	response.ErrorResponse							"Authentication required"
//	@Failure		404			{object}	response.ErrorResponse							"Order not found"
//	@Failure		500			{object}	response.ErrorResponse							"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		logger = logger.With(slog.String("userID", claims.UserID.String()))
		query := r.URL.Query()

		page, err := strconv.Atoi(query.Get("page"))
		if err != nil || page < 1 {
			page = 1
		}

		pageSize, err := strconv.Atoi(query.Get("pageSize"))
		if err != nil || pageSize < 0 {
			pageSize = 0
		}

		justPlaced := uuid.Nil
		if raw := query.Get("just_placed"); raw != "" {
			justPlaced, err = uuid.Parse(raw)
			if err != nil {
				response.Error(w, errors.BadRequestError("Invalid just_placed format").WithDetail(err.Error()))
				return
			}
		}

		orders, err := h.orderService.ListOrders(r.Context(), claims.UserID, justPlaced, page, pageSize)
		if err != nil {
			logger.Error("Failed to list orders", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Orders listed successfully", slog.Int("total", orders.Total), slog.Int("page", orders.Page))
		response.Success(w, http.StatusOK, orders)
	}
}

// StreamOrders godoc
//	@Summary		Follow the order history live
//	@Description	Server-sent events. An "orders" event carries the full history on connect and whenever it changes.
//	@Tags			Orders
//	@Produce		text/event-stream
//	@Success		200	{array}		models.Order			"Stream of order lists"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/orders/stream [get]
func (h *OrderHandler) StreamOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		updates, stop, err := h.orderService.Subscribe(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to follow orders", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}
		defer stop()

		streamEvents(w, r, "orders", updates, logger)
	}
}
