package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts godoc
//	@Summary		List catalog products
//	@Description	Returns the catalog in listing order, optionally restricted to one category.
//	@Tags			Products
//	@Produce		json
//	@Param			category	query		string						false	"Category name, case-insensitive"
//	@Success		200			{object}	models.ListProductsResponse	"Products"
//	@Router			/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		category := r.URL.Query().Get("category")

		resp, err := h.productService.ListProducts(r.Context(), category)
		if err != nil {
			logger.Error("Failed to list products", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Debug("Products listed", slog.String("category", category), slog.Int("count", resp.Total))
		response.Success(w, http.StatusOK, resp)
	}
}

// GetProduct godoc
//	@Summary		Get a product
//	@Tags			Products
//	@Produce		json
//	@Param			id	path		string					true	"Product ID"
//	@Success		200	{object}	models.Product			"Product"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Router			/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		id := r.PathValue("id")

		product, err := h.productService.GetProductByID(r.Context(), id)
		if err != nil {
			logger.Warn("Product lookup failed", slog.String("productId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}
