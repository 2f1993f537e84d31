package service

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
)

// ProductCatalog is the read side of the product list.
type ProductCatalog interface {
	Lookup(id string) (models.Product, bool)
	List(category string) []models.Product
}

type ProductService interface {
	ListProducts(ctx context.Context, category string) (*models.ListProductsResponse, error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
}

type productService struct {
	catalog ProductCatalog
}

func NewProductService(catalog ProductCatalog) ProductService {
	return &productService{catalog: catalog}
}

func (s *productService) ListProducts(ctx context.Context, category string) (*models.ListProductsResponse, error) {

	products := s.catalog.List(category)

	return &models.ListProductsResponse{Products: products, Total: len(products)}, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {

	product, ok := s.catalog.Lookup(id)
	if !ok {
		return nil, errors.NotFoundError("Product not found").WithDetail(id)
	}

	return &product, nil
}
