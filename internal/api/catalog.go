package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Vinicius-Leon/leons-cupcake/internal/domain"
	"github.com/Vinicius-Leon/leons-cupcake/pkg/validator"
)

// ProductRequest carries the fields for creating or updating a product.
// Create and update are admin operations; the catalog reads are public.
type ProductRequest struct {
	Name        string  `json:"nome" validate:"required,min=2"`
	Description string  `json:"descricao"`
	Price       float64 `json:"preco" validate:"required,gt=0"`
	Stock       int     `json:"quantidade" validate:"gte=0"`
	ImageURL    string  `json:"imagem_principal_url" validate:"omitempty,url"`
}

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/produtos", nil, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/produtos/%d", id), nil, &product); err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &product, nil
}

// CreateProduct adds a product to the catalog.
func (c *Client) CreateProduct(ctx context.Context, req ProductRequest) (*domain.Product, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	var product domain.Product
	if err := c.do(ctx, http.MethodPost, "/produtos", req, &product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &product, nil
}

// UpdateProduct overwrites an existing product.
func (c *Client) UpdateProduct(ctx context.Context, id int, req ProductRequest) (*domain.Product, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	var product domain.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/produtos/%d", id), req, &product); err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	return &product, nil
}

// DeleteProduct removes a product from the catalog.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/produtos/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

// CategoryRequest carries the fields for creating a category.
type CategoryRequest struct {
	Name        string `json:"nome" validate:"required"`
	Description string `json:"descricao"`
}

// ListCategories fetches the active categories.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.do(ctx, http.MethodGet, "/categorias", nil, &categories); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory adds a category. Admin operation. The backend wraps the
// created resource in a confirmation envelope.
func (c *Client) CreateCategory(ctx context.Context, req CategoryRequest) (*domain.Category, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	var resp struct {
		Message  string          `json:"mensagem"`
		Category domain.Category `json:"categoria"`
	}
	if err := c.do(ctx, http.MethodPost, "/categorias", req, &resp); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &resp.Category, nil
}
