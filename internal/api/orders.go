package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Vinicius-Leon/leons-cupcake/internal/domain"
	"github.com/Vinicius-Leon/leons-cupcake/pkg/validator"
)

// OrderRequest is the body for /pedidos: the cart projection plus the
// checkout fields the customer fills in.
type OrderRequest struct {
	UserID        int                `json:"id_usuario" validate:"required,gt=0"`
	Items         []domain.OrderItem `json:"itens" validate:"required,min=1,dive"`
	TotalValue    float64            `json:"valor_total" validate:"gte=0"`
	Address       string             `json:"endereco" validate:"required"`
	PaymentMethod string             `json:"metodo" validate:"required"`
}

// NewOrderRequest combines the cart's order payload with the checkout fields.
func NewOrderRequest(userID int, payload domain.OrderPayload, address, paymentMethod string) OrderRequest {
	return OrderRequest{
		UserID:        userID,
		Items:         payload.Items,
		TotalValue:    payload.TotalValue,
		Address:       address,
		PaymentMethod: paymentMethod,
	}
}

// DeliveryUpdateRequest carries the fields a courier can change on a
// delivery.
type DeliveryUpdateRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"observacoes"`
}

// PlaceOrder submits the order to the backend.
func (c *Client) PlaceOrder(ctx context.Context, req OrderRequest) (*domain.Order, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	var order domain.Order
	if err := c.do(ctx, http.MethodPost, "/pedidos", req, &order); err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}
	return &order, nil
}

// ListOrders fetches every order. Admin operation.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "/pedidos", nil, &orders); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// ListMyOrders fetches the authenticated customer's orders.
func (c *Client) ListMyOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "/pedidos/meus-pedidos", nil, &orders); err != nil {
		return nil, fmt.Errorf("list my orders: %w", err)
	}
	return orders, nil
}

// GetOrder fetches a single order by id.
func (c *Client) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/pedidos/%d", id), nil, &order); err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return &order, nil
}

// UpdateOrderStatus moves an order to a new status. Admin operation.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int, status string) (*domain.Order, error) {
	body := struct {
		Status string `json:"status"`
	}{Status: status}

	var order domain.Order
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/pedidos/%d/status", id), body, &order); err != nil {
		return nil, fmt.Errorf("update order %d status: %w", id, err)
	}
	return &order, nil
}

// CancelOrder cancels an order the backend still allows cancelling.
func (c *Client) CancelOrder(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/pedidos/%d", id), nil, nil); err != nil {
		return fmt.Errorf("cancel order %d: %w", id, err)
	}
	return nil
}

// ListDeliveries fetches the delivery queue. Courier operation.
func (c *Client) ListDeliveries(ctx context.Context) ([]domain.Delivery, error) {
	var deliveries []domain.Delivery
	if err := c.do(ctx, http.MethodGet, "/entregas", nil, &deliveries); err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	return deliveries, nil
}

// UpdateDelivery updates a delivery's status and notes. Courier operation.
func (c *Client) UpdateDelivery(ctx context.Context, id int, req DeliveryUpdateRequest) (*domain.Delivery, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	var delivery domain.Delivery
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/entregas/%d", id), req, &delivery); err != nil {
		return nil, fmt.Errorf("update delivery %d: %w", id, err)
	}
	return &delivery, nil
}
