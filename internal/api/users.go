package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Vinicius-Leon/leons-cupcake/internal/domain"
	"github.com/Vinicius-Leon/leons-cupcake/pkg/validator"
)

// UserUpdateRequest carries the account fields an admin can change.
type UserUpdateRequest struct {
	Name   string `json:"nome" validate:"required,min=3"`
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"telefone"`
	Role   string `json:"tipo_usuario" validate:"required,oneof=cliente admin entregador"`
	Active bool   `json:"ativo"`
}

// ListUsers fetches every account. Admin operation.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/usuarios", nil, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// GetUser fetches a single account by id. Admin operation.
func (c *Client) GetUser(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/usuarios/%d", id), nil, &user); err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

// UpdateUser overwrites an account's profile. Admin operation.
func (c *Client) UpdateUser(ctx context.Context, id int, req UserUpdateRequest) (*domain.User, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	var user domain.User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/usuarios/%d", id), req, &user); err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	return &user, nil
}

// DeleteUser removes an account. Admin operation.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/usuarios/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}
