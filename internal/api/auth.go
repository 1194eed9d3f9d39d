package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Vinicius-Leon/leons-cupcake/internal/domain"
	"github.com/Vinicius-Leon/leons-cupcake/pkg/validator"
)

// LoginRequest carries the credentials for /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required,min=6"`
}

// LoginResponse is the backend's successful login body.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int         `json:"expires_in"`
	User        domain.User `json:"user"`
}

// RegisterRequest carries the fields for /auth/register.
type RegisterRequest struct {
	Name     string `json:"nome" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required,min=6"`
	TaxID    string `json:"cpf" validate:"required"`
	Phone    string `json:"telefone" validate:"required"`
}

// Login authenticates against the backend and, on success, saves the
// returned token and user into the session before returning.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	c.session.SaveToken(resp.AccessToken)
	c.session.SaveUser(&resp.User)
	c.logger.Info("login succeeded",
		slog.Int("user_id", resp.User.ID),
		slog.String("role", resp.User.Role),
	)
	return &resp, nil
}

// Register creates a new customer account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &user, nil
}

// CurrentUser fetches the authenticated user's profile from /auth/me.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, fmt.Errorf("fetch current user: %w", err)
	}
	return &user, nil
}

// RefreshToken asks the backend for a fresh token and stores it in the
// session.
func (c *Client) RefreshToken(ctx context.Context) error {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", struct{}{}, &resp); err != nil {
		return fmt.Errorf("refresh token: %w", err)
	}
	c.session.SaveToken(resp.AccessToken)
	return nil
}
