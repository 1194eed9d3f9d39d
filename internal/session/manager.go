// Package session owns the authentication token and cached user profile and
// decides whether the current session is valid. All operations degrade to
// safe defaults: callers never receive an error from a corrupted token or a
// bad stored profile.
package session

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/Vinicius-Leon/leons-cupcake/internal/domain"
	"github.com/Vinicius-Leon/leons-cupcake/internal/storage"
)

// Manager holds the session state for one device profile. Construct with
// NewManager and pass explicitly; there is no package-level instance.
type Manager struct {
	store    storage.Store
	logger   *slog.Logger
	now      func() time.Time
	onLogout []func()
}

// NewManager creates a session manager on top of the given store.
func NewManager(store storage.Store, logger *slog.Logger) *Manager {
	return &Manager{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// SaveToken stores the bearer token. An empty token is logged and ignored;
// any previously stored token is left untouched.
func (m *Manager) SaveToken(token string) {
	if token == "" {
		m.logger.Error("refusing to save empty token")
		return
	}

	if err := m.store.Set(storage.KeyToken, []byte(token)); err != nil {
		m.logger.Error("failed to persist token", slog.String("error", err.Error()))
	}
}

// Token returns the stored bearer token without decoding or validating it.
func (m *Manager) Token() (string, bool) {
	raw, err := m.store.Get(storage.KeyToken)
	if err != nil {
		return "", false
	}
	return string(raw), true
}

// RemoveToken deletes the stored token. Safe to call when none is stored.
func (m *Manager) RemoveToken() {
	if err := m.store.Delete(storage.KeyToken); err != nil {
		m.logger.Error("failed to remove token", slog.String("error", err.Error()))
	}
}

// IsLoggedIn reports whether a stored token exists, decodes, carries an exp
// claim, and that exp is strictly in the future. Expiry is checked lazily on
// every call; nothing clears the token when it lapses.
func (m *Manager) IsLoggedIn() bool {
	token, ok := m.Token()
	if !ok {
		return false
	}

	claims, ok := decodeClaims(token)
	if !ok {
		m.logger.Debug("stored token failed to decode")
		return false
	}
	if claims.Exp == nil {
		m.logger.Debug("stored token has no exp claim")
		return false
	}

	return *claims.Exp > float64(m.now().Unix())
}

// SaveUser caches the user profile. A nil user is logged and ignored.
func (m *Manager) SaveUser(user *domain.User) {
	if user == nil {
		m.logger.Error("refusing to save nil user")
		return
	}

	raw, err := json.Marshal(user)
	if err != nil {
		m.logger.Error("failed to serialize user", slog.String("error", err.Error()))
		return
	}
	if err := m.store.Set(storage.KeyUser, raw); err != nil {
		m.logger.Error("failed to persist user", slog.String("error", err.Error()))
	}
}

// User returns the cached profile. A missing or undecodable entry yields
// (nil, false).
func (m *Manager) User() (*domain.User, bool) {
	raw, err := m.store.Get(storage.KeyUser)
	if err != nil {
		return nil, false
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		m.logger.Error("failed to parse stored user", slog.String("error", err.Error()))
		return nil, false
	}
	return &user, true
}

// RemoveUser deletes the cached profile. Safe to call when none is stored.
func (m *Manager) RemoveUser() {
	if err := m.store.Delete(storage.KeyUser); err != nil {
		m.logger.Error("failed to remove user", slog.String("error", err.Error()))
	}
}

// UserType returns the cached profile's role.
func (m *Manager) UserType() (string, bool) {
	user, ok := m.User()
	if !ok {
		return "", false
	}
	return user.Role, true
}

// IsAdmin reports whether the cached profile has the admin role.
func (m *Manager) IsAdmin() bool {
	role, _ := m.UserType()
	return role == domain.RoleAdmin
}

// IsCourier reports whether the cached profile has the courier role.
func (m *Manager) IsCourier() bool {
	role, _ := m.UserType()
	return role == domain.RoleCourier
}

// IsCustomer reports whether the cached profile has the customer role.
func (m *Manager) IsCustomer() bool {
	role, _ := m.UserType()
	return role == domain.RoleCustomer
}

// OnLogout registers a hook to run at the end of Logout. The cart manager
// registers its clear operation here so logout empties the in-memory cart as
// well as storage.
func (m *Manager) OnLogout(fn func()) {
	m.onLogout = append(m.onLogout, fn)
}

// Logout removes the token and user, and purges the cart and favorites keys.
// Reaching into the cart's storage namespace here is intentional coupling:
// logout is the one place session state and cart state are cleared together.
func (m *Manager) Logout() {
	m.RemoveToken()
	m.RemoveUser()

	for _, key := range []string{storage.KeyCart, storage.KeyFavorites} {
		if err := m.store.Delete(key); err != nil {
			m.logger.Error("failed to purge key on logout",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}

	for _, fn := range m.onLogout {
		fn()
	}

	m.logger.Info("session cleared")
}
