package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vinicius-Leon/leons-cupcake/internal/domain"
	"github.com/Vinicius-Leon/leons-cupcake/internal/session"
	"github.com/Vinicius-Leon/leons-cupcake/internal/storage"
	apperrors "github.com/Vinicius-Leon/leons-cupcake/pkg/errors"
	"github.com/Vinicius-Leon/leons-cupcake/pkg/httpclient"
	"github.com/Vinicius-Leon/leons-cupcake/pkg/logger"
	"github.com/Vinicius-Leon/leons-cupcake/pkg/validator"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestClient builds a client over a real session manager backed by a
// temporary file store, with retries disabled to keep tests fast.
func newTestClient(t *testing.T, baseURL string) (*Client, *session.Manager) {
	t.Helper()

	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	sess := session.NewManager(store, newTestLogger())

	base := httpclient.New(httpclient.Config{
		Timeout:         5 * time.Second,
		MaxRetries:      0,
		RetryWaitMin:    time.Millisecond,
		RetryWaitMax:    time.Millisecond,
		MaxConnsPerHost: 2,
	})
	transport := httpclient.NewCircuitBreakerClient(base, httpclient.DefaultCircuitBreakerConfig("api-test"), newTestLogger())

	return NewClient(baseURL, transport, sess, newTestLogger()), sess
}

// --- Login ---

func TestLogin_SavesTokenAndUserIntoSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body["email"])
		assert.Equal(t, "segredo1", body["senha"])

		_ = json.NewEncoder(w).Encode(LoginResponse{
			AccessToken: "tok.abc.def",
			TokenType:   "Bearer",
			ExpiresIn:   86400,
			User: domain.User{
				ID:     7,
				Name:   "Ana",
				Email:  "ana@example.com",
				Role:   domain.RoleCustomer,
				Active: true,
			},
		})
	}))
	defer srv.Close()

	client, sess := newTestClient(t, srv.URL)

	resp, err := client.Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "segredo1"})
	require.NoError(t, err)
	assert.Equal(t, "tok.abc.def", resp.AccessToken)

	token, ok := sess.Token()
	require.True(t, ok)
	assert.Equal(t, "tok.abc.def", token)

	user, ok := sess.User()
	require.True(t, ok)
	assert.Equal(t, 7, user.ID)
	assert.Equal(t, domain.RoleCustomer, user.Role)
}

func TestLogin_InvalidInputNeverHitsBackend(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	client, sess := newTestClient(t, srv.URL)

	_, err := client.Login(context.Background(), LoginRequest{Email: "not-an-email", Password: "x"})

	var verr *validator.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, hits)

	_, ok := sess.Token()
	assert.False(t, ok)
}

func TestLogin_BackendErrorIsMapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"erro":"Email ou senha incorretos"}`))
	}))
	defer srv.Close()

	client, sess := newTestClient(t, srv.URL)

	_, err := client.Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "errada1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Contains(t, err.Error(), "Email ou senha incorretos")

	_, ok := sess.Token()
	assert.False(t, ok)
}

// --- Bearer attachment ---

func TestDo_AttachesBearerWhenTokenPresent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client, sess := newTestClient(t, srv.URL)
	sess.SaveToken("expired.or.not")

	_, err := client.ListProducts(context.Background())
	require.NoError(t, err)

	// The stored token is attached as-is, with no validity check.
	assert.Equal(t, "Bearer expired.or.not", gotAuth)
}

func TestDo_NoAuthorizationHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL)

	_, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

// --- Correlation ids ---

func TestDo_CorrelationIDHeader(t *testing.T) {
	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Correlation-ID")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL)

	// A context-supplied correlation id wins.
	ctx := logger.WithCorrelationID(context.Background(), "req-42")
	_, err := client.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "req-42", gotID)

	// Without one a fresh id is generated.
	_, err = client.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, gotID)
	assert.NotEqual(t, "req-42", gotID)
}

// --- Catalog ---

func TestListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/produtos", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id_produto":1,"nome":"Cupcake de Chocolate","preco":8.5,"quantidade":40,"ativo":true},
			{"id_produto":2,"nome":"Cupcake de Morango","preco":9.0,"quantidade":12,"ativo":true}
		]`))
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL)

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Cupcake de Chocolate", products[0].Name)
	assert.InDelta(t, 9.0, products[1].Price, 1e-9)
}

func TestGetProduct_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"erro":"Produto não encontrado"}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL)

	_, err := client.GetProduct(context.Background(), 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateProduct_RejectsInvalidPrice(t *testing.T) {
	client, _ := newTestClient(t, "http://invalid.test")

	_, err := client.CreateProduct(context.Background(), ProductRequest{Name: "Cupcake", Price: 0})

	var verr *validator.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCreateCategory_UnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/categorias", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"mensagem":"Categoria criada com sucesso","categoria":{"id_categoria":4,"nome":"Veganos","ativo":true}}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL)

	category, err := client.CreateCategory(context.Background(), CategoryRequest{Name: "Veganos"})
	require.NoError(t, err)
	assert.Equal(t, 4, category.ID)
	assert.Equal(t, "Veganos", category.Name)
}

// --- Orders ---

func TestPlaceOrder_PostsCartProjection(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/pedidos", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id_pedido":10,"numero_pedido":"PED-0010","status":"pendente","valor_total":85}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL)

	payload := domain.OrderPayload{
		Items: []domain.OrderItem{
			{ProductID: 1, Quantity: 3},
			{ProductID: 2, Quantity: 1},
		},
		TotalValue: 85.00,
	}
	order, err := client.PlaceOrder(context.Background(), NewOrderRequest(7, payload, "Rua das Flores 123", "pix"))
	require.NoError(t, err)
	assert.Equal(t, 10, order.ID)
	assert.Equal(t, "PED-0010", order.Number)

	assert.EqualValues(t, 7, gotBody["id_usuario"])
	assert.EqualValues(t, 85, gotBody["valor_total"])
	assert.Equal(t, "Rua das Flores 123", gotBody["endereco"])
	assert.Equal(t, "pix", gotBody["metodo"])
	items, ok := gotBody["itens"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestPlaceOrder_EmptyCartRejectedLocally(t *testing.T) {
	client, _ := newTestClient(t, "http://invalid.test")

	_, err := client.PlaceOrder(context.Background(), NewOrderRequest(7, domain.OrderPayload{}, "Rua X", "pix"))

	var verr *validator.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestUpdateOrderStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/pedidos/10/status", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "em_preparo", body["status"])

		_, _ = w.Write([]byte(`{"id_pedido":10,"status":"em_preparo"}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL)

	order, err := client.UpdateOrderStatus(context.Background(), 10, "em_preparo")
	require.NoError(t, err)
	assert.Equal(t, "em_preparo", order.Status)
}

func TestCancelOrder(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL)

	require.NoError(t, client.CancelOrder(context.Background(), 10))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/pedidos/10", gotPath)
}

// --- Deliveries ---

func TestUpdateDelivery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/entregas/3", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "entregue", body["status"])

		_, _ = w.Write([]byte(`{"id_entrega":3,"id_pedido":10,"status":"entregue"}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL)

	delivery, err := client.UpdateDelivery(context.Background(), 3, DeliveryUpdateRequest{Status: "entregue"})
	require.NoError(t, err)
	assert.Equal(t, "entregue", delivery.Status)
	assert.Equal(t, 10, delivery.OrderID)
}

// --- Unreachable backend ---

func TestDo_NetworkErrorIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	client, _ := newTestClient(t, srv.URL)

	_, err := client.ListProducts(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, apperrors.ErrNotFound))
}
