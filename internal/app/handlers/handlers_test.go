package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/akorbut/storefront/internal/app/handlers"
	"github.com/akorbut/storefront/internal/domain/models"
	"github.com/akorbut/storefront/internal/service"
	"github.com/akorbut/storefront/internal/storage"
	"github.com/akorbut/storefront/internal/token/tokenmiddleware"
)

type fakeAuthService struct {
	user  *models.User
	token string
	err   error
}

var _ service.AuthServiceInterface = (*fakeAuthService)(nil)

func (f *fakeAuthService) Signup(ctx context.Context, cmd service.SignupCommand) (*models.User, string, error) {
	return f.user, f.token, f.err
}

func (f *fakeAuthService) Signin(ctx context.Context, email, password string) (*models.User, string, error) {
	return f.user, f.token, f.err
}

func (f *fakeAuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) (*models.User, error) {
	return f.user, f.err
}

func (f *fakeAuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return f.user, f.err
}

type fakeOrderService struct {
	order *models.Order
	err   error
}

var _ service.OrderService = (*fakeOrderService)(nil)

func (f *fakeOrderService) Create(ctx context.Context, userID string, cmd service.OrderCommand) (*models.Order, error) {
	return f.order, f.err
}

func (f *fakeOrderService) Update(ctx context.Context, id, userID string, cmd service.OrderCommand) (*models.Order, error) {
	return f.order, f.err
}

func (f *fakeOrderService) Delete(ctx context.Context, id, userID string) error {
	return f.err
}

func (f *fakeOrderService) Find(ctx context.Context, id, userID string) (*models.Order, error) {
	return f.order, f.err
}

func (f *fakeOrderService) All(ctx context.Context, userID string) ([]*models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*models.Order{f.order}, nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// withAuth injects the identity the token middleware would have set.
func withAuth(req *http.Request, userID, role string) *http.Request {
	ctx := context.WithValue(req.Context(), tokenmiddleware.UserIDKey, userID)
	ctx = context.WithValue(ctx, tokenmiddleware.RoleKey, role)
	return req.WithContext(ctx)
}

func TestSignupHandler_Success(t *testing.T) {
	fakeSvc := &fakeAuthService{
		user:  &models.User{ID: "user-1", Email: "new@example.com", Role: models.RoleCustomer},
		token: "test-token",
	}
	handler := handlers.SignupHandler(newTestLogger(), fakeSvc)

	reqBody := `{"email": "new@example.com", "password": "password123", "firstName": "Ada", "lastName": "Lovelace"}`
	req := httptest.NewRequest("POST", "/api/auth/signup", bytes.NewBufferString(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp handlers.AuthResponse
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "test-token", resp.Token)
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, models.RoleCustomer, resp.User.Role)
}

func TestSignupHandler_ValidationError(t *testing.T) {
	handler := handlers.SignupHandler(newTestLogger(), &fakeAuthService{})

	// password below the minimum length
	reqBody := `{"email": "new@example.com", "password": "short", "firstName": "A", "lastName": "B"}`
	req := httptest.NewRequest("POST", "/api/auth/signup", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSigninHandler_InvalidCredentials(t *testing.T) {
	fakeSvc := &fakeAuthService{err: service.ErrInvalidCredentials}
	handler := handlers.SigninHandler(newTestLogger(), fakeSvc)

	reqBody := `{"email": "user@example.com", "password": "wrongpass"}`
	req := httptest.NewRequest("POST", "/api/auth/signin", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSigninHandler_InvalidJSON(t *testing.T) {
	handler := handlers.SigninHandler(newTestLogger(), &fakeAuthService{})

	req := httptest.NewRequest("POST", "/api/auth/signin", bytes.NewBufferString(`{"email":`))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateOrderHandler_Success(t *testing.T) {
	userID := "user-1"
	fakeSvc := &fakeOrderService{order: &models.Order{
		ID:       "order-1",
		Status:   models.OrderPlaced,
		PlacedBy: &userID,
		Items:    []*models.OrderItem{{ID: "item-1", OrderID: "order-1", Price: 24.99, Quantity: 2}},
	}}
	handler := handlers.CreateOrderHandler(newTestLogger(), fakeSvc)

	reqBody := `{"shippingAddressId": "ship-1", "billingAddressId": "bill-1", "cardId": "card-1",
		"items": [{"productId": "prod-1", "quantity": 2}]}`
	req := httptest.NewRequest("POST", "/api/orders", bytes.NewBufferString(reqBody))
	req = withAuth(req, userID, models.RoleCustomer)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp models.Order
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "order-1", resp.ID)
	assert.Len(t, resp.Items, 1)
}

func TestCreateOrderHandler_Unauthorized(t *testing.T) {
	handler := handlers.CreateOrderHandler(newTestLogger(), &fakeOrderService{})

	reqBody := `{"shippingAddressId": "s", "billingAddressId": "b", "cardId": "c", "items": [{"productId": "p", "quantity": 1}]}`
	req := httptest.NewRequest("POST", "/api/orders", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateOrderHandler_EmptyItemsRejected(t *testing.T) {
	handler := handlers.CreateOrderHandler(newTestLogger(), &fakeOrderService{})

	reqBody := `{"shippingAddressId": "s", "billingAddressId": "b", "cardId": "c", "items": []}`
	req := httptest.NewRequest("POST", "/api/orders", bytes.NewBufferString(reqBody))
	req = withAuth(req, "user-1", models.RoleCustomer)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateOrderHandler_InsufficientInventory(t *testing.T) {
	handler := handlers.CreateOrderHandler(newTestLogger(), &fakeOrderService{err: service.ErrInsufficientInventory})

	reqBody := `{"shippingAddressId": "s", "billingAddressId": "b", "cardId": "c", "items": [{"productId": "p", "quantity": 5}]}`
	req := httptest.NewRequest("POST", "/api/orders", bytes.NewBufferString(reqBody))
	req = withAuth(req, "user-1", models.RoleCustomer)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetOrderHandler_NotFound(t *testing.T) {
	handler := handlers.GetOrderHandler(newTestLogger(), &fakeOrderService{err: storage.ErrOrderNotFound})

	router := chi.NewRouter()
	router.Get("/api/orders/{id}", handler)

	req := httptest.NewRequest("GET", "/api/orders/missing", nil)
	req = withAuth(req, "user-1", models.RoleCustomer)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteOrderHandler_NotEditable(t *testing.T) {
	handler := handlers.DeleteOrderHandler(newTestLogger(), &fakeOrderService{err: service.ErrOrderNotEditable})

	router := chi.NewRouter()
	router.Delete("/api/orders/{id}", handler)

	req := httptest.NewRequest("DELETE", "/api/orders/order-1", nil)
	req = withAuth(req, "user-1", models.RoleCustomer)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestForbiddenHandler(t *testing.T) {
	handler := handlers.ForbiddenHandler(newTestLogger())

	req := httptest.NewRequest("POST", "/api/users", nil)
	req = withAuth(req, "admin-1", models.RoleAdmin)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
