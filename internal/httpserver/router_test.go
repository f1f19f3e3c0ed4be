package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"maqha/internal/domain"
	cartsvc "maqha/internal/service/cart"
	"maqha/internal/service/orders"
	staffsvc "maqha/internal/service/staff"
	"github.com/gin-gonic/gin"
)

type stubSession struct{}

func (stubSession) Mint() (string, error) { return "S123-abc", nil }

type stubCatalog struct {
	items []domain.CatalogItem
}

func (s stubCatalog) List(_ context.Context) ([]domain.CatalogItem, error) {
	return s.items, nil
}

func (s stubCatalog) Get(_ context.Context, id string) (*domain.CatalogItem, error) {
	for _, item := range s.items {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, domain.ErrNotFound
}

type stubCart struct {
	addErr error
}

func (s stubCart) Get(_ context.Context, sessionID string) (*domain.PricedCart, error) {
	return &domain.PricedCart{SessionID: sessionID, Lines: []domain.PricedLine{}}, nil
}

func (s stubCart) AddItem(_ context.Context, sessionID, itemID string, quantity int) (*domain.PricedCart, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	return &domain.PricedCart{
		SessionID: sessionID,
		Lines:     []domain.PricedLine{{ItemID: itemID, Quantity: quantity}},
		ItemCount: quantity,
	}, nil
}

func (s stubCart) SetQuantity(_ context.Context, sessionID, _ string, _ int) (*domain.PricedCart, error) {
	return &domain.PricedCart{SessionID: sessionID}, nil
}

func (s stubCart) RemoveItem(_ context.Context, sessionID, _ string) (*domain.PricedCart, error) {
	return &domain.PricedCart{SessionID: sessionID}, nil
}

func (s stubCart) Clear(_ context.Context, _ string) error { return nil }

type stubFulfillmentSvc struct{}

func (stubFulfillmentSvc) Set(_ context.Context, _ string, f domain.Fulfillment) (*domain.Fulfillment, error) {
	return &f, nil
}

func (stubFulfillmentSvc) Get(_ context.Context, _ string) (*domain.Fulfillment, error) {
	return nil, domain.ErrNotFound
}

func (stubFulfillmentSvc) Clear(_ context.Context, _ string) error { return nil }

type stubLoyalty struct {
	registerErr error
}

func (s stubLoyalty) Register(_ context.Context, name, phone string) (*domain.Customer, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &domain.Customer{ID: "c-1", Name: name, Phone: phone, CardNumber: "M-1050"}, nil
}

func (s stubLoyalty) Get(_ context.Context, id string) (*domain.Customer, error) {
	return &domain.Customer{ID: id}, nil
}

func (s stubLoyalty) GetByPhone(_ context.Context, phone string) (*domain.Customer, error) {
	return &domain.Customer{ID: "c-1", Phone: phone}, nil
}

func (s stubLoyalty) UseFreeDrink(_ context.Context, id string) (*domain.Customer, error) {
	return &domain.Customer{ID: id}, nil
}

type stubOrders struct {
	updateErr error
}

func (s stubOrders) Place(_ context.Context, in orders.PlaceInput) (*domain.Order, error) {
	return &domain.Order{Number: "ORD-20260829-001", SessionID: in.SessionID, Status: domain.OrderPending}, nil
}

func (s stubOrders) Get(_ context.Context, number string) (*domain.Order, error) {
	if number != "ORD-20260829-001" {
		return nil, domain.ErrNotFound
	}
	return &domain.Order{Number: number, Status: domain.OrderPending}, nil
}

func (s stubOrders) ListForCustomer(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, nil
}

func (s stubOrders) ListByStatus(_ context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	return []domain.Order{{Number: "ORD-20260829-001", Status: status}}, nil
}

func (s stubOrders) UpdateStatus(_ context.Context, number string, next domain.OrderStatus) (*domain.Order, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &domain.Order{Number: number, Status: next}, nil
}

type stubHistorySvc struct{}

func (stubHistorySvc) List(_ context.Context, _ string) ([]domain.OrderSummary, error) {
	return nil, nil
}

func (stubHistorySvc) Remove(_ context.Context, _, _ string) error { return nil }
func (stubHistorySvc) Clear(_ context.Context, _ string) error     { return nil }

type stubStaff struct {
	token string
	user  *domain.StaffUser
}

func (s stubStaff) Login(_ context.Context, username, password string) (*domain.StaffUser, string, error) {
	if s.user == nil || username != s.user.Username {
		return nil, "", staffsvc.ErrInvalidCredentials
	}
	return s.user, s.token, nil
}

func (s stubStaff) LookupByToken(_ context.Context, token string) (*domain.StaffUser, error) {
	if s.user == nil || token != s.token {
		return nil, staffsvc.ErrInvalidToken
	}
	return s.user, nil
}

func (s stubStaff) CreateUser(_ context.Context, username, _, role string) (*domain.StaffUser, error) {
	return &domain.StaffUser{ID: "st-2", Username: username, Role: role}, nil
}

func (s stubStaff) AccessTTLSeconds() int { return 3600 }

func testDeps() Deps {
	return Deps{
		SessionSvc: stubSession{},
		CatalogSvc: stubCatalog{items: []domain.CatalogItem{
			{ID: "mocha", Name: "Mocha", PriceCents: 700, Availability: domain.Available},
		}},
		CartSvc:        stubCart{},
		FulfillmentSvc: stubFulfillmentSvc{},
		LoyaltySvc:     stubLoyalty{},
		OrderSvc:       stubOrders{},
		HistorySvc:     stubHistorySvc{},
		StaffSvc:       stubStaff{token: "tkn", user: &domain.StaffUser{ID: "st-1", Username: "amira", Role: "manager"}},
	}
}

func newTestRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(log.New(io.Discard, "", 0), nil, deps)
	if err != nil {
		t.Fatalf("buildRouter: %v", err)
	}
	return router
}

func doRequest(router *gin.Engine, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, testDeps())
	rec := doRequest(router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCreateSession(t *testing.T) {
	router := newTestRouter(t, testDeps())
	rec := doRequest(router, http.MethodPost, "/v1/sessions", "", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["sessionId"] != "S123-abc" {
		t.Fatalf("unexpected session id %q", resp["sessionId"])
	}
}

func TestListMenu(t *testing.T) {
	router := newTestRouter(t, testDeps())
	rec := doRequest(router, http.MethodGet, "/v1/menu", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Items []domain.CatalogItem `json:"items"`
		Count int                  `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 1 || len(resp.Items) != 1 || resp.Items[0].ID != "mocha" {
		t.Fatalf("unexpected menu response: %s", rec.Body.String())
	}
}

func TestGetMenuItemNotFound(t *testing.T) {
	router := newTestRouter(t, testDeps())
	rec := doRequest(router, http.MethodGet, "/v1/menu/absent", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAddCartItem(t *testing.T) {
	router := newTestRouter(t, testDeps())
	rec := doRequest(router, http.MethodPost, "/v1/carts/s1/items", `{"itemId":"mocha","quantity":2}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var cart domain.PricedCart
	if err := json.Unmarshal(rec.Body.Bytes(), &cart); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cart.ItemCount != 2 {
		t.Fatalf("unexpected cart: %+v", cart)
	}
}

func TestAddCartItemRequiresItemID(t *testing.T) {
	router := newTestRouter(t, testDeps())
	rec := doRequest(router, http.MethodPost, "/v1/carts/s1/items", `{"quantity":2}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAddCartItemUnavailable(t *testing.T) {
	deps := testDeps()
	deps.CartSvc = stubCart{addErr: cartsvc.ErrItemUnavailable}
	router := newTestRouter(t, deps)

	rec := doRequest(router, http.MethodPost, "/v1/carts/s1/items", `{"itemId":"seasonal"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	router := newTestRouter(t, testDeps())
	rec := doRequest(router, http.MethodGet, "/v1/orders/ORD-20260829-999", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPlaceOrder(t *testing.T) {
	router := newTestRouter(t, testDeps())
	rec := doRequest(router, http.MethodPost, "/v1/orders", `{"sessionId":"s1","paymentMethod":"cash"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var order domain.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if order.Number != "ORD-20260829-001" {
		t.Fatalf("unexpected order: %+v", order)
	}
}

func TestRegisterCustomerConflict(t *testing.T) {
	deps := testDeps()
	deps.LoyaltySvc = stubLoyalty{registerErr: domain.ErrConflict}
	router := newTestRouter(t, deps)

	rec := doRequest(router, http.MethodPost, "/v1/customers", `{"name":"Huda","phone":"0501234567"}`, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestStaffRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t, testDeps())

	rec := doRequest(router, http.MethodGet, "/v1/staff/orders", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	header := http.Header{"Authorization": []string{"Bearer wrong"}}
	rec = doRequest(router, http.MethodGet, "/v1/staff/orders", "", header)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}
}

func TestStaffListOrders(t *testing.T) {
	router := newTestRouter(t, testDeps())
	header := http.Header{"Authorization": []string{"Bearer tkn"}}

	rec := doRequest(router, http.MethodGet, "/v1/staff/orders?status=preparing", "", header)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Orders []domain.Order `json:"orders"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Orders) != 1 || resp.Orders[0].Status != domain.OrderPreparing {
		t.Fatalf("unexpected orders: %s", rec.Body.String())
	}

	rec = doRequest(router, http.MethodGet, "/v1/staff/orders?status=burnt", "", header)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", rec.Code)
	}
}

func TestStaffUpdateStatusBadTransition(t *testing.T) {
	deps := testDeps()
	deps.OrderSvc = stubOrders{updateErr: orders.ErrBadTransition}
	router := newTestRouter(t, deps)
	header := http.Header{"Authorization": []string{"Bearer tkn"}}

	rec := doRequest(router, http.MethodPatch, "/v1/staff/orders/ORD-20260829-001/status", `{"status":"completed"}`, header)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestStaffLogin(t *testing.T) {
	router := newTestRouter(t, testDeps())

	rec := doRequest(router, http.MethodPost, "/v1/staff/login", `{"username":"amira","password":"s3cret-pass"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"accessToken"`
		ExpiresIn   int    `json:"expiresIn"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.AccessToken != "tkn" || resp.ExpiresIn != 3600 {
		t.Fatalf("unexpected login response: %s", rec.Body.String())
	}

	rec = doRequest(router, http.MethodPost, "/v1/staff/login", `{"username":"ghost","password":"whatever"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestListHistoryEmpty(t *testing.T) {
	router := newTestRouter(t, testDeps())
	rec := doRequest(router, http.MethodGet, "/v1/sessions/s1/orders", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"orders":[]`) {
		t.Fatalf("expected empty orders array, got %s", rec.Body.String())
	}
}
