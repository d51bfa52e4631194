package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
	"github.com/sweetshop/sweet-shop-api/internal/core/ports"
)

type stubSweetService struct {
	createFn   func(ctx context.Context, actor *domain.Identity, input ports.SweetInput) (*domain.Sweet, error)
	listFn     func(ctx context.Context, actor *domain.Identity) ([]domain.Sweet, error)
	searchFn   func(ctx context.Context, actor *domain.Identity, query string) ([]domain.Sweet, error)
	updateFn   func(ctx context.Context, actor *domain.Identity, id string, input ports.SweetInput) (*domain.Sweet, error)
	purchaseFn func(ctx context.Context, actor *domain.Identity, id string) (*ports.PurchaseResult, error)
	restockFn  func(ctx context.Context, actor *domain.Identity, id string, amount int64) (*ports.RestockResult, error)
	deleteFn   func(ctx context.Context, actor *domain.Identity, id string) error
}

func (s *stubSweetService) Create(ctx context.Context, actor *domain.Identity, input ports.SweetInput) (*domain.Sweet, error) {
	return s.createFn(ctx, actor, input)
}

func (s *stubSweetService) List(ctx context.Context, actor *domain.Identity) ([]domain.Sweet, error) {
	return s.listFn(ctx, actor)
}

func (s *stubSweetService) Search(ctx context.Context, actor *domain.Identity, query string) ([]domain.Sweet, error) {
	return s.searchFn(ctx, actor, query)
}

func (s *stubSweetService) Update(ctx context.Context, actor *domain.Identity, id string, input ports.SweetInput) (*domain.Sweet, error) {
	return s.updateFn(ctx, actor, id, input)
}

func (s *stubSweetService) Purchase(ctx context.Context, actor *domain.Identity, id string) (*ports.PurchaseResult, error) {
	return s.purchaseFn(ctx, actor, id)
}

func (s *stubSweetService) Restock(ctx context.Context, actor *domain.Identity, id string, amount int64) (*ports.RestockResult, error) {
	return s.restockFn(ctx, actor, id, amount)
}

func (s *stubSweetService) Delete(ctx context.Context, actor *domain.Identity, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func TestSweetHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		createFn: func(ctx context.Context, actor *domain.Identity, input ports.SweetInput) (*domain.Sweet, error) {
			if input.Name != "Kaju Katli" || input.Price != 500 || input.Quantity != 20 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Sweet{ID: "s1", Name: input.Name, Category: input.Category, Price: input.Price, Quantity: input.Quantity}, nil
		},
	}
	handler := NewSweetHandler(stub)

	body := strings.NewReader(`{"name":"Kaju Katli","category":"Dry Fruit","price":500,"quantity":20}`)
	req := httptest.NewRequest(http.MethodPost, "/api/sweets", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "s1" || resp["name"] != "Kaju Katli" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestSweetHandler_Create_RejectsNegativeValues(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		createFn: func(ctx context.Context, actor *domain.Identity, input ports.SweetInput) (*domain.Sweet, error) {
			t.Fatal("service must not be called on validation failure")
			return nil, nil
		},
	}
	handler := NewSweetHandler(stub)

	for _, body := range []string{
		`{"name":"Bad","category":"Test","price":-1,"quantity":5}`,
		`{"name":"Bad","category":"Test","price":10,"quantity":-5}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/sweets", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = handler.Create(c)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestSweetHandler_Update_NotFoundPropagates(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		updateFn: func(ctx context.Context, actor *domain.Identity, id string, input ports.SweetInput) (*domain.Sweet, error) {
			return nil, domain.ErrSweetNotFound
		},
	}
	handler := NewSweetHandler(stub)

	body := strings.NewReader(`{"name":"Ladoo","category":"Traditional","price":200,"quantity":50}`)
	req := httptest.NewRequest(http.MethodPut, "/api/sweets/missing", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := handler.Update(c)
	if !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("expected ErrSweetNotFound to propagate, got %v", err)
	}
}

func TestSweetHandler_Purchase_ReturnsRemainingQuantity(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		purchaseFn: func(ctx context.Context, actor *domain.Identity, id string) (*ports.PurchaseResult, error) {
			if actor == nil || actor.Email != "buyer@example.com" {
				t.Fatalf("expected resolved actor, got %+v", actor)
			}
			if id != "s1" {
				t.Fatalf("unexpected id %s", id)
			}
			return &ports.PurchaseResult{RemainingQuantity: 1}, nil
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/sweets/s1/purchase", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("s1")
	c.Set("identity", &domain.Identity{UserID: "u1", Email: "buyer@example.com"})

	if err := handler.Purchase(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["remaining_quantity"] != 1 {
		t.Fatalf("expected remaining_quantity 1, got %+v", resp)
	}
}

func TestSweetHandler_Purchase_OutOfStockPropagates(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		purchaseFn: func(ctx context.Context, actor *domain.Identity, id string) (*ports.PurchaseResult, error) {
			return nil, domain.ErrOutOfStock
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/sweets/s1/purchase", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("s1")

	err := handler.Purchase(c)
	if !errors.Is(err, domain.ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock to propagate, got %v", err)
	}
}

func TestSweetHandler_Restock_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		restockFn: func(ctx context.Context, actor *domain.Identity, id string, amount int64) (*ports.RestockResult, error) {
			if amount != 5 {
				t.Fatalf("expected amount 5, got %d", amount)
			}
			return &ports.RestockResult{NewQuantity: 6}, nil
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/sweets/s1/restock?quantity=5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("s1")
	c.Set("identity", &domain.Identity{UserID: "u2", Email: "admin@example.com", IsAdmin: true})

	if err := handler.Restock(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["new_quantity"] != 6 {
		t.Fatalf("expected new_quantity 6, got %+v", resp)
	}
}

func TestSweetHandler_Restock_RejectsBadQuantityParam(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		restockFn: func(ctx context.Context, actor *domain.Identity, id string, amount int64) (*ports.RestockResult, error) {
			t.Fatal("service must not be called on a bad quantity param")
			return nil, nil
		},
	}
	handler := NewSweetHandler(stub)

	for _, qs := range []string{"", "quantity=abc", "quantity=0", "quantity=-2"} {
		target := "/api/sweets/s1/restock"
		if qs != "" {
			target += "?" + qs
		}
		req := httptest.NewRequest(http.MethodPost, target, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("s1")

		_ = handler.Restock(c)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("query %q: expected 400, got %d", qs, rec.Code)
		}
	}
}

func TestSweetHandler_Delete_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		deleteFn: func(ctx context.Context, actor *domain.Identity, id string) error {
			if id != "s1" {
				t.Fatalf("unexpected id %s", id)
			}
			return nil
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/sweets/s1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("s1")
	c.Set("identity", &domain.Identity{UserID: "u2", Email: "admin@example.com", IsAdmin: true})

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSweetHandler_Search_PassesQuery(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		searchFn: func(ctx context.Context, actor *domain.Identity, query string) ([]domain.Sweet, error) {
			if query != "Kaju" {
				t.Fatalf("expected query Kaju, got %q", query)
			}
			return []domain.Sweet{{ID: "s1", Name: "Kaju Katli"}}, nil
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/sweets/search?query=Kaju", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["name"] != "Kaju Katli" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
