package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-shop-inventory/internal/model"
	"go-shop-inventory/internal/repository"
	"go-shop-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.Product{}, &model.Sale{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	pRepo := repository.NewProductRepo(db)
	sRepo := repository.NewSaleRepo(db)
	inv := NewInventoryHandler(service.NewInventoryService(pRepo, sRepo, db, nil))
	dash := NewDashboardHandler(service.NewDashboardService(pRepo, sRepo))

	app := fiber.New()
	RegisterRoutes(app, inv, dash)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func createProduct(t *testing.T, app *fiber.App, code string, price float64, stock int) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/v1/products", fiber.Map{
		"code": code, "name": "Product " + code, "category": "Lighting", "price": price, "stock": stock,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create %s: status %d", code, resp.StatusCode)
	}
}

func TestCreateProductEndpoint(t *testing.T) {
	app := setupTestApp(t)
	createProduct(t, app, "ELE-001", 4.99, 10)

	// Duplicate code maps to 409
	resp := doJSON(t, app, http.MethodPost, "/api/v1/products", fiber.Map{
		"code": "ELE-001", "name": "Other", "category": "Cables", "price": 1, "stock": 1,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.StatusCode)
	}

	// Missing name fails validation with 400
	resp = doJSON(t, app, http.MethodPost, "/api/v1/products", fiber.Map{
		"code": "ELE-002", "category": "Cables", "price": 1, "stock": 1,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.StatusCode)
	}

	// Negative price is rejected at the edge
	resp = doJSON(t, app, http.MethodPost, "/api/v1/products", fiber.Map{
		"code": "ELE-003", "name": "X", "category": "Cables", "price": -1, "stock": 1,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative price got %d", resp.StatusCode)
	}
}

func TestGetProductEndpoint(t *testing.T) {
	app := setupTestApp(t)
	createProduct(t, app, "ELE-001", 4.99, 10)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/products/ELE-001", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	var got model.Product
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Code != "ELE-001" || got.Stock != 10 {
		t.Fatalf("unexpected product: %+v", got)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/NOPE-001", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.StatusCode)
	}
}

func TestAdjustStockEndpoint(t *testing.T) {
	app := setupTestApp(t)
	createProduct(t, app, "ELE-001", 4.99, 10)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/products/ELE-001/stock", fiber.Map{"delta": -3})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}

	// Overdraw maps to 422 and leaves stock alone
	resp = doJSON(t, app, http.MethodPost, "/api/v1/products/ELE-001/stock", fiber.Map{"delta": -8})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/ELE-001", nil)
	var got model.Product
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Stock != 7 {
		t.Fatalf("expected stock 7 got %d", got.Stock)
	}

	// Zero delta fails validation
	resp = doJSON(t, app, http.MethodPost, "/api/v1/products/ELE-001/stock", fiber.Map{"delta": 0})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/v1/products/NOPE-001/stock", fiber.Map{"delta": 1})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.StatusCode)
	}
}

func TestSellEndpoint(t *testing.T) {
	app := setupTestApp(t)
	createProduct(t, app, "ELE-001", 4.99, 10)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/products/ELE-001/sell", fiber.Map{"quantity": 3})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/v1/sales", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	var sales []repository.SaleRecord
	if err := json.NewDecoder(resp.Body).Decode(&sales); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(sales) != 1 || sales[0].Quantity != 3 {
		t.Fatalf("unexpected sales: %+v", sales)
	}

	// Non-positive quantity fails validation
	resp = doJSON(t, app, http.MethodPost, "/api/v1/products/ELE-001/sell", fiber.Map{"quantity": 0})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.StatusCode)
	}
}

func TestDeleteProductEndpoint(t *testing.T) {
	app := setupTestApp(t)
	createProduct(t, app, "ELE-001", 4.99, 10)

	resp := doJSON(t, app, http.MethodDelete, "/api/v1/products/ELE-001", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, http.MethodDelete, "/api/v1/products/ELE-001", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.StatusCode)
	}
}

func TestLowStockEndpoint(t *testing.T) {
	app := setupTestApp(t)
	createProduct(t, app, "ELE-001", 4.99, 3)
	createProduct(t, app, "ELE-002", 4.99, 50)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/products/low-stock", nil)
	var low []model.Product
	if err := json.NewDecoder(resp.Body).Decode(&low); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(low) != 1 || low[0].Code != "ELE-001" {
		t.Fatalf("unexpected low stock list: %+v", low)
	}
}

func TestDashboardEndpoints(t *testing.T) {
	app := setupTestApp(t)
	createProduct(t, app, "ELE-001", 2.00, 10)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/dashboard/stats", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats: %d", resp.StatusCode)
	}
	var stats repository.DashboardStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.TotalProducts != 1 || stats.InventoryValue != 20 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/v1/dashboard/categories", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("categories: %d", resp.StatusCode)
	}
	resp = doJSON(t, app, http.MethodGet, "/api/v1/dashboard/sales", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("sales stats: %d", resp.StatusCode)
	}
}

func TestSampleDataEndpoint(t *testing.T) {
	app := setupTestApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/v1/sample-data", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/v1/products", nil)
	var products []model.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(products) != 10 {
		t.Fatalf("expected 10 seeded products got %d", len(products))
	}
}
