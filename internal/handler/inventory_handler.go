package handler

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"go-shop-inventory/internal/model"
	"go-shop-inventory/internal/service"
	"go-shop-inventory/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// Request payloads. Bound checks (price >= 0, stock >= 0, quantity > 0)
// belong to the caller side of the store contract, so they are enforced
// here via validate tags rather than inside the service.
type createProductRequest struct {
	Code     string  `json:"code" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Stock    int     `json:"stock" validate:"gte=0"`
}

type adjustStockRequest struct {
	Delta int `json:"delta" validate:"ne=0"`
}

type sellRequest struct {
	Quantity int `json:"quantity" validate:"gt=0"`
}

type recordSaleRequest struct {
	ProductCode string  `json:"product_code" validate:"required"`
	Quantity    int     `json:"quantity" validate:"gt=0"`
	TotalPrice  float64 `json:"total_price" validate:"gte=0"`
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrDuplicateCode):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrInsufficientStock):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func validationError(c *fiber.Ctx, errs []*validator.ErrorResponse) error {
	first := errs[0]
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": fmt.Sprintf("validation failed: field %q failed on tag %q", first.FailedField, first.Tag),
	})
}

func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var req createProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(c, errs)
	}

	product := model.Product{
		Code:     req.Code,
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Stock:    req.Stock,
	}
	if err := h.service.AddProduct(&product); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Params("code"))
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(product)
}

func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("code")); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// GetLowStock lists products below the threshold (default 10).
// Query params: threshold
func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	threshold, err := strconv.Atoi(c.Query("threshold", strconv.Itoa(service.DefaultLowStockThreshold)))
	if err != nil || threshold <= 0 {
		threshold = service.DefaultLowStockThreshold
	}
	products, err := h.service.ListLowStock(threshold)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var req adjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(c, errs)
	}

	product, err := h.service.AdjustStock(c.Params("code"), req.Delta)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Stock updated", "data": product})
}

func (h *InventoryHandler) Sell(c *fiber.Ctx) error {
	var req sellRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(c, errs)
	}

	sale, err := h.service.Sell(c.Params("code"), req.Quantity)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Sale completed", "data": sale})
}

func (h *InventoryHandler) RecordSale(c *fiber.Ctx) error {
	var req recordSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(c, errs)
	}

	sale, err := h.service.RecordSale(req.ProductCode, req.Quantity, req.TotalPrice)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Sale recorded", "data": sale})
}

// GetSales returns recent ledger entries joined with product info.
// Query params: limit (default 50)
func (h *InventoryHandler) GetSales(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(service.DefaultSalesLimit)))
	if err != nil || limit <= 0 {
		limit = service.DefaultSalesLimit
	}
	sales, err := h.service.ListSales(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(sales)
}

func (h *InventoryHandler) GetSalesSummary(c *fiber.Ctx) error {
	summary, err := h.service.SalesSummary()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(summary)
}

func (h *InventoryHandler) LoadSampleData(c *fiber.Ctx) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	if err := h.service.LoadSampleData(rng); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Sample data loaded"})
}
