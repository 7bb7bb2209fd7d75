package service

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go-shop-inventory/internal/model"
	"go-shop-inventory/internal/repository"
	"go-shop-inventory/internal/seed"
	"go-shop-inventory/internal/ws"

	"gorm.io/gorm"
)

// DefaultLowStockThreshold is the stock level below which a product shows
// up in low-stock views unless the caller asks for a different cutoff.
const DefaultLowStockThreshold = 10

// DefaultSalesLimit caps ListSales when the caller passes no limit.
const DefaultSalesLimit = 50

type InventoryService interface {
	AddProduct(product *model.Product) error
	GetProduct(code string) (*model.Product, error)
	ListProducts() ([]model.Product, error)
	ListLowStock(threshold int) ([]model.Product, error)
	DeleteProduct(code string) error
	AdjustStock(code string, delta int) (*model.Product, error)
	RecordSale(code string, quantity int, totalPrice float64) (*model.Sale, error)
	Sell(code string, quantity int) (*model.Sale, error)
	ListSales(limit int) ([]repository.SaleRecord, error)
	SalesSummary() ([]repository.ProductSalesSummary, error)
	LoadSampleData(rng *rand.Rand) error
}

type inventoryService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	db          *gorm.DB
	hub         *ws.Hub
}

func NewInventoryService(pRepo repository.ProductRepository, sRepo repository.SaleRepository, db *gorm.DB, hub *ws.Hub) InventoryService {
	return &inventoryService{
		productRepo: pRepo,
		saleRepo:    sRepo,
		db:          db,
		hub:         hub,
	}
}

// AddProduct inserts a new catalog entry. The store deliberately does not
// bound-check price or stock; that is the caller's contract. Only code
// uniqueness is enforced here.
func (s *inventoryService) AddProduct(product *model.Product) error {
	_, err := s.productRepo.FindByCode(product.Code)
	if err == nil {
		return ErrDuplicateCode
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	product.LastUpdated = time.Now()
	if err := s.productRepo.Create(product); err != nil {
		return err
	}

	s.broadcast(ws.ActionProductCreated, product.Code, product.Name, product.Stock,
		fmt.Sprintf("product %q added with %d units", product.Name, product.Stock))
	return nil
}

func (s *inventoryService) GetProduct(code string) (*model.Product, error) {
	product, err := s.productRepo.FindByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return product, err
}

func (s *inventoryService) ListProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *inventoryService) ListLowStock(threshold int) ([]model.Product, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return s.productRepo.FindLowStock(threshold)
}

// DeleteProduct removes the catalog row. Historical sales keep their
// product_code; they are never cascaded.
func (s *inventoryService) DeleteProduct(code string) error {
	affected, err := s.productRepo.Delete(code)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustStock applies a signed delta to a product's stock. A delta that
// would drive stock negative is rejected with no effect, and last_updated
// is only refreshed on success.
func (s *inventoryService) AdjustStock(code string, delta int) (*model.Product, error) {
	var updated *model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, "code = ?", code).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		affected, err := s.productRepo.AdjustStock(tx, code, delta, time.Now())
		if err != nil {
			return err
		}
		if affected == 0 {
			// Row exists, so the conditional update can only have been
			// refused by the stock + delta >= 0 guard.
			return ErrInsufficientStock
		}

		// Re-read inside the transaction so last_updated reflects the write.
		if err := tx.First(&product, "code = ?", code).Error; err != nil {
			return err
		}
		updated = &product
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(ws.ActionStockAdjusted, updated.Code, updated.Name, updated.Stock,
		fmt.Sprintf("stock of %q adjusted by %+d to %d", updated.Name, delta, updated.Stock))
	return updated, nil
}

// RecordSale appends a ledger entry without touching stock. The historical
// two-step contract is kept for callers that decrement and record
// separately; Sell is the atomic variant.
func (s *inventoryService) RecordSale(code string, quantity int, totalPrice float64) (*model.Sale, error) {
	sale := &model.Sale{
		ProductCode: code,
		Quantity:    quantity,
		TotalPrice:  totalPrice,
		SaleDate:    time.Now(),
	}
	if err := s.saleRepo.Create(s.db, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// Sell performs "sell N units" as one unit of work: stock check, stock
// decrement, and ledger append either all happen or none do. The sale
// price is snapshotted from the product's current price.
func (s *inventoryService) Sell(code string, quantity int) (*model.Sale, error) {
	var sale *model.Sale
	var product model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "code = ?", code).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		now := time.Now()
		affected, err := s.productRepo.AdjustStock(tx, code, -quantity, now)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInsufficientStock
		}

		sale = &model.Sale{
			ProductCode: code,
			Quantity:    quantity,
			TotalPrice:  float64(quantity) * product.Price,
			SaleDate:    now,
		}
		return s.saleRepo.Create(tx, sale)
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(ws.ActionProductSold, product.Code, product.Name, product.Stock-quantity,
		fmt.Sprintf("sold %d units of %q", quantity, product.Name))
	return sale, nil
}

func (s *inventoryService) ListSales(limit int) ([]repository.SaleRecord, error) {
	if limit <= 0 {
		limit = DefaultSalesLimit
	}
	return s.saleRepo.FindRecent(limit)
}

func (s *inventoryService) SalesSummary() ([]repository.ProductSalesSummary, error) {
	return s.saleRepo.SummaryByProduct()
}

// LoadSampleData seeds the demo catalog and a batch of randomized
// historical sales. The rand source is injected so tests stay
// reproducible.
func (s *inventoryService) LoadSampleData(rng *rand.Rand) error {
	return seed.Load(s.db, rng)
}

func (s *inventoryService) broadcast(action, code, name string, stock int, message string) {
	if s.hub == nil {
		return
	}
	go s.hub.BroadcastStockEvent(ws.StockEvent{
		Action:  action,
		Code:    code,
		Name:    name,
		Stock:   stock,
		Message: message,
	})
}
