package repository

import (
	"time"

	"go-shop-inventory/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindByCode(code string) (*model.Product, error)
	FindAll() ([]model.Product, error)
	FindLowStock(threshold int) ([]model.Product, error)
	Delete(code string) (int64, error)
	AdjustStock(tx *gorm.DB, code string, delta int, now time.Time) (int64, error)
	GetDashboardStats(lowStockThreshold int) (*DashboardStats, error)
	GetCategoryBreakdown() ([]CategoryStat, error)
}

// DashboardStats is the overview block shown at the top of the dashboard.
type DashboardStats struct {
	TotalProducts  int64   `json:"total_products"`
	InStockCount   int64   `json:"in_stock_count"`
	LowStockCount  int64   `json:"low_stock_count"`
	InventoryValue float64 `json:"inventory_value"`
	CategoryCount  int64   `json:"category_count"`
}

// CategoryStat aggregates the catalog per category for chart data.
type CategoryStat struct {
	Category     string  `json:"category"`
	ProductCount int64   `json:"product_count"`
	TotalStock   int64   `json:"total_stock"`
	StockValue   float64 `json:"stock_value"`
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindByCode(code string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Find(&products).Error
	return products, err
}

func (r *productRepo) FindLowStock(threshold int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("stock < ?", threshold).Find(&products).Error
	return products, err
}

// Delete removes the catalog row only. Sales referencing the code are left
// untouched; the ledger keeps a soft reference.
func (r *productRepo) Delete(code string) (int64, error) {
	res := r.db.Delete(&model.Product{}, "code = ?", code)
	return res.RowsAffected, res.Error
}

// AdjustStock applies stock += delta as a single conditional UPDATE so the
// non-negativity check and the write cannot be split across two statements.
// Returns the number of rows affected: 0 means the code does not exist or
// the delta would drive stock negative, which the caller disambiguates.
func (r *productRepo) AdjustStock(tx *gorm.DB, code string, delta int, now time.Time) (int64, error) {
	res := tx.Model(&model.Product{}).
		Where("code = ? AND stock + ? >= 0", code, delta).
		Updates(map[string]interface{}{
			"stock":        gorm.Expr("stock + ?", delta),
			"last_updated": now,
		})
	return res.RowsAffected, res.Error
}

func (r *productRepo) GetDashboardStats(lowStockThreshold int) (*DashboardStats, error) {
	var stats DashboardStats

	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).Where("stock > 0").Count(&stats.InStockCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).Where("stock < ?", lowStockThreshold).Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(stock * price), 0)").
		Scan(&stats.InventoryValue).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).
		Select("COUNT(DISTINCT category)").
		Scan(&stats.CategoryCount).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *productRepo) GetCategoryBreakdown() ([]CategoryStat, error) {
	var results []CategoryStat
	err := r.db.Model(&model.Product{}).
		Select(`category,
			COUNT(*) AS product_count,
			COALESCE(SUM(stock), 0) AS total_stock,
			COALESCE(SUM(stock * price), 0) AS stock_value`).
		Group("category").
		Order("stock_value DESC").
		Scan(&results).Error
	return results, err
}
