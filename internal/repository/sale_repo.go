package repository

import (
	"time"

	"go-shop-inventory/internal/model"

	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindRecent(limit int) ([]SaleRecord, error)
	SummaryByProduct() ([]ProductSalesSummary, error)
	GetSalesStats() (*SalesStats, error)
	CountByProduct(code string) (int64, error)
}

// SaleRecord is a ledger row joined with the product name and category at
// query time. ProductName and Category are empty when the referenced
// product has been deleted; the sale itself is always returned.
type SaleRecord struct {
	ID          uint      `json:"id"`
	ProductCode string    `json:"product_code"`
	Quantity    int       `json:"quantity"`
	TotalPrice  float64   `json:"total_price"`
	SaleDate    time.Time `json:"sale_date"`
	ProductName string    `json:"product_name"`
	Category    string    `json:"category"`
}

// ProductSalesSummary is one aggregate row per existing product, including
// products that have never sold (zero count/quantity/revenue).
type ProductSalesSummary struct {
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	TotalSalesCount int64   `json:"total_sales_count"`
	TotalQuantity   int64   `json:"total_quantity"`
	TotalRevenue    float64 `json:"total_revenue"`
}

// SalesStats is the ledger-wide overview block.
type SalesStats struct {
	TotalSales     int64   `json:"total_sales"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalUnitsSold int64   `json:"total_units_sold"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// Create takes the active *gorm.DB so a sale append can join the same
// transaction as the stock decrement it belongs to.
func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindRecent(limit int) ([]SaleRecord, error) {
	var records []SaleRecord
	err := r.db.Table("sales AS s").
		Select(`s.id, s.product_code, s.quantity, s.total_price, s.sale_date,
			COALESCE(p.name, '') AS product_name,
			COALESCE(p.category, '') AS category`).
		Joins("LEFT JOIN products p ON p.code = s.product_code").
		Order("s.sale_date DESC").
		Limit(limit).
		Scan(&records).Error
	return records, err
}

func (r *saleRepo) SummaryByProduct() ([]ProductSalesSummary, error) {
	var rows []ProductSalesSummary
	err := r.db.Table("products AS p").
		Select(`p.code, p.name, p.category,
			COUNT(s.id) AS total_sales_count,
			COALESCE(SUM(s.quantity), 0) AS total_quantity,
			COALESCE(SUM(s.total_price), 0) AS total_revenue`).
		Joins("LEFT JOIN sales s ON s.product_code = p.code").
		Group("p.code, p.name, p.category").
		Order("total_revenue DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *saleRepo) GetSalesStats() (*SalesStats, error) {
	var stats SalesStats

	if err := r.db.Model(&model.Sale{}).Count(&stats.TotalSales).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Sale{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Sale{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&stats.TotalUnitsSold).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *saleRepo) CountByProduct(code string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Sale{}).Where("product_code = ?", code).Count(&count).Error
	return count, err
}
