package service

import (
	"go-shop-inventory/internal/repository"
)

type DashboardService interface {
	GetStats() (*repository.DashboardStats, error)
	GetCategoryBreakdown() ([]repository.CategoryStat, error)
	GetSalesStats() (*repository.SalesStats, error)
}

type dashboardService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
}

func NewDashboardService(pRepo repository.ProductRepository, sRepo repository.SaleRepository) DashboardService {
	return &dashboardService{productRepo: pRepo, saleRepo: sRepo}
}

func (s *dashboardService) GetStats() (*repository.DashboardStats, error) {
	return s.productRepo.GetDashboardStats(DefaultLowStockThreshold)
}

func (s *dashboardService) GetCategoryBreakdown() ([]repository.CategoryStat, error) {
	return s.productRepo.GetCategoryBreakdown()
}

func (s *dashboardService) GetSalesStats() (*repository.SalesStats, error) {
	return s.saleRepo.GetSalesStats()
}
