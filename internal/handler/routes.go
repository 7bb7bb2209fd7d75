package handler

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the API surface under /api/v1.
func RegisterRoutes(app *fiber.App, inv *InventoryHandler, dash *DashboardHandler) {
	api := app.Group("/api/v1")

	api.Get("/products", inv.GetProducts)
	api.Post("/products", inv.CreateProduct)
	api.Get("/products/low-stock", inv.GetLowStock)
	api.Get("/products/:code", inv.GetProduct)
	api.Delete("/products/:code", inv.DeleteProduct)
	api.Post("/products/:code/stock", inv.AdjustStock)
	api.Post("/products/:code/sell", inv.Sell)

	api.Get("/sales", inv.GetSales)
	api.Post("/sales", inv.RecordSale)
	api.Get("/sales/summary", inv.GetSalesSummary)

	api.Get("/dashboard/stats", dash.GetStats)
	api.Get("/dashboard/categories", dash.GetCategoryBreakdown)
	api.Get("/dashboard/sales", dash.GetSalesStats)

	api.Post("/sample-data", inv.LoadSampleData)
}
