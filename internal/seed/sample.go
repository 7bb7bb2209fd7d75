package seed

import (
	"errors"
	"math/rand"
	"time"

	"go-shop-inventory/internal/model"

	"gorm.io/gorm"
)

const (
	sampleSaleCount = 100
	maxSaleQuantity = 5
	saleHistoryDays = 30
)

// Catalog is the fixed demo product set. Codes already present in the
// database are skipped on load, so loading twice never duplicates entries.
var Catalog = []model.Product{
	{Code: "ELE-001", Name: "LED Bulb 60W", Category: "Lighting", Price: 4.99, Stock: 150},
	{Code: "ELE-002", Name: "LED Bulb 100W", Category: "Lighting", Price: 6.99, Stock: 120},
	{Code: "ELE-003", Name: "Power Drill 800W", Category: "Power Tools", Price: 89.99, Stock: 25},
	{Code: "ELE-004", Name: "Circular Saw", Category: "Power Tools", Price: 129.99, Stock: 15},
	{Code: "ELE-005", Name: "HDMI Cable 2m", Category: "Cables", Price: 12.99, Stock: 200},
	{Code: "ELE-006", Name: "USB-C Cable 1m", Category: "Cables", Price: 8.99, Stock: 300},
	{Code: "ELE-007", Name: "Smart Switch", Category: "Switches", Price: 24.99, Stock: 80},
	{Code: "ELE-008", Name: "Dimmer Switch", Category: "Switches", Price: 19.99, Stock: 60},
	{Code: "ELE-009", Name: "Extension Cord 5m", Category: "Other", Price: 15.99, Stock: 100},
	{Code: "ELE-010", Name: "Power Strip 6 Outlets", Category: "Other", Price: 29.99, Stock: 75},
}

// Load inserts the demo catalog (skipping existing codes) and appends
// sampleSaleCount randomized historical sales spread over the past
// saleHistoryDays days. Every call appends a fresh batch of sales; only
// the catalog part is idempotent.
func Load(db *gorm.DB, rng *rand.Rand) error {
	now := time.Now()

	for _, p := range Catalog {
		var existing model.Product
		err := db.First(&existing, "code = ?", p.Code).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		p.LastUpdated = now
		if err := db.Create(&p).Error; err != nil {
			return err
		}
	}

	for i := 0; i < sampleSaleCount; i++ {
		p := Catalog[rng.Intn(len(Catalog))]
		qty := rng.Intn(maxSaleQuantity) + 1
		sale := model.Sale{
			ProductCode: p.Code,
			Quantity:    qty,
			TotalPrice:  float64(qty) * p.Price,
			SaleDate:    now.AddDate(0, 0, -rng.Intn(saleHistoryDays+1)),
		}
		if err := db.Create(&sale).Error; err != nil {
			return err
		}
	}

	return nil
}
