package model

import "time"

// Sale is an append-only ledger entry. Rows are never updated or deleted.
// ProductCode is a soft reference: deleting a product leaves its sales in
// place, so the code may no longer resolve to a live catalog entry.
type Sale struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductCode string    `gorm:"type:text;not null;index" json:"product_code"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	TotalPrice  float64   `gorm:"type:real;not null" json:"total_price"` // quantity x price at sale time, never recomputed
	SaleDate    time.Time `gorm:"column:sale_date" json:"sale_date"`
}

func (Sale) TableName() string {
	return "sales"
}
