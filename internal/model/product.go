package model

import "time"

// Product is a catalog entry keyed by its immutable shop code (e.g. "ELE-001").
// Stock is only mutated through the conditional update in the repository,
// never by overwriting the whole row.
type Product struct {
	Code        string    `gorm:"type:text;primaryKey" json:"code"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Category    string    `gorm:"type:text;not null" json:"category"`
	Price       float64   `gorm:"type:real;not null" json:"price"`
	Stock       int       `gorm:"not null" json:"stock"`
	LastUpdated time.Time `gorm:"column:last_updated" json:"last_updated"`
}

func (Product) TableName() string {
	return "products"
}
