package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one product in a visitor's cart
type CartLine struct {
	ProductID      int64           `json:"productId"`
	Name           string          `json:"name"`
	UnitPriceGross decimal.Decimal `json:"unitPriceGross"`
	UnitPriceNet   decimal.Decimal `json:"unitPriceNet"`
	ImageURL       string          `json:"imageUrl"`
	Quantity       int             `json:"quantity"`
}

// CartTotals are the aggregate amounts of a cart
type CartTotals struct {
	Gross    decimal.Decimal `json:"gross"`
	Net      decimal.Decimal `json:"net"`
	Discount decimal.Decimal `json:"discount"`
	Items    int             `json:"items"`
}

// CartSnapshot is the persisted form of a cart when it is kept in postgres
type CartSnapshot struct {
	VisitorID string    `gorm:"primaryKey;size:64"`
	Payload   string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName pins the table name
func (CartSnapshot) TableName() string {
	return "cart_snapshots"
}
