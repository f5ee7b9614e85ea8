package models

import (
	"github.com/shopspring/decimal"
)

// DiscountKind tells how an offer's value is applied
type DiscountKind string

// Discount kinds as named by the backend
const (
	DiscountPercentage  DiscountKind = "PORCENTAJE"
	DiscountFixedAmount DiscountKind = "MONTO"
)

// Valid reports whether k is a known discount kind
func (k DiscountKind) Valid() bool {
	return k == DiscountPercentage || k == DiscountFixedAmount
}

// Offer is a time-windowed discount on one product
type Offer struct {
	ID            int64           `json:"idOferta"`
	ProductID     int64           `json:"productoId,omitempty"`
	ProductName   string          `json:"nombreProducto,omitempty"`
	Description   string          `json:"descripcion,omitempty"`
	Kind          DiscountKind    `json:"tipoDescuento"`
	Value         decimal.Decimal `json:"valorDescuento"`
	StartDate     Date            `json:"fechaInicio"`
	EndDate       Date            `json:"fechaFin"`
	Active        bool            `json:"estado"`
	ImageURL      string          `json:"imagenUrl,omitempty"`
	Price         decimal.Decimal `json:"precio"`
	DiscountPrice decimal.Decimal `json:"precioConDescuento"`
}

// CarouselOffer is the reduced shape used by the home page carousel
type CarouselOffer struct {
	ID            int64           `json:"id"`
	Name          string          `json:"nombre"`
	ImageURL      string          `json:"imagenUrl,omitempty"`
	OriginalPrice decimal.Decimal `json:"precioOriginal"`
	DiscountPrice decimal.Decimal `json:"precioConDescuento"`
	StartDate     Date            `json:"fechaInicio"`
	EndDate       Date            `json:"fechaFin"`
}
