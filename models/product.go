package models

import (
	"github.com/shopspring/decimal"
)

// ProductAttribute is a free-form name/value pair shown on the product page
type ProductAttribute struct {
	Name  string `json:"nombre"`
	Value string `json:"valor"`
}

// Product represents a fragrance product in the catalog
type Product struct {
	ID             int64              `json:"id"`
	Name           string             `json:"nombre"`
	Description    string             `json:"descripcion"`
	Price          decimal.Decimal    `json:"precio"`
	WholesalePrice decimal.Decimal    `json:"precioMayorista"`
	FinalPrice     decimal.Decimal    `json:"precioFinal"`
	Stock          int                `json:"stock"`
	ImageURL       string             `json:"imagenUrl"`
	CategoryID     int64              `json:"categoriaId"`
	CategoryName   string             `json:"categoriaNombre,omitempty"`
	Active         bool               `json:"activo"`
	Featured       bool               `json:"destacado"`
	Fragrances     []string           `json:"fragancias"`
	Attributes     []ProductAttribute `json:"atributos"`
	Offers         []Offer            `json:"ofertas"`
}

// HasFragrance reports whether the product carries the named fragrance,
// ignoring case.
func (p *Product) HasFragrance(name string) bool {
	for _, f := range p.Fragrances {
		if equalFold(f, name) {
			return true
		}
	}
	return false
}

// ProductPage is one page of the catalog summary listing
type ProductPage struct {
	Content []Product `json:"content"`
	Last    bool      `json:"last"`
	Number  int       `json:"number"`
	Size    int       `json:"size"`
}

// FeaturedProduct is the reduced shape of the home page highlights
type FeaturedProduct struct {
	ID          int64           `json:"id"`
	Name        string          `json:"nombre"`
	ImageURL    string          `json:"imagenUrl"`
	Price       decimal.Decimal `json:"precio"`
	Description string          `json:"descripcion,omitempty"`
}
