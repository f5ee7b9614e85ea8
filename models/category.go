package models

import (
	"strings"
)

// Category represents a product category
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
}

// Fragrance is a scent family products can be tagged with
type Fragrance struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

// Attribute is a named attribute products can carry
type Attribute struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"nombre"`
}

// Normalize trims the names the admin typed
func (c *Category) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
