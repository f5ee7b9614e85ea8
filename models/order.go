package models

import (
	"github.com/shopspring/decimal"
)

// Order status constants
const (
	OrderStatusPending   = "PENDIENTE"
	OrderStatusPaid      = "PAGADO"
	OrderStatusShipped   = "ENVIADO"
	OrderStatusDelivered = "ENTREGADO"
	OrderStatusCancelled = "CANCELADO"
)

// OrderStatuses lists the states an admin can move an order to
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ValidOrderStatus reports whether s is a known order state
func ValidOrderStatus(s string) bool {
	for _, st := range OrderStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// OrderDetail is one line of an order sent to the backend
type OrderDetail struct {
	ProductID int64           `json:"productoId"`
	Quantity  int             `json:"cantidad"`
	Price     decimal.Decimal `json:"precio"`
}

// Order (pedido) as listed in the admin dashboard
type Order struct {
	ID       int64           `json:"id"`
	Customer string          `json:"cliente"`
	Total    decimal.Decimal `json:"total"`
	Status   string          `json:"estado"`
	Date     Date            `json:"fecha"`
	Details  []OrderDetail   `json:"detalles,omitempty"`
}

// OrderStatusUpdate is the admin payload changing an order state
type OrderStatusUpdate struct {
	Status string `json:"estado" binding:"required"`
}

// CheckoutRequest asks the backend to create an order and a payment preference
type CheckoutRequest struct {
	Details []OrderDetail `json:"detalles"`
}

// PaymentPreference is the backend answer to a checkout: the provider-hosted
// URL the browser must be sent to.
type PaymentPreference struct {
	OrderID   int64  `json:"pedidoId,omitempty"`
	InitPoint string `json:"init_point"`
}

// PaymentStatus is the state of an order's payment as seen by the backend
type PaymentStatus struct {
	OrderID int64           `json:"id"`
	Status  string          `json:"estado"`
	Payment string          `json:"estadoPago,omitempty"`
	Total   decimal.Decimal `json:"total"`
}
