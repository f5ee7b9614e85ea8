// Package payment hands a checkout over to a payment provider and returns the
// provider-hosted URL the browser is sent to.
package payment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/aromanza/gateway/models"
)

// Checkout is what the storefront knows when the customer pays
type Checkout struct {
	Customer *models.User
	Details  []models.OrderDetail
	Total    decimal.Decimal
}

// Provider starts a payment and returns where to send the browser
type Provider interface {
	Name() string
	Start(ctx context.Context, checkout Checkout) (*models.PaymentPreference, error)
}
