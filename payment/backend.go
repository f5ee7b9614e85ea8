package payment

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/aromanza/gateway/models"
)

// OrderPlacer creates an order together with its payment preference
type OrderPlacer interface {
	CheckoutWithPayment(ctx context.Context, details []models.OrderDetail) (*models.PaymentPreference, error)
}

// BackendProvider lets the backend create the order and the provider
// preference in one call.
type BackendProvider struct {
	orders OrderPlacer
}

func NewBackendProvider(orders OrderPlacer) *BackendProvider {
	return &BackendProvider{orders: orders}
}

func (p *BackendProvider) Name() string { return "backend" }

func (p *BackendProvider) Start(ctx context.Context, checkout Checkout) (*models.PaymentPreference, error) {
	pref, err := p.orders.CheckoutWithPayment(ctx, checkout.Details)
	if err != nil {
		return nil, err
	}
	if pref.InitPoint == "" {
		return nil, errors.New("backend returned no init_point")
	}
	return pref, nil
}
