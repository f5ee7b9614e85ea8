package apiclient

import (
	"context"
	"fmt"

	"github.com/aromanza/gateway/models"
)

// Orders talks to the pedidos endpoints
type Orders struct {
	client *Client
}

func NewOrders(client *Client) *Orders {
	return &Orders{client: client}
}

// List returns every order, for the admin dashboard
func (o *Orders) List(ctx context.Context) ([]models.Order, error) {
	out := []models.Order{}
	if err := o.client.Get(ctx, "/pedidos", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus moves an order to status
func (o *Orders) UpdateStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	var out models.Order
	body := models.OrderStatusUpdate{Status: status}
	if err := o.client.Put(ctx, fmt.Sprintf("/pedidos/%d", id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckoutWithPayment creates an order and the provider payment preference
func (o *Orders) CheckoutWithPayment(ctx context.Context, details []models.OrderDetail) (*models.PaymentPreference, error) {
	var out models.PaymentPreference
	req := models.CheckoutRequest{Details: details}
	if err := o.client.Post(ctx, "/pedidos/realizarPedidoConPago", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PaymentStatus returns the payment state of an order
func (o *Orders) PaymentStatus(ctx context.Context, id int64) (*models.PaymentStatus, error) {
	var out models.PaymentStatus
	if err := o.client.Get(ctx, fmt.Sprintf("/pedidos/%d/estado-pago", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create places an order without asking the backend for a payment preference
func (o *Orders) Create(ctx context.Context, order models.Order) (*models.Order, error) {
	var out models.Order
	if err := o.client.Post(ctx, "/pedidos", order, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
