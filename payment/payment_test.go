package payment

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aromanza/gateway/models"
	"github.com/aromanza/gateway/utils"
)

type stubPlacer struct {
	pref    *models.PaymentPreference
	err     error
	details []models.OrderDetail
}

func (s *stubPlacer) CheckoutWithPayment(_ context.Context, details []models.OrderDetail) (*models.PaymentPreference, error) {
	s.details = details
	return s.pref, s.err
}

type stubOrders struct {
	created models.Order
	err     error
}

func (s *stubOrders) Create(_ context.Context, order models.Order) (*models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = order
	order.ID = 55
	return &order, nil
}

type stubLinks struct {
	data  map[string]interface{}
	reply map[string]interface{}
	err   error
}

func (s *stubLinks) Create(data map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	s.data = data
	return s.reply, s.err
}

var details = []models.OrderDetail{{ProductID: 1, Quantity: 2, Price: decimal.NewFromInt(90)}}

func TestBackendProvider(t *testing.T) {
	placer := &stubPlacer{pref: &models.PaymentPreference{InitPoint: "https://pay.example.com/p/1"}}
	p := NewBackendProvider(placer)

	pref, err := p.Start(context.Background(), Checkout{Details: details, Total: decimal.NewFromInt(180)})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/p/1", pref.InitPoint)
	assert.Equal(t, details, placer.details)
}

func TestBackendProvider_MissingInitPoint(t *testing.T) {
	p := NewBackendProvider(&stubPlacer{pref: &models.PaymentPreference{}})

	_, err := p.Start(context.Background(), Checkout{Details: details})
	assert.Error(t, err)
}

func TestRazorpayProvider_CreatesLinkForOrder(t *testing.T) {
	orders := &stubOrders{}
	links := &stubLinks{reply: map[string]interface{}{"id": "plink_1", "short_url": "https://rzp.io/i/abc"}}
	p := newRazorpayProvider(links, orders, RazorpayConfig{CallbackURL: "https://shop.example.com/v1/pago/exito"})

	pref, err := p.Start(context.Background(), Checkout{
		Customer: &models.User{Name: "Ana", Email: "ana@example.com"},
		Details:  details,
		Total:    decimal.RequireFromString("180.50"),
	})
	require.NoError(t, err)

	assert.Equal(t, "https://rzp.io/i/abc", pref.InitPoint)
	assert.Equal(t, int64(55), pref.OrderID)
	assert.Equal(t, models.OrderStatusPending, orders.created.Status)
	assert.Equal(t, int64(18050), links.data["amount"])
	assert.Equal(t, "INR", links.data["currency"])
	assert.Equal(t, "pedido_55", links.data["reference_id"])
	assert.Equal(t, "https://shop.example.com/v1/pago/exito", links.data["callback_url"])
}

func TestRazorpayProvider_LinkFailure(t *testing.T) {
	links := &stubLinks{err: errors.New("razorpay down")}
	p := newRazorpayProvider(links, &stubOrders{}, RazorpayConfig{})

	_, err := p.Start(context.Background(), Checkout{Details: details, Total: decimal.NewFromInt(10)})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, utils.GetAppError(err).Code)
}

func TestRazorpayProvider_ZeroTotal(t *testing.T) {
	orders := &stubOrders{}
	p := newRazorpayProvider(&stubLinks{}, orders, RazorpayConfig{})

	_, err := p.Start(context.Background(), Checkout{})
	require.Error(t, err)
	assert.True(t, utils.IsBadRequestError(err))
	assert.Zero(t, orders.created.ID)
}
