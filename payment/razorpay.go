package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-faster/errors"
	razorpay "github.com/razorpay/razorpay-go"

	"github.com/aromanza/gateway/models"
	"github.com/aromanza/gateway/utils"
)

// LinkCreator is the part of the razorpay client used here
type LinkCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// OrderCreator places an order on the backend
type OrderCreator interface {
	Create(ctx context.Context, order models.Order) (*models.Order, error)
}

// RazorpayConfig holds the account used for payment links
type RazorpayConfig struct {
	KeyID       string
	KeySecret   string
	Currency    string
	CallbackURL string
}

// RazorpayProvider places the order on the backend and pays it through a
// razorpay payment link.
type RazorpayProvider struct {
	links    LinkCreator
	orders   OrderCreator
	currency string
	callback string
}

// NewRazorpayProvider builds a provider on the official razorpay client
func NewRazorpayProvider(cfg RazorpayConfig, orders OrderCreator) *RazorpayProvider {
	client := razorpay.NewClient(cfg.KeyID, cfg.KeySecret)
	return newRazorpayProvider(client.PaymentLink, orders, cfg)
}

func newRazorpayProvider(links LinkCreator, orders OrderCreator, cfg RazorpayConfig) *RazorpayProvider {
	currency := cfg.Currency
	if currency == "" {
		currency = "INR"
	}
	return &RazorpayProvider{
		links:    links,
		orders:   orders,
		currency: currency,
		callback: cfg.CallbackURL,
	}
}

func (p *RazorpayProvider) Name() string { return "razorpay" }

func (p *RazorpayProvider) Start(ctx context.Context, checkout Checkout) (*models.PaymentPreference, error) {
	if !checkout.Total.IsPositive() {
		return nil, utils.BadRequestError(utils.ErrEmptyCart, nil)
	}

	order, err := p.orders.Create(ctx, models.Order{
		Total:   checkout.Total,
		Status:  models.OrderStatusPending,
		Details: checkout.Details,
	})
	if err != nil {
		return nil, err
	}

	// amount is in the currency's smallest unit
	amount := checkout.Total.Shift(2).Round(0).IntPart()
	data := map[string]interface{}{
		"amount":       amount,
		"currency":     p.currency,
		"reference_id": "pedido_" + strconv.FormatInt(order.ID, 10),
		"description":  fmt.Sprintf("%s pedido #%d", utils.AppName, order.ID),
		"notes": map[string]interface{}{
			"pedido_id": order.ID,
		},
	}
	if checkout.Customer != nil {
		data["customer"] = map[string]interface{}{
			"name":  checkout.Customer.Name,
			"email": checkout.Customer.Email,
		}
	}
	if p.callback != "" {
		data["callback_url"] = p.callback
		data["callback_method"] = "get"
	}

	link, err := p.links.Create(data, nil)
	if err != nil {
		utils.LogError("Failed to create razorpay payment link for order %d: %v", order.ID, err)
		return nil, utils.BadGatewayError("No se pudo iniciar el pago", err)
	}
	shortURL, _ := link["short_url"].(string)
	if shortURL == "" {
		return nil, utils.BadGatewayError("No se pudo iniciar el pago", errors.New("payment link without short_url"))
	}

	utils.LogInfo("Razorpay payment link %v created for order %d", link["id"], order.ID)
	return &models.PaymentPreference{OrderID: order.ID, InitPoint: shortURL}, nil
}
