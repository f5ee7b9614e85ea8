package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aromanza/gateway/apiclient"
	"github.com/aromanza/gateway/middleware"
	"github.com/aromanza/gateway/payment"
	"github.com/aromanza/gateway/utils"
)

// Payment results the provider sends the browser back with
const (
	PaymentApproved = "exito"
	PaymentRejected = "fallo"
	PaymentPending  = "pendiente"
)

// providerParams are the query parameters the payment providers append to the
// return URL.
var providerParams = []string{
	"collection_id", "collection_status", "payment_id", "status",
	"external_reference", "payment_type", "merchant_order_id", "preference_id",
	"razorpay_payment_id", "razorpay_payment_link_id", "razorpay_payment_link_reference_id",
	"razorpay_payment_link_status",
}

// statusParams carry the provider's verdict on the payment
var statusParams = []string{"collection_status", "status", "razorpay_payment_link_status"}

// paymentSettled reports whether the provider says the payment went through
func paymentSettled(c *gin.Context) bool {
	for _, name := range statusParams {
		switch strings.ToLower(strings.TrimSpace(c.Query(name))) {
		case "approved", "paid":
			return true
		}
	}
	return false
}

// CheckoutController hands the cart over to the payment provider
type CheckoutController struct {
	Carts    *CartController
	Orders   *apiclient.Orders
	Provider payment.Provider
}

// Checkout creates the order and returns the provider URL to redirect to
func (cc *CheckoutController) Checkout(c *gin.Context) {
	user := middleware.UserFrom(c)
	utils.LogInfo("Checkout called by user %d", user.ID)

	crt, ok := cc.Carts.loadCart(c)
	if !ok {
		return
	}
	if crt.IsEmpty() {
		utils.BadRequest(c, utils.ErrEmptyCart, nil)
		return
	}

	totals := crt.Totals()
	pref, err := cc.Provider.Start(c.Request.Context(), payment.Checkout{
		Customer: user,
		Details:  crt.OrderDetails(),
		Total:    totals.Net,
	})
	if err != nil {
		utils.LogError("Checkout through %s failed for user %d: %v", cc.Provider.Name(), user.ID, err)
		upstreamError(c, "No se pudo iniciar el pago", err)
		return
	}

	utils.LogInfo("Checkout started for user %d, order %d, total %s", user.ID, pref.OrderID, totals.Net)
	utils.Success(c, "Redirigiendo al pago", gin.H{
		"init_point": pref.InitPoint,
		"pedidoId":   pref.OrderID,
		"total":      totals.Net,
	})
}

// PaymentStatus returns the payment state of one of the customer's orders
func (cc *CheckoutController) PaymentStatus(c *gin.Context) {
	id, ok := paramID(c, "id", utils.ErrInvalidID)
	if !ok {
		return
	}

	status, err := cc.Orders.PaymentStatus(c.Request.Context(), id)
	if err != nil {
		utils.LogError("Failed to fetch payment status of order %d: %v", id, err)
		upstreamError(c, "No se pudo consultar el pago", err)
		return
	}
	utils.Success(c, "Estado del pago", status)
}

// PaymentResult serves the page the provider returns the browser to. The cart
// is emptied only when the provider's status confirms the payment; an unconfirmed
// success is reported as pending.
func (cc *CheckoutController) PaymentResult(result string) gin.HandlerFunc {
	messages := map[string]string{
		PaymentApproved: "¡Pago aprobado! Gracias por tu compra.",
		PaymentRejected: "El pago fue rechazado. Podés intentarlo nuevamente.",
		PaymentPending:  "Tu pago está pendiente de confirmación.",
	}

	return func(c *gin.Context) {
		params := gin.H{}
		for _, name := range providerParams {
			if v := c.Query(name); v != "" {
				params[name] = v
			}
		}
		utils.LogInfo("Payment result %s received: %v", result, params)

		outcome := result
		if result == PaymentApproved && !paymentSettled(c) {
			utils.LogInfo("Payment success page reached without a confirmed status, keeping the cart")
			outcome = PaymentPending
		}

		if outcome == PaymentApproved {
			crt, ok := cc.Carts.loadCart(c)
			if !ok {
				return
			}
			if err := crt.Clear(c.Request.Context()); err != nil {
				utils.LogError("Failed to clear cart after payment: %v", err)
			}
		}

		c.JSON(http.StatusOK, utils.StandardResponse{
			Status:  "success",
			Message: messages[outcome],
			Data: gin.H{
				"resultado":  outcome,
				"parametros": params,
			},
		})
	}
}
