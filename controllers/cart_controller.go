package controllers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aromanza/gateway/apiclient"
	"github.com/aromanza/gateway/cart"
	"github.com/aromanza/gateway/utils"
)

const visitorKey = "visitor_id"

// AddToCartRequest is the body of POST /carrito/agregar
type AddToCartRequest struct {
	ProductID int64 `json:"productoId" binding:"required,gt=0"`
}

// CartController serves the visitor's cart
type CartController struct {
	Catalog *apiclient.Catalog
	Stores  cart.Resolver
	Clock   Clock
}

// visitorID returns the id the visitor's cart is stored under, minting one on
// the first visit.
func visitorID(c *gin.Context) (string, error) {
	session := sessions.Default(c)
	if id, ok := session.Get(visitorKey).(string); ok && id != "" {
		return id, nil
	}
	id := uuid.NewString()
	session.Set(visitorKey, id)
	return id, session.Save()
}

// loadCart resolves the visitor's cart, answering 503 when the store is down
func (cc *CartController) loadCart(c *gin.Context) (*cart.Cart, bool) {
	id, err := visitorID(c)
	if err != nil {
		utils.LogError("Failed to save visitor session: %v", err)
		utils.InternalServerError(c, utils.ErrInternalServer, nil)
		return nil, false
	}

	crt, err := cart.Load(c.Request.Context(), cc.Stores(c), id, cart.WithClock(cc.Clock.now))
	if err != nil {
		utils.LogError("Failed to load cart of visitor %s: %v", id, err)
		utils.Error(c, http.StatusServiceUnavailable, "No se pudo cargar el carrito", nil)
		return nil, false
	}
	return crt, true
}

func cartView(crt *cart.Cart) gin.H {
	return gin.H{
		"items":  crt.Lines(),
		"totals": crt.Totals(),
	}
}

// mutated answers with the cart after a mutation, or with the store failure
func mutated(c *gin.Context, crt *cart.Cart, err error, message string) {
	if err != nil {
		utils.LogError("Failed to persist cart of visitor %s: %v", crt.VisitorID(), err)
		utils.Error(c, http.StatusServiceUnavailable, "No se pudo guardar el carrito", nil)
		return
	}
	utils.Success(c, message, cartView(crt))
}

// GetCart returns the lines and totals of the cart
func (cc *CartController) GetCart(c *gin.Context) {
	crt, ok := cc.loadCart(c)
	if !ok {
		return
	}
	utils.Success(c, "Carrito obtenido", cartView(crt))
}

// AddToCart adds one unit of a product, priced with the offer in effect now
func (cc *CartController) AddToCart(c *gin.Context) {
	utils.LogInfo("AddToCart called")
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid add to cart request: %v", err)
		utils.BadRequest(c, utils.ErrInvalidProductID, err.Error())
		return
	}

	product, err := cc.Catalog.Product(c.Request.Context(), req.ProductID)
	if err != nil {
		utils.LogError("Failed to fetch product %d for cart: %v", req.ProductID, err)
		upstreamError(c, "No se pudo cargar el producto", err)
		return
	}

	crt, ok := cc.loadCart(c)
	if !ok {
		return
	}
	err = crt.Add(c.Request.Context(), *product)
	utils.LogDebug("Product %d added to cart of visitor %s", product.ID, crt.VisitorID())
	mutated(c, crt, err, "Producto agregado al carrito")
}

// IncrementItem adds one unit of :id
func (cc *CartController) IncrementItem(c *gin.Context) {
	id, ok := paramID(c, "id", utils.ErrInvalidProductID)
	if !ok {
		return
	}
	crt, ok := cc.loadCart(c)
	if !ok {
		return
	}
	mutated(c, crt, crt.Increment(c.Request.Context(), id), "Cantidad actualizada")
}

// DecrementItem removes one unit of :id, keeping at least one
func (cc *CartController) DecrementItem(c *gin.Context) {
	id, ok := paramID(c, "id", utils.ErrInvalidProductID)
	if !ok {
		return
	}
	crt, ok := cc.loadCart(c)
	if !ok {
		return
	}
	mutated(c, crt, crt.Decrement(c.Request.Context(), id), "Cantidad actualizada")
}

// RemoveItem drops the line of :id
func (cc *CartController) RemoveItem(c *gin.Context) {
	id, ok := paramID(c, "id", utils.ErrInvalidProductID)
	if !ok {
		return
	}
	crt, ok := cc.loadCart(c)
	if !ok {
		return
	}
	mutated(c, crt, crt.Remove(c.Request.Context(), id), "Producto eliminado del carrito")
}

// ClearCart empties the cart
func (cc *CartController) ClearCart(c *gin.Context) {
	crt, ok := cc.loadCart(c)
	if !ok {
		return
	}
	mutated(c, crt, crt.Clear(c.Request.Context()), "Carrito vaciado")
}
