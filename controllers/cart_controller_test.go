package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aromanza/gateway/apiclient"
	"github.com/aromanza/gateway/cart"
	"github.com/aromanza/gateway/utils"
)

func catalogBackend(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/productos/7", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id":        7,
			"nombre":    "Eau de Rose",
			"precio":    100,
			"imagenUrl": "rose.jpg",
			"ofertas": []map[string]interface{}{
				{"idOferta": 1, "tipoDescuento": "PORCENTAJE", "valorDescuento": 50, "estado": true, "fechaFin": "2026-10-01"},
				{"idOferta": 2, "tipoDescuento": "PORCENTAJE", "valorDescuento": 10, "estado": true, "fechaFin": "2026-10-31"},
			},
		})
	})
	mux.HandleFunc("GET /api/productos/404", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"mensaje": "Producto no encontrado"})
	})
	return mux
}

func setupCart(t *testing.T, store cart.Store) (*gin.Engine, *CartController) {
	client := newBackend(t, catalogBackend(t))
	cc := &CartController{
		Catalog: apiclient.NewCatalog(client),
		Stores:  cart.Shared(store),
		Clock:   fixedClock,
	}

	r := newRouter()
	r.GET("/carrito", cc.GetCart)
	r.POST("/carrito", cc.AddToCart)
	r.PUT("/carrito/:id/incrementar", cc.IncrementItem)
	r.PUT("/carrito/:id/decrementar", cc.DecrementItem)
	r.DELETE("/carrito/:id", cc.RemoveItem)
	r.DELETE("/carrito", cc.ClearCart)
	return r, cc
}

func cartLines(resp utils.TestResponse) []interface{} {
	return asList(utils.ResponseData(resp)["items"])
}

func cartTotals(resp utils.TestResponse) map[string]interface{} {
	return asMap(utils.ResponseData(resp)["totals"])
}

func TestCart_AddUsesOfferInEffect(t *testing.T) {
	r, _ := setupCart(t, cart.NewMemoryStore())

	resp := utils.MakeTestRequest(t, r, utils.TestRequest{
		Method: http.MethodPost, Path: "/carrito", Body: gin.H{"productoId": 7},
	})
	utils.AssertResponse(t, resp, http.StatusOK, "success")

	lines := cartLines(resp)
	require.Len(t, lines, 1)
	line := asMap(lines[0])
	assert.EqualValues(t, 7, line["productId"])
	assert.EqualValues(t, 1, line["quantity"])
	assert.EqualValues(t, 90, line["unitPriceNet"])

	totals := cartTotals(resp)
	assert.EqualValues(t, 100, totals["gross"])
	assert.EqualValues(t, 90, totals["net"])
	assert.EqualValues(t, 10, totals["discount"])
}

func TestCart_QuantityFlowAcrossRequests(t *testing.T) {
	r, _ := setupCart(t, cart.NewMemoryStore())

	first := utils.MakeTestRequest(t, r, utils.TestRequest{
		Method: http.MethodPost, Path: "/carrito", Body: gin.H{"productoId": 7},
	})
	require.Equal(t, http.StatusOK, first.StatusCode)
	cookies := sessionCookie(first)
	require.NotEmpty(t, cookies)

	steps := []struct {
		method string
		path   string
		want   float64
	}{
		{http.MethodPost, "/carrito", 2},
		{http.MethodPut, "/carrito/7/incrementar", 3},
		{http.MethodPut, "/carrito/7/decrementar", 2},
		{http.MethodPut, "/carrito/7/decrementar", 1},
		{http.MethodPut, "/carrito/7/decrementar", 1},
	}
	for _, step := range steps {
		req := utils.TestRequest{Method: step.method, Path: step.path, Cookies: cookies}
		if step.method == http.MethodPost {
			req.Body = gin.H{"productoId": 7}
		}
		resp := utils.MakeTestRequest(t, r, req)
		require.Equal(t, http.StatusOK, resp.StatusCode, "%s %s", step.method, step.path)
		lines := cartLines(resp)
		require.Len(t, lines, 1)
		assert.EqualValues(t, step.want, asMap(lines[0])["quantity"], "%s %s", step.method, step.path)
	}

	resp := utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodDelete, Path: "/carrito/7", Cookies: cookies})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, cartLines(resp))
	assert.EqualValues(t, 0, cartTotals(resp)["net"])
}

func TestCart_VisitorsDoNotShareCarts(t *testing.T) {
	r, _ := setupCart(t, cart.NewMemoryStore())

	resp := utils.MakeTestRequest(t, r, utils.TestRequest{
		Method: http.MethodPost, Path: "/carrito", Body: gin.H{"productoId": 7},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	other := utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/carrito"})
	require.Equal(t, http.StatusOK, other.StatusCode)
	assert.Empty(t, cartLines(other))
}

func TestCart_AddRejectsBadInput(t *testing.T) {
	r, _ := setupCart(t, cart.NewMemoryStore())

	resp := utils.MakeTestRequest(t, r, utils.TestRequest{
		Method: http.MethodPost, Path: "/carrito", Body: gin.H{"productoId": 0},
	})
	utils.AssertResponse(t, resp, http.StatusBadRequest, "error")

	resp = utils.MakeTestRequest(t, r, utils.TestRequest{
		Method: http.MethodPost, Path: "/carrito", Body: gin.H{"productoId": 404},
	})
	utils.AssertResponse(t, resp, http.StatusNotFound, "error")
	assert.Equal(t, "Producto no encontrado", resp.Body["message"])

	resp = utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodPut, Path: "/carrito/abc/incrementar"})
	utils.AssertResponse(t, resp, http.StatusBadRequest, "error")
}

func TestCart_StoreFailureIsUnavailable(t *testing.T) {
	r, _ := setupCart(t, brokenStore{})

	resp := utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/carrito"})
	utils.AssertResponse(t, resp, http.StatusServiceUnavailable, "error")
}
