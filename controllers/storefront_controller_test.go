package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aromanza/gateway/apiclient"
	"github.com/aromanza/gateway/utils"
)

func storefrontBackend(t *testing.T) *apiclient.Client {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/productos/resumen", func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		switch page {
		case "0":
			writeJSON(w, http.StatusOK, gin.H{"last": false, "number": 0, "content": []gin.H{
				{"id": 1, "nombre": "Rosa Blanca", "precio": 100, "precioFinal": 80, "categoriaId": 1, "fragancias": []string{"Floral"}},
				{"id": 2, "nombre": "Limón Fresco", "precio": 40, "categoriaId": 2, "fragancias": []string{"Cítrico"}},
			}})
		default:
			writeJSON(w, http.StatusOK, gin.H{"last": true, "number": 1, "content": []gin.H{
				{"id": 3, "nombre": "Rosa Negra", "precio": 200, "precioFinal": 50, "categoriaId": 1, "fragancias": []string{"floral"}},
			}})
		}
	})
	mux.HandleFunc("GET /api/ofertas/conPrecio", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []gin.H{
			{"idOferta": 1, "tipoDescuento": "PORCENTAJE", "valorDescuento": 20, "estado": true, "precio": 50, "fechaFin": "2026-10-18"},
			{"idOferta": 2, "tipoDescuento": "PORCENTAJE", "valorDescuento": 20, "estado": true, "precio": 50, "fechaFin": "2026-10-17"},
			{"idOferta": 3, "tipoDescuento": "MONTO", "valorDescuento": 5, "estado": false, "precio": 50},
		})
	})
	mux.HandleFunc("GET /api/posts", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []gin.H{
			{"id": 1, "titulo": "Viejo", "contenido": "largo", "fecha": "2026-01-01", "category": gin.H{"id": 4, "nombre": "Guías"}},
			{"id": 2, "titulo": "Nuevo", "contenido": "largo", "fecha": "2026-09-01", "category": gin.H{"id": 5, "nombre": "Novedades"}},
		})
	})
	return newBackend(t, mux)
}

func setupStorefront(t *testing.T) *gin.Engine {
	client := storefrontBackend(t)
	products := &ProductController{Catalog: apiclient.NewCatalog(client), Clock: fixedClock}
	offers := &OfferController{Offers: apiclient.NewOffers(client), Clock: fixedClock}
	blog := &BlogController{Blog: apiclient.NewBlog(client)}

	r := newRouter()
	r.GET("/productos", products.ListProducts)
	r.GET("/productos/filtrar", products.FilterProducts)
	r.GET("/ofertas", offers.ListOffers)
	r.GET("/blog", blog.ListPosts)
	return r
}

func TestListProducts_PagesAndPrices(t *testing.T) {
	r := setupStorefront(t)

	resp := utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/productos?page=1&size=500"})
	utils.AssertResponse(t, resp, http.StatusOK, "success")

	pagination := asMap(resp.Body["pagination"])
	assert.EqualValues(t, 1, pagination["page"])
	assert.EqualValues(t, utils.MaxPageSize, pagination["size"])
	assert.Equal(t, true, pagination["last"])

	products := asList(resp.Body["data"])
	require.Len(t, products, 1)
	assert.EqualValues(t, 50, asMap(products[0])["precioFinal"])
}

func TestListProducts_KeepsBackendSalePrice(t *testing.T) {
	r := setupStorefront(t)

	resp := utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/productos?page=0"})
	utils.AssertResponse(t, resp, http.StatusOK, "success")

	products := asList(resp.Body["data"])
	require.Len(t, products, 2)
	assert.EqualValues(t, 80, asMap(products[0])["precioFinal"])
	assert.EqualValues(t, 40, asMap(products[1])["precioFinal"])
}

func TestFilterProducts(t *testing.T) {
	r := setupStorefront(t)

	tests := []struct {
		name  string
		query string
		want  []float64
	}{
		{"no filter walks every page", "", []float64{1, 2, 3}},
		{"category", "?categoria=1", []float64{1, 3}},
		{"fragrance ignores case", "?fragancia=FLORAL", []float64{1, 3}},
		{"max compares sale price", "?max=60", []float64{2, 3}},
		{"bounds use backend sale price", "?min=75&max=85", []float64{1}},
		{"min and max", "?min=45&max=120", []float64{1, 3}},
		{"name search", "?q=rosa", []float64{1, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/productos/filtrar" + tt.query})
			utils.AssertResponse(t, resp, http.StatusOK, "success")
			var ids []float64
			for _, p := range asList(resp.Body["data"]) {
				ids = append(ids, asMap(p)["id"].(float64))
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	resp := utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/productos/filtrar?min=10&max=5"})
	utils.AssertResponse(t, resp, http.StatusBadRequest, "error")
}

func TestListOffers_OnlyOffersInEffectToday(t *testing.T) {
	r := setupStorefront(t)

	resp := utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/ofertas"})
	utils.AssertResponse(t, resp, http.StatusOK, "success")

	offers := asList(resp.Body["data"])
	require.Len(t, offers, 1)
	offer := asMap(offers[0])
	assert.EqualValues(t, 1, offer["idOferta"])
	assert.EqualValues(t, 40, offer["precioConDescuento"])
}

func TestListPosts_NewestFirstWithoutContent(t *testing.T) {
	r := setupStorefront(t)

	resp := utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/blog"})
	utils.AssertResponse(t, resp, http.StatusOK, "success")
	posts := asList(resp.Body["data"])
	require.Len(t, posts, 2)
	assert.Equal(t, "Nuevo", asMap(posts[0])["titulo"])
	assert.NotContains(t, asMap(posts[0]), "contenido")

	resp = utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/blog?categoria=4"})
	posts = asList(resp.Body["data"])
	require.Len(t, posts, 1)
	assert.Equal(t, "Viejo", asMap(posts[0])["titulo"])
}

type stubMailer struct {
	sent []string
	err  error
}

func (m *stubMailer) Send(to, replyTo, subject, _ string) error {
	m.sent = append(m.sent, to+"|"+replyTo+"|"+subject)
	return m.err
}

func TestContact_SendMessage(t *testing.T) {
	mailer := &stubMailer{}
	cc := &ContactController{Mailer: mailer, Inbox: "hola@aromanza.com"}
	r := newRouter()
	r.POST("/contacto", cc.SendMessage)

	resp := utils.MakeTestRequest(t, r, utils.TestRequest{
		Method: http.MethodPost, Path: "/contacto",
		Body: gin.H{"name": "Ana", "email": "ana@example.com", "message": "¿Tienen muestras?"},
	})
	utils.AssertResponse(t, resp, http.StatusOK, "success")
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0], "hola@aromanza.com|ana@example.com|")

	resp = utils.MakeTestRequest(t, r, utils.TestRequest{
		Method: http.MethodPost, Path: "/contacto",
		Body: gin.H{"name": "Ana", "email": "no-es-un-email", "message": "hola"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Len(t, mailer.sent, 1)

	mailer.err = errors.New("smtp down")
	resp = utils.MakeTestRequest(t, r, utils.TestRequest{
		Method: http.MethodPost, Path: "/contacto",
		Body: gin.H{"name": "Ana", "email": "ana@example.com", "message": "hola"},
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestContact_WithoutMailer(t *testing.T) {
	cc := &ContactController{}
	r := newRouter()
	r.POST("/contacto", cc.SendMessage)

	resp := utils.MakeTestRequest(t, r, utils.TestRequest{
		Method: http.MethodPost, Path: "/contacto",
		Body: gin.H{"name": "Ana", "email": "ana@example.com", "message": "hola"},
	})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
