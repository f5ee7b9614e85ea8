package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/aromanza/gateway/apiclient"
	"github.com/aromanza/gateway/controllers"
)

// initUserRoutes initializes the storefront and account routes
func initUserRoutes(router *gin.RouterGroup, deps Dependencies) {
	catalog := apiclient.NewCatalog(deps.Client)
	orders := apiclient.NewOrders(deps.Client)

	products := &controllers.ProductController{Catalog: catalog, Clock: deps.Clock}
	offers := &controllers.OfferController{Offers: apiclient.NewOffers(deps.Client), Clock: deps.Clock}
	blog := &controllers.BlogController{Blog: apiclient.NewBlog(deps.Client)}
	carts := &controllers.CartController{Catalog: catalog, Stores: deps.Carts, Clock: deps.Clock}
	checkout := &controllers.CheckoutController{Carts: carts, Orders: orders, Provider: deps.Payment}
	auth := &controllers.AuthController{Users: apiclient.NewUsers(deps.Client), Guard: deps.Guard}
	contact := &controllers.ContactController{Mailer: deps.Mailer, Inbox: deps.Config.Mail.Inbox}

	// Catalog
	router.GET("/productos", products.ListProducts)
	router.GET("/productos/filtrar", products.FilterProducts)
	router.GET("/productos/filtros", products.ListFilters)
	router.GET("/productos/destacados/:categoriaId", products.FeaturedProducts)
	router.GET("/productos/:id", products.GetProduct)
	router.GET("/productos/:id/relacionados", products.RelatedProducts)

	// Offers
	router.GET("/ofertas", offers.ListOffers)
	router.GET("/ofertas/carrusel", offers.Carousel)

	// Blog
	router.GET("/blog/posts", blog.ListPosts)
	router.GET("/blog/categorias", blog.ListPostCategories)
	router.GET("/blog/posts/:id", blog.GetPost)

	// Cart
	cartGroup := router.Group("/carrito")
	{
		cartGroup.GET("", carts.GetCart)
		cartGroup.POST("/agregar", carts.AddToCart)
		cartGroup.POST("/:id/incrementar", carts.IncrementItem)
		cartGroup.POST("/:id/decrementar", carts.DecrementItem)
		cartGroup.DELETE("/:id", carts.RemoveItem)
		cartGroup.DELETE("", carts.ClearCart)
	}

	// Account
	router.POST("/login", auth.Login)
	router.POST("/logout", auth.Logout)
	router.POST("/registro", auth.Register)
	router.POST("/forgot-password", auth.ForgotPassword)
	router.POST("/reset-password", auth.ResetPassword)
	router.POST("/contacto", contact.SendMessage)

	// Payment result pages the provider redirects back to
	router.GET("/pago/exito", checkout.PaymentResult(controllers.PaymentApproved))
	router.GET("/pago/fallo", checkout.PaymentResult(controllers.PaymentRejected))
	router.GET("/pago/pendiente", checkout.PaymentResult(controllers.PaymentPending))

	// Signed-in routes
	user := router.Group("")
	user.Use(deps.Guard.RequireUser())
	{
		user.GET("/perfil", auth.Profile)
		user.PUT("/perfil", auth.UpdateProfile)
		user.POST("/checkout", checkout.Checkout)
		user.GET("/pedidos/:id/estado-pago", checkout.PaymentStatus)
	}
}
