package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/aromanza/gateway/apiclient"
	"github.com/aromanza/gateway/controllers"
	"github.com/aromanza/gateway/crud"
	"github.com/aromanza/gateway/models"
)

// initAdminRoutes initializes the dashboard routes, all behind the admin guard
func initAdminRoutes(router *gin.RouterGroup, deps Dependencies) {
	client := deps.Client
	offers := &controllers.OfferController{Offers: apiclient.NewOffers(client), Clock: deps.Clock}
	orders := &controllers.AdminOrderController{Orders: apiclient.NewOrders(client), Clock: deps.Clock}

	admin := router.Group("/admin")
	admin.Use(deps.Guard.RequireAdmin())
	{
		registerCRUD(admin, crud.NewCollection(crud.Users,
			apiclient.NewResource[models.UserPayload](client, apiclient.UserPaths)))
		registerCRUD(admin, crud.NewCollection(crud.Products,
			apiclient.NewResource[models.Product](client, apiclient.ProductPaths)))
		registerCRUD(admin, crud.NewCollection(crud.Categories,
			apiclient.NewResource[models.Category](client, apiclient.CategoryPaths)))
		registerCRUD(admin, crud.NewCollection(crud.Fragrances,
			apiclient.NewResource[models.Fragrance](client, apiclient.FragrancePaths)))
		registerCRUD(admin, crud.NewCollection(crud.Attributes,
			apiclient.NewResource[models.Attribute](client, apiclient.AttributePaths)))
		registerCRUD(admin, crud.NewCollection(crud.Posts,
			apiclient.NewResource[models.Post](client, apiclient.PostPaths)))
		registerCRUD(admin, crud.NewCollection(crud.PostCategories,
			apiclient.NewResource[models.PostCategory](client, apiclient.PostCategoryPaths)))

		// Offers
		admin.GET("/ofertas/estado", offers.OfferStatus)
		registerCRUD(admin, crud.NewCollection(crud.Offers,
			apiclient.NewResource[models.Offer](client, apiclient.OfferPaths)))

		// Orders
		admin.GET("/pedidos", orders.ListOrders)
		admin.GET("/pedidos/export", orders.ExportOrders)
		admin.PUT("/pedidos/:id/estado", orders.UpdateOrderStatus)
	}
}

// registerCRUD mounts the four admin operations of one entity under its name
func registerCRUD[T any](router *gin.RouterGroup, col *crud.Collection[T]) {
	h := controllers.NewAdminCRUD(col)
	group := router.Group("/" + h.Name())
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}
