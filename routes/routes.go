package routes

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/aromanza/gateway/apiclient"
	"github.com/aromanza/gateway/cart"
	"github.com/aromanza/gateway/config"
	"github.com/aromanza/gateway/controllers"
	"github.com/aromanza/gateway/middleware"
	"github.com/aromanza/gateway/payment"
	"github.com/aromanza/gateway/utils"
)

// Dependencies are the services the handlers are built from
type Dependencies struct {
	Config  *config.Config
	Client  *apiclient.Client
	Guard   *middleware.Guard
	Carts   cart.Resolver
	Payment payment.Provider
	Mailer  utils.Mailer
	Clock   controllers.Clock
}

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.CORSMiddleware(cfg.CORS.Origins))
	router.Use(utils.SecurityHeadersMiddleware())

	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		MaxAge:   int(cfg.Session.MaxAge.Seconds()),
		Path:     "/",
		Secure:   cfg.Session.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(utils.SessionName, store))
	router.Use(apiclient.ForwardCredentials(utils.SessionName))

	router.GET("/healthz", controllers.Healthz)

	api := router.Group("/" + utils.APIVersion)
	{
		initUserRoutes(api, deps)
		initAdminRoutes(api, deps)
	}

	return router
}
