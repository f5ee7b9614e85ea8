package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-faster/errors"

	"github.com/aromanza/gateway/apiclient"
	"github.com/aromanza/gateway/cart"
	"github.com/aromanza/gateway/config"
	"github.com/aromanza/gateway/middleware"
	"github.com/aromanza/gateway/payment"
	"github.com/aromanza/gateway/routes"
	"github.com/aromanza/gateway/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	if err := utils.InitLogger(cfg.Log.Dir, cfg.Log.Level, cfg.Log.Console); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer utils.SyncLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		utils.LogError("Server stopped: %v", err)
		utils.SyncLogger()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	client, err := apiclient.New(apiclient.Config{
		BaseURL:         cfg.API.URL,
		Timeout:         cfg.API.Timeout,
		MaxRetries:      cfg.API.MaxRetries,
		RetryInterval:   cfg.API.RetryInterval,
		BreakerFailures: cfg.API.BreakerFailures,
		BreakerOpenFor:  cfg.API.BreakerOpenFor,
	})
	if err != nil {
		return errors.Wrap(err, "create backend client")
	}

	carts, closeCarts, err := cartResolver(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCarts()

	var mailer utils.Mailer
	if cfg.Mail.Username != "" {
		mailer = utils.NewSMTPMailer(utils.EmailConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
			Inbox:    cfg.Mail.Inbox,
		})
	} else {
		utils.LogInfo("Mail is not configured, the contact form is disabled")
	}

	router := routes.SetupRouter(routes.Dependencies{
		Config:  cfg,
		Client:  client,
		Guard:   middleware.NewGuard(apiclient.NewUsers(client), []byte(cfg.Session.Secret), cfg.ProfileCacheTTL),
		Carts:   carts,
		Payment: paymentProvider(cfg, client),
		Mailer:  mailer,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		utils.LogInfo("Shutting down server, timeout %s", cfg.Graceful.ShutdownTimeout)
		if err := server.Shutdown(shutdownCtx); err != nil {
			utils.LogError("Server shutdown error: %v", err)
		}
		close(shutdownDone)
	}()

	utils.LogInfo("%s gateway listening on %s, backend %s", utils.AppName, cfg.Addr, cfg.API.URL)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}

// cartResolver opens the configured cart store. The returned func releases it.
func cartResolver(ctx context.Context, cfg *config.Config) (cart.Resolver, func(), error) {
	noop := func() {}
	switch cfg.Cart.Store {
	case config.CartStoreRedis:
		rdb, err := config.InitRedis(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, nil, err
		}
		utils.LogInfo("Carts are kept in redis")
		return cart.Shared(cart.NewRedisStore(rdb, cfg.Cart.TTL)), func() { _ = rdb.Close() }, nil
	case config.CartStorePostgres:
		db, err := config.InitDB(cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		utils.LogInfo("Carts are kept in postgres")
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return cart.Shared(cart.NewGormStore(db)), closeDB, nil
	case config.CartStoreSession:
		utils.LogInfo("Carts are kept in the session cookie")
		return cart.PerSession(), noop, nil
	default:
		utils.LogInfo("Carts are kept in memory")
		return cart.Shared(cart.NewExpiringMemoryStore(cfg.Cart.TTL)), noop, nil
	}
}

func paymentProvider(cfg *config.Config, client *apiclient.Client) payment.Provider {
	orders := apiclient.NewOrders(client)
	if cfg.Payment.Provider == config.PaymentRazorpay {
		utils.LogInfo("Checkout goes through razorpay payment links")
		return payment.NewRazorpayProvider(payment.RazorpayConfig{
			KeyID:       cfg.Payment.RazorpayKeyID,
			KeySecret:   cfg.Payment.RazorpayKeySecret,
			Currency:    cfg.Payment.RazorpayCurrency,
			CallbackURL: cfg.PublicURL + "/" + utils.APIVersion + "/pago/exito",
		}, orders)
	}
	return payment.NewBackendProvider(orders)
}
