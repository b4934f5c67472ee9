// Package app wires the storefront together: catalogs, engines, HTTP server,
// probes, and graceful shutdown.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/bellavista/storefront/db"
	"github.com/bellavista/storefront/internal/domain/basket"
	"github.com/bellavista/storefront/internal/domain/checkout"
	"github.com/bellavista/storefront/internal/domain/reservation"
	"github.com/bellavista/storefront/internal/handler"
	"github.com/bellavista/storefront/internal/notify"
	"github.com/bellavista/storefront/internal/storage/memory"
	"github.com/bellavista/storefront/pkg/health"
	"github.com/bellavista/storefront/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// Embedded catalogs.
	menuEntries, wineEntries, err := db.LoadCatalogs()
	if err != nil {
		return errors.Wrap(err, "load catalogs")
	}
	menuCatalog := memory.NewCatalog(menuEntries)
	wineCatalog := memory.NewCatalog(wineEntries)
	lg.Info("Catalogs loaded",
		zap.Int("menu_entries", len(menuEntries)),
		zap.Int("wine_entries", len(wineEntries)),
	)

	pricingCfg, err := cfg.Pricing.Resolve()
	if err != nil {
		return errors.Wrap(err, "resolve pricing")
	}

	// Stores and extension points.
	orderStore := memory.NewOrderStore()
	reservationStore := memory.NewReservationStore()
	notifier := notify.NewLogNotifier(lg.Named("notify"))

	// Engines. One set for the whole process; there is no session layer.
	basketEngine := basket.New(menuCatalog)
	checkoutFlow := checkout.NewFlow(basketEngine, pricingCfg, orderStore, checkout.NopPayments{}, notifier)
	reservationFlow := reservation.NewFlow(reservationStore, notifier,
		reservation.WithSubmitDelay(cfg.Reservation.SubmitDelay))

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.AddReadinessCheck("catalog", time.Second, func(ctx context.Context) error {
		if _, err := menuCatalog.List(ctx); err != nil {
			return err
		}
		_, err := wineCatalog.List(ctx)
		return err
	})
	healthSvc.SetReady(true)

	api := handler.New(handler.Options{
		Menu:           menuCatalog,
		Wines:          wineCatalog,
		MenuCategories: db.MenuCategories,
		WineCategories: db.WineCategories,
		Basket:         basketEngine,
		Pricing:        pricingCfg,
		Checkout:       checkoutFlow,
		Reservation:    reservationFlow,
		ImageBaseURL:   cfg.ImageBaseURL,
	})

	// Mux: health endpoints + API routes on one server.
	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/api/", http.StripPrefix("/api", api.Routes()))

	instrumented := otelhttp.NewHandler(mux, "storefront",
		otelhttp.WithTracerProvider(m.TracerProvider()),
		otelhttp.WithMeterProvider(m.MeterProvider()),
	)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(instrumented,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins: cfg.CORS.Origins,
				AllowHeaders: []string{"Content-Type"},
				MaxAge:       86400,
			}),
			httpmiddleware.RateLimit(httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
