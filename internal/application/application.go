package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"agromarket/internal/config"
	"agromarket/internal/infrastructure/marketapi"
	"agromarket/internal/server"
	"agromarket/pkg/application/modules"
	"agromarket/pkg/contextx"
	"agromarket/pkg/httpx"
	"agromarket/pkg/logx"
	"agromarket/pkg/middlewarex"
)

const httpServerReadHeaderTimeout = 5 * time.Second

func Run(ctx context.Context, log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	ctx = contextx.WithLogger(ctx, log)
	masker := logx.NewSensitiveDataMasker()

	// One outbound client, shared by every resource service.
	client := marketapi.NewClient(
		cfg.Backend,
		httpx.WithSensitiveDataMasker(masker),
		httpx.WithLogFieldMaxLen(cfg.Server.LogFieldMaxLen),
	)

	bidService := marketapi.NewBidService(client, cfg.Backend.CurrencyPrefix)
	allocationService := marketapi.NewAllocationService(client)

	srv := server.NewServer(
		server.NewBidServer(bidService),
		server.NewAllocationServer(allocationService),
	)

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.RequestLogging(masker, cfg.Server.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.Server.LogFieldMaxLen),
		middlewarex.Recovery,
	)
	srv.RegisterRoutes(router)

	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr:              cfg.Server.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.Server.ShutdownTimeout}.Run(ctx, g, httpServer)
	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Server.ProbeListenAddress,
	}.Run(ctx, g)
	modules.MetricServer{ListenAddress: cfg.Server.MetricsListenAddress}.Run(ctx, g)

	log.Info("application started", slog.String(logx.FieldAppName, cfg.App.Name))

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
