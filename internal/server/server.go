// Package server boots the Waroeng POS application: config, storage,
// database, cache, queue, scheduler, gRPC health endpoint and the HTTP
// server with its full middleware stack.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"waroengpos/app/jobs"
	"waroengpos/app/listeners"
	"waroengpos/app/routes"
	"waroengpos/app/services"
	"waroengpos/config"
	"waroengpos/pkg/cache"
	"waroengpos/pkg/cart"
	"waroengpos/pkg/database"
	grpcserver "waroengpos/pkg/grpc"
	"waroengpos/pkg/logger"
	"waroengpos/pkg/metrics"
	"waroengpos/pkg/middleware"
	"waroengpos/pkg/migration"
	"waroengpos/pkg/queue"
	"waroengpos/pkg/reqid"
	"waroengpos/pkg/router"
	"waroengpos/pkg/schedule"
	"waroengpos/pkg/session"
	"waroengpos/pkg/storage"
	"waroengpos/pkg/workerpool"
	"waroengpos/pkg/ws"

	// Register schema migrations.
	_ "waroengpos/database/migrations"
)

const (
	queueWorkers   = 5
	eventPoolSize  = 8
	cartSessionTTL = 12 * time.Hour
	shutdownGrace  = 10 * time.Second
)

// Start boots every subsystem and blocks until SIGINT/SIGTERM, then shuts
// down gracefully.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Audit trail: mirror warn/error logs to Mongo when configured.
	if uri := config.MongoURI(); uri != "" {
		audit, err := logger.EnableAudit(uri)
		if err != nil {
			logger.Warn("server: audit log disabled", "error", err)
		} else {
			defer audit.Close()
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("server: redis unavailable, caching disabled", "error", err)
	}
	storage.Connect()

	if err := migration.New(database.DB).Run(); err != nil {
		return err
	}

	// Background jobs ride Redis when it is up, the in-process queue
	// otherwise.
	jobs.RegisterJobs()
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	} else {
		queue.SetDriver(queue.NewMemoryDriver())
	}
	queue.StartWorkers(ctx, queueWorkers)

	carts := cart.NewStore(cartSessionTTL)
	feed := ws.NewHub()
	go feed.Run()

	pool := workerpool.New(eventPoolSize)
	defer pool.Shutdown()
	listeners.Register(feed, pool)

	orders := services.NewOrderService()
	schedule.EveryMinute().
		Name("orders.expire-stale").
		WithoutOverlapping().
		Run(orders.ExpireStaleOrders)
	schedule.Every(10).Minutes().
		Name("carts.sweep").
		Run(func() {
			if n := carts.Sweep(); n > 0 {
				logger.Info("cart sweep", "evicted", n)
			}
		})
	go schedule.Start(ctx)

	grpcSrv, _, err := grpcserver.Start(config.GRPCPort())
	if err != nil {
		logger.Warn("server: grpc health endpoint disabled", "error", err)
	} else {
		defer grpcserver.Stop(grpcSrv)
	}

	r := router.New()
	limiter := middleware.NewRateLimiter(50, 100)
	r.Use(
		metrics.Middleware,
		middleware.Recover,
		reqid.Middleware(),
		middleware.Logger,
		session.Middleware,
		middleware.CORS,
		limiter.Middleware,
	)

	if config.StorageDefault() == "local" {
		fs := http.StripPrefix("/storage/", http.FileServer(http.Dir(config.StorageLocalRoot())))
		r.HandleFunc("/storage/*", fs.ServeHTTP)
	}

	routes.RegisterAPI(r, carts, feed)

	addr := ":" + strings.TrimPrefix(config.AppPort(), ":")
	srv := &http.Server{
		Addr:         addr,
		Handler:      r.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // long enough for the payment-status stream
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("waroengpos listening", "addr", addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
