package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	application "orderflow/internal/app"
	paymenthandler "orderflow/internal/handlers/kafka-consumer/payment_completed"
	"orderflow/internal/handlers/rest/healthcheck_head"
	"orderflow/internal/handlers/rest/order_claim_post"
	"orderflow/internal/handlers/rest/order_get"
	"orderflow/internal/handlers/rest/order_post"
	"orderflow/internal/handlers/rest/order_transition_post"
	"orderflow/internal/handlers/rest/orders_ready_get"
	"orderflow/internal/handlers/rest/ping_get"
	"orderflow/internal/handlers/rest/ws_get"
	"orderflow/internal/pkg/config"
	"orderflow/internal/pkg/dotenv"
	"orderflow/internal/pkg/identity"
	"orderflow/internal/pkg/kafka"
	metrics_system "orderflow/internal/pkg/metrics"
	"orderflow/internal/pkg/middlewares/graceful_shutdown"
	"orderflow/internal/pkg/middlewares/metrics"
	"orderflow/internal/pkg/middlewares/rate_limiter"
	"orderflow/internal/pkg/middlewares/timeout"
	"orderflow/internal/pkg/postgres"
	"orderflow/pkg/logger"
	"orderflow/pkg/logger/zap_adapter"
	"orderflow/pkg/token_bucket"
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter()
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting orderflow application")

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			mainLog.Error("failed to load .env file", logger.NewField("error", err))
			return
		}
	} else {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemMetricsCollector()

	// ongoingCtx backs BaseContext and must survive SIGTERM: it is cancelled
	// only after server.Shutdown() so in-flight requests can finish.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// The payment-completed consumer runs inside this process: its transitions
	// go through the same coordinator and fan out to the registry holding the
	// live WebSocket sessions.
	var consumer *kafka.Consumer
	var consumerErr chan error
	if cfg.Kafka.ConsumerEnabled {
		kafkaHandler := paymenthandler.New(log, businessApp.ServiceLifecycle, cfg.Kafka.Handlers.PaymentCompleted.ProcessTimeout)

		brokers := strings.Split(cfg.Kafka.Brokers, ",")
		for i := range brokers {
			brokers[i] = strings.TrimSpace(brokers[i])
		}

		consumer, err = kafka.NewConsumer(
			ctx,
			log,
			&cfg.Kafka,
			brokers,
			cfg.Kafka.ConsumerGroup,
			[]string{cfg.Kafka.ConsumerTopic},
			kafkaHandler,
		)
		if err != nil {
			return fmt.Errorf("kafka consumer: %w", err)
		}

		consumerErr = make(chan error, 1)
		go func() {
			defer close(consumerErr)

			runLog.With(
				logger.NewField("topic", cfg.Kafka.ConsumerTopic),
				logger.NewField("group", cfg.Kafka.ConsumerGroup),
			).Info("Kafka consumer starting")

			if err := consumer.Start(ongoingCtx); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, sarama.ErrClosedConsumerGroup) {
					runLog.Info("Kafka consumer stopped gracefully")
				} else {
					consumerErr <- err
				}
			}
		}()
	}

	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofMux := http.NewServeMux()
		pprofMux.Handle("/debug/pprof/", http.DefaultServeMux)

		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-consumerErr: // nil channel when the consumer is disabled, case never fires
		return fmt.Errorf("kafka consumer: %w", err)
	case err := <-pprofServerErr: // nil channel when pprof is disabled, case never fires
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx is independent of ctx, which is already cancelled here.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	if consumer != nil {
		if err := consumer.Close(); err != nil {
			runLog.Error("Failed to close Kafka consumer", logger.NewField("error", err))
		}
	}

	runLog.Info("Server stopped")
	return nil
}

func initRouter(ongoingCtx context.Context, log logger.Logger, isShuttingDown *atomic.Bool, app *application.Application, cfg config.HTTPServer) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.RateLimiterQPS, float64(cfg.RateLimiterBurst))))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log)).Methods("GET")

	// The WebSocket handshake resolves identity itself: browsers cannot set
	// headers there, so it stays outside the identity middleware.
	router.Handle("/ws", ws_get.New(log, app.Registry)).Methods("GET")

	api := router.PathPrefix("/orders").Subrouter()
	api.Use(identity.Middleware())

	api.Handle("", order_post.New(log, app.ServiceOrdering, app.Gate)).Methods("POST")
	api.Handle("/ready", orders_ready_get.New(log, app.ServiceOrdering, app.Gate)).Methods("GET")
	api.Handle("/{id}", order_get.New(log, app.ServiceOrdering, app.Gate)).Methods("GET")
	api.Handle("/{id}/transition", order_transition_post.New(log, app.ServiceLifecycle)).Methods("POST")
	api.Handle("/{id}/claim", order_claim_post.New(log, app.ServiceLifecycle, app.Gate)).Methods("POST")

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
