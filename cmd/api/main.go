package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/doctors-portal/internal/auth"
	"github.com/harentsoaR/doctors-portal/internal/config"
	"github.com/harentsoaR/doctors-portal/internal/handlers"
	"github.com/harentsoaR/doctors-portal/internal/middleware"
	"github.com/harentsoaR/doctors-portal/internal/payments"
	"github.com/harentsoaR/doctors-portal/internal/services"
	"github.com/harentsoaR/doctors-portal/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}
	logger := cfg.Logger()
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Store ---
	var st store.Store
	switch cfg.StoreDriver {
	case "memory":
		logger.Warn().Msg("using in-memory store; data is lost on restart")
		st = store.NewMemory()
	default:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
		if err == nil {
			err = client.Ping(connectCtx, nil)
		}
		cancel()
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()
		m := store.NewMongo(client.Database(cfg.MongoDatabase))
		if cfg.BookingUniqueIndex {
			if err := m.EnsureIndexes(ctx); err != nil {
				logger.Fatal().Err(err).Msg("failed to create indexes")
			}
			logger.Info().Msg("unique booking and user indexes in place")
		}
		st = m
		logger.Info().Str("database", cfg.MongoDatabase).Msg("connected to MongoDB")
	}

	// --- Collaborators ---
	issuer, err := auth.NewIssuer(cfg.TokenSecret)
	if err != nil {
		logger.Fatal().Err(err).Msg("token issuer")
	}

	var pay payments.IntentCreator = payments.Disabled{}
	if cfg.PaymentSecretKey != "" {
		pay = payments.NewStripe(cfg.PaymentSecretKey)
	} else {
		logger.Warn().Msg("PAYMENT_SECRET_KEY not set; payment intents are disabled")
	}

	var notifier services.Notifier = services.NopNotifier{}
	if cfg.TextbeltAPIKey != "" {
		notifier = services.NewSMSNotifier(cfg.TextbeltAPIKey, logger)
	}

	limiter := middleware.NewRateLimiter(cfg.LoginRate, cfg.LoginBurst)
	go func() {
		t := time.NewTicker(time.Minute)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				limiter.Sweep(3 * time.Minute)
			}
		}
	}()

	h := handlers.NewHandler(st, issuer, pay, notifier, logger)
	r := handlers.NewRouter(h, handlers.RouterOptions{
		AllowOrigins: cfg.CORSOrigins,
		LoginLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
}
