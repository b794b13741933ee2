package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/harentsoaR/doctor-portfolio-api/internal/config"
	"github.com/harentsoaR/doctor-portfolio-api/internal/handlers"
	"github.com/harentsoaR/doctor-portfolio-api/internal/logging"
	"github.com/harentsoaR/doctor-portfolio-api/internal/metrics"
	"github.com/harentsoaR/doctor-portfolio-api/internal/middleware"
	"github.com/harentsoaR/doctor-portfolio-api/internal/services"
	"github.com/harentsoaR/doctor-portfolio-api/internal/store"
)

func main() {
	cfg, dotenv, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup(cfg.Env, cfg.LogLevel, os.Stdout)
	if !dotenv {
		log.Info().Msg("no .env file found, relying on environment variables")
	}
	log.Info().
		Str("driver", cfg.Database.Driver).
		Bool("database_url_set", os.Getenv("DATABASE_URL") != "").
		Str("database_name", cfg.Database.Name).
		Str("port", cfg.Port).
		Bool("smtp_enabled", cfg.SMTP.Enabled()).
		Msg("configuration loaded")

	// --- Store ---
	gw, closeStore, err := openStore(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer closeStore()

	m := metrics.New("doctor_portfolio")
	gw = metrics.InstrumentGateway(gw, m)

	// --- Services ---
	mailer := services.NewNotificationService(cfg.SMTP)
	var notifier services.Notifier
	if mailer != nil {
		notifier = mailer
	}

	h := handlers.NewHandler(gw, notifier, handlers.Options{
		DefaultEmail: cfg.DefaultEmail,
		Driver:       cfg.Database.Driver,
		DatabaseURL:  cfg.Database.URL,
		DatabaseName: cfg.Database.Name,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(cfg, h, m),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	if err := mailer.Wait(ctx); err != nil {
		log.Warn().Err(err).Msg("shutdown before pending notifications were sent")
	}
	log.Info().Msg("server exited properly")
}

// openStore returns the configured gateway and a function releasing it.
func openStore(cfg config.DatabaseConfig) (store.Gateway, func(), error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return store.NewMemoryGateway(), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := store.Connect(ctx, cfg.URL, cfg.Timeout)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("database", cfg.Name).Msg("connected to MongoDB")

	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}
	return store.NewMongoGateway(client.Database(cfg.Name), cfg.Timeout), closeFn, nil
}

func newRouter(cfg *config.Config, h *handlers.Handler, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(m.Middleware())

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.HeaderXRequestID},
		ExposeHeaders: []string{middleware.HeaderXRequestID},
		MaxAge:        12 * time.Hour,
	}
	if cfg.AllowAllOrigins() {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	if cfg.RateLimit.RPS > 0 {
		rl := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  rate.Limit(cfg.RateLimit.RPS),
			Burst: cfg.RateLimit.Burst,
		})
		r.Use(rl.RateLimit())
	}

	h.RegisterRoutes(r)
	r.GET("/metrics", m.Handler())
	return r
}
