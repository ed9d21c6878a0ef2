package main

import (
	"context"
	"flag"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rogerio-castellano/inventory-dashboard/internal/alerts"
	"github.com/rogerio-castellano/inventory-dashboard/internal/auth"
	"github.com/rogerio-castellano/inventory-dashboard/internal/config"
	"github.com/rogerio-castellano/inventory-dashboard/internal/db"
	"github.com/rogerio-castellano/inventory-dashboard/internal/http/handlers"
	rl "github.com/rogerio-castellano/inventory-dashboard/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-dashboard/internal/http/router"
	"github.com/rogerio-castellano/inventory-dashboard/internal/logger"
	"github.com/rogerio-castellano/inventory-dashboard/internal/redissvc"
	"github.com/rogerio-castellano/inventory-dashboard/internal/remote"
	"github.com/rogerio-castellano/inventory-dashboard/internal/reports"
	"github.com/rogerio-castellano/inventory-dashboard/internal/repo"
	"github.com/rogerio-castellano/inventory-dashboard/internal/stock"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// @title Inventory Dashboard API
// @version 1.0
// @description REST API for the inventory dashboard: products, stock entry and transaction reports.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configPath := flag.String("config", "", "optional config file (yaml, json or toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("❌ Could not load configuration: %v", err)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	decimal.MarshalJSONWithoutQuotes = true
	auth.Configure(cfg.Server.JWTSecret, cfg.Server.TokenTTL)
	rl.Configure(cfg.Server.RatePerSecond, cfg.Server.RateBurst)

	store, closeStore := openStore(ctx, cfg, log)
	defer closeStore()

	var guard stock.Guard = stock.NewMemoryGuard()
	var alertLog alerts.Log = alerts.NewMemoryLog()
	if cfg.Redis.Addr != "" {
		redisService, err := redissvc.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("❌ Could not connect to Redis: %v", err)
		}
		defer redisService.Close()
		guard = redisService
		alertLog = alerts.NewRedisLog(redisService.Rdb())
		log.Infof("🔒 Submission guard and reorder log on Redis %s", cfg.Redis.Addr)
	}

	var mailer alerts.Mailer
	if cfg.Alerts.SMTPServer != "" {
		mailer = alerts.NewSMTPMailer(alerts.SMTPConfig{
			From:         cfg.Alerts.From,
			To:           cfg.Alerts.To,
			Server:       cfg.Alerts.SMTPServer,
			Port:         cfg.Alerts.SMTPPort,
			User:         cfg.Alerts.SMTPUser,
			Password:     cfg.Alerts.SMTPPassword,
			AuthDisabled: cfg.Alerts.SMTPAuthDisable,
		})
	}
	recorder := alerts.NewRecorder(alertLog, mailer, log)

	allocator := stock.NewAllocator(store, cfg.Allocator.FallbackFloor, cfg.Allocator.Timeout, log)
	submitter := stock.NewSubmitter(store, allocator, guard, log, stock.Options{
		Mode:         stock.Mode(cfg.Submission.Mode),
		WriteTimeout: cfg.Submission.WriteTimeout,
		GuardTTL:     cfg.Submission.GuardTTL,
		Alerts:       recorder,
	})

	handlers.SetLogger(log)
	handlers.SetProductRepo(store)
	handlers.SetAllocator(allocator)
	handlers.SetSubmitter(submitter)
	handlers.SetReportsService(reports.NewService(store, store))

	go rl.StartVisitorCleanupLoop(ctx)
	go recorder.StartDailySummary(ctx)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: router.NewRouter(log)}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	log.WithFields(logrus.Fields{
		"backend": cfg.Backend,
		"mode":    cfg.Submission.Mode,
	}).Infof("✅ Server running on %s", cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// openStore returns the backend selected by cfg.Backend and a function that
// releases it.
func openStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (repo.Store, func()) {
	switch cfg.Backend {
	case "postgres":
		database, err := db.Connect(cfg.Database.URL)
		if err != nil {
			log.Fatalf("❌ Could not connect to database: %v", err)
		}
		if err := db.Migrate(ctx, database); err != nil {
			log.Fatalf("❌ Could not apply schema: %v", err)
		}
		log.Info("🗄️ Using the Postgres backend")
		return repo.NewPostgresStore(database), func() { database.Close() }
	case "memory":
		log.Warn("⚠️ Using the in-memory backend, data is lost on restart")
		return repo.NewInMemoryStore(cfg.Allocator.FallbackFloor), func() {}
	default:
		log.Infof("🌐 Using the inventory API at %s", cfg.Remote.BaseURL)
		return remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.Timeout, log), func() {}
	}
}
