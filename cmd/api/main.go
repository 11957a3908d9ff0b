package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"

	cacheadp "lending-ledger-backend/internal/adapter/cache"
	httpadp "lending-ledger-backend/internal/adapter/http"
	"lending-ledger-backend/internal/adapter/middleware"
	"lending-ledger-backend/internal/adapter/repository/mysql"
	"lending-ledger-backend/internal/config"
	"lending-ledger-backend/internal/infrastructure/cache"
	"lending-ledger-backend/internal/infrastructure/db"
	"lending-ledger-backend/internal/infrastructure/metrics"
	"lending-ledger-backend/internal/usecase/auth"
	"lending-ledger-backend/internal/usecase/lending"
	"lending-ledger-backend/internal/usecase/user"
	"lending-ledger-backend/pkg/password"
	"lending-ledger-backend/pkg/sl"
	"lending-ledger-backend/pkg/token"
)

func main() {
	cfg := config.Load()
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", sl.Err(err))
		os.Exit(1)
	}
	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", sl.Err(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// amounts go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	gdb, err := db.OpenGorm(cfg)
	if err != nil {
		return err
	}
	if err := db.Migrate(gdb); err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Warn("redis unavailable, running without idempotency and summary cache", slog.String("addr", cfg.RedisAddr), sl.Err(err))
		rdb = nil
	} else {
		defer rdb.Close()
	}

	m := metrics.New()
	hasher := password.NewHasher(cfg.BcryptCost)
	tokens := token.NewMaker(cfg.JWTSecret, cfg.TokenTTL)

	recordRepo := mysql.NewRecordRepository(gdb)
	userRepo := mysql.NewUserRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	lendOpts := []lending.Option{lending.WithMetrics(m), lending.WithLogger(log)}
	if rdb != nil {
		lendOpts = append(lendOpts, lending.WithSummaryCache(cacheadp.NewSummaryCache(rdb, cfg.SummaryCacheTTL())))
	}
	lendSvc := lending.NewUsecase(recordRepo, tx, lendOpts...)
	userSvc := user.NewUsecase(userRepo, tx, hasher)
	authSvc, err := auth.NewUsecase(userRepo, userSvc, tokens, hasher, auth.WithMetrics(m), auth.WithLogger(log))
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	errs := httpadp.NewErrorWriter(log, cfg.IsDevelopment())
	routes := httpadp.Routes{
		Health:     httpadp.NewHandler(sqlDB.PingContext),
		Auth:       httpadp.NewAuthHandler(authSvc, errs),
		Lending:    httpadp.NewLendingHandler(lendSvc, errs),
		Users:      httpadp.NewUserHandler(userSvc, errs),
		Gate:       authSvc,
		LoginLimit: middleware.PerIPRateLimit(cfg.LoginRatePerMin),
		Metrics:    m.Handler(),
	}
	if rdb != nil {
		routes.Idempotency = middleware.Idempotency(rdb, cfg.IdempotencyTTL(), log)
	}
	httpadp.Register(e, routes)

	addr := ":" + cfg.AppPort
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", slog.String("addr", addr), slog.String("env", cfg.AppEnv))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
