package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"github.com/etczermerivil/Rgb-bnb/internal/adapters/auth"
	server "github.com/etczermerivil/Rgb-bnb/internal/adapters/http_server"
	"github.com/etczermerivil/Rgb-bnb/internal/adapters/observability"
	redisad "github.com/etczermerivil/Rgb-bnb/internal/adapters/redis"
	"github.com/etczermerivil/Rgb-bnb/internal/app"
	"github.com/etczermerivil/Rgb-bnb/internal/shared"
	mysqlrepo "github.com/etczermerivil/Rgb-bnb/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	tokens := auth.New(cfg.JWTSecret, cfg.TokenTTL)

	handlers := &server.Handlers{
		Spots:    app.NewSpotService(repo, repo, repo, cache, cfg.CacheTTL),
		Bookings: app.NewBookingService(repo, repo, repo),
		Reviews:  app.NewReviewService(repo, repo, repo, cache),
		Users:    repo,
		Auth:     tokens,
	}

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(handlers)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
