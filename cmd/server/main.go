package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/auth"
	"github.com/iliyamo/user-account-service/internal/config"
	"github.com/iliyamo/user-account-service/internal/database"
	"github.com/iliyamo/user-account-service/internal/handler"
	"github.com/iliyamo/user-account-service/internal/middleware"
	"github.com/iliyamo/user-account-service/internal/queue"
	"github.com/iliyamo/user-account-service/internal/repository"
	"github.com/iliyamo/user-account-service/internal/router"
	"github.com/iliyamo/user-account-service/internal/seed"
	queue_publisher "github.com/iliyamo/user-account-service/internal/service"
	"github.com/iliyamo/user-account-service/internal/verification"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Fatal("redis: connection failed; verification codes need a reachable cache")
	}

	users := repository.NewUserRepo(db)
	posts := repository.NewPostRepo(db)
	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	codes := verification.New(verification.NewRedisCache(rdb), cfg.VerifyCodeTTL)
	dispatcher := queue_publisher.NewDispatcher()
	lifecycle := auth.NewLifecycle(users, codes, hasher, dispatcher)
	authenticator := auth.NewAuthenticator(users, hasher)

	if cfg.SeedFakeUsers {
		sctx, scancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := seed.FakeUsers(sctx, users, hasher); err != nil {
			log.Printf("seed: %v", err)
		}
		scancel()
	}

	// Background email worker; reconnects on broker failures for the
	// lifetime of the process.
	go func() {
		if err := queue.StartEmailConsumer(); err != nil {
			log.Printf("email-consumer: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true

	limiter := middleware.NewFixedWindow(config.LoadRateLimitConfig(), rdb)
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(lifecycle, authenticator, tokens, users), tokens, users, limiter)
	router.RegisterPosts(e, handler.NewPostHandler(posts), tokens, users)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
