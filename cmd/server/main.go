package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/carnetapp/carnet-server/internal/config"
	"github.com/carnetapp/carnet-server/internal/database"
	"github.com/carnetapp/carnet-server/internal/handler"
	"github.com/carnetapp/carnet-server/internal/queue"
	"github.com/carnetapp/carnet-server/internal/repository"
	"github.com/carnetapp/carnet-server/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}
	cfg := config.Load()

	var (
		users    repository.UserStore
		contacts repository.ContactStore
	)
	switch cfg.StoreDriver {
	case config.StoreMySQL:
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("database open: %v", err)
		}
		if err := database.Migrate(context.Background(), db); err != nil {
			log.Fatalf("database migrate: %v", err)
		}
		users = repository.NewUserRepo(db)
		contacts = repository.NewContactRepo(db)
	default:
		log.Println("using in-memory stores; all data is lost on restart")
		users = repository.NewMemoryUserStore()
		contacts = repository.NewMemoryContactStore()
	}

	cacheCfg := config.LoadCacheConfig()
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, contact list caching disabled")
	}

	if v := os.Getenv("QUEUE_CONSUMER_ENABLED"); strings.EqualFold(v, "true") || v == "1" {
		go func() {
			if err := queue.StartContactConsumer(); err != nil {
				log.Printf("contact consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), cfg.JWTSecret)
	router.RegisterUsers(e, handler.NewUserHandler(users), cfg.JWTSecret)
	router.RegisterContacts(e, handler.NewContactHandler(contacts, cacheCfg, rdb), cfg.JWTSecret, cacheCfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, store=%s)", addr, cfg.Env, cfg.StoreDriver)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
