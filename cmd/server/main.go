package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/rampurgold/storefront/internal/cart"
	"github.com/rampurgold/storefront/internal/catalog"
	"github.com/rampurgold/storefront/internal/config"
	"github.com/rampurgold/storefront/internal/events"
	"github.com/rampurgold/storefront/internal/handlers"
	"github.com/rampurgold/storefront/internal/logging"
	"github.com/rampurgold/storefront/internal/render"
	"github.com/rampurgold/storefront/internal/search"
	"github.com/rampurgold/storefront/internal/session"
	httpserver "github.com/rampurgold/storefront/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var sessions session.Store
	if configuration.REDIS_ADDR != "" {
		sessions = session.NewRedisStore(redis.NewClient(&redis.Options{Addr: configuration.REDIS_ADDR}))
		logger.Info("session store: redis", "addr", configuration.REDIS_ADDR)
	} else {
		sessions = session.NewMemoryStore()
		logger.Info("session store: memory")
	}

	var producer *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	carts := &cart.Service{DB: db}

	var searchSvc *search.Service
	if configuration.ES_URL != "" {
		esClient, err := search.NewClient(configuration.ES_URL, configuration.ES_USER, configuration.ES_PASSWORD)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		searchSvc = &search.Service{ES: esClient, Index: "products"}
	}

	catalogSvc := &catalog.Service{DB: db}
	if searchSvc != nil {
		catalogSvc.Indexer = searchSvc
	}

	renderer, err := render.New()
	if err != nil {
		log.Fatalf("template init error: %v", err)
	}

	e := echo.New()
	e.Renderer = renderer
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), logging.RequestLogger(logger))

	deps := httpserver.Deps{
		Pages:    &handlers.PagesHandler{Sessions: sessions, Carts: carts},
		Auth:     &handlers.AuthHandler{DB: db, Sessions: sessions, Carts: carts, Producer: producer},
		Catalog:  &handlers.CatalogHandler{Catalog: catalogSvc, Sessions: sessions, Carts: carts},
		Cart:     &handlers.CartHandler{Carts: carts, Sessions: sessions, Producer: producer},
		Sessions: sessions,
	}
	if searchSvc != nil {
		deps.Search = &handlers.SearchHandler{Searcher: searchSvc, Sessions: sessions, Carts: carts}
	}

	httpserver.Register(e, &deps)

	port := configuration.PORT
	if port == "" {
		port = "3000"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("server running", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
