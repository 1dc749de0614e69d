package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"github.com/redis/go-redis/v9"

	"virtualab_backend/internals/configs"
	database "virtualab_backend/internals/databases"
	auditService "virtualab_backend/internals/features/audit/service"
	scheduler "virtualab_backend/internals/features/users/auth/scheduler"
	"virtualab_backend/internals/helpers/storage"
	middlewares "virtualab_backend/internals/middlewares"
	"virtualab_backend/internals/middlewares/ratelimit"
	routes "virtualab_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		BodyLimit:               12 << 20, // a little above the upload ceiling
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// Request-ID + timing; the id also keys the audit one-shot timer.
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := database.SeedRoles(database.DB); err != nil {
		log.Fatalf("role seed failed: %v", err)
	}

	audit := auditService.NewLogger(database.DB)
	middlewares.SetupMiddlewares(app, audit)

	scheduler.StartSessionCleanupScheduler(database.DB)

	store, err := storage.NewFromConfig(configs.StorageBackend, configs.UploadDir, configs.UploadBaseURL)
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}

	// per-user limiter counters: Redis when configured, process memory otherwise
	var counters ratelimit.CounterStore = ratelimit.NewMemoryStore()
	if configs.RedisAddr != "" {
		counters = ratelimit.NewRedisStore(redis.NewClient(&redis.Options{Addr: configs.RedisAddr}))
		log.Printf("[INFO] rate limit counters backed by redis at %s", configs.RedisAddr)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	app.Static("/uploads", configs.UploadDir)

	routes.SetupRoutes(app, database.DB, audit, store, counters)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("[INFO] listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
