package main

import (
	"strings"

	"github.com/DedS3t/richman-engine/app/controllers"
	"github.com/DedS3t/richman-engine/pkg/routes"
	"github.com/DedS3t/richman-engine/platform/cache"
	"github.com/DedS3t/richman-engine/platform/config"
	"github.com/DedS3t/richman-engine/platform/database"
	"github.com/DedS3t/richman-engine/platform/logging"
	"github.com/DedS3t/richman-engine/platform/queries"
	"github.com/DedS3t/richman-engine/platform/rooms"
	socket "github.com/DedS3t/richman-engine/platform/sockets"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	logging.Init()
	cfg := config.Load()

	registry := rooms.NewRegistry(cfg.Rules)

	var users controllers.UserStore
	if cfg.DB.Enabled() {
		db := database.PostgreSQLConnection(cfg.DB)
		defer db.Close()
		if err := database.Ping(db); err != nil {
			logrus.WithError(err).Fatal("directory database unavailable")
		}
		if err := queries.CreateSchema(db); err != nil {
			logrus.WithError(err).Fatal("create schema")
		}
		registry.AddObserver(queries.NewDirectory(db))
		users = queries.NewUsers(db)
	} else {
		logrus.Warn("DB_ADDR not set, running without directory or accounts")
	}

	var snapshots controllers.SnapshotReader
	if cfg.RedisURL != "" {
		pool := cache.CreateRedisPool(cfg.RedisURL)
		defer pool.Close()
		mirror := cache.NewSnapshotMirror(pool, cfg.SnapshotTTL)
		if _, err := mirror.Purge(); err != nil {
			logrus.WithError(err).Fatal("redis unavailable")
		}
		registry.AddObserver(mirror)
		snapshots = mirror
	}

	server, err := socket.CreateSocketIOServer(registry, cfg.JWTSecret)
	if err != nil {
		logrus.WithError(err).Fatal("create socket server")
	}
	go func() {
		if err := server.Serve(cfg.SocketAddr, cfg.AllowedOrigins); err != nil {
			logrus.WithError(err).Fatal("socket server stopped")
		}
	}()

	app := fiber.New()
	app.Use(cors.New(cors.Config{AllowOrigins: strings.Join(cfg.AllowedOrigins, ",")}))
	routes.AuthRoutes(app, cfg.JWTSecret, users)
	routes.GameRoutes(app, registry, snapshots)

	if err := app.Listen(cfg.HTTPAddr); err != nil {
		logrus.WithError(err).Fatal("http server stopped")
	}
}
