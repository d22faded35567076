package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/khanh-pt/realworld/app/repository"
	"github.com/khanh-pt/realworld/internal/pkg/apperror"
	"github.com/khanh-pt/realworld/internal/pkg/cache"
	"github.com/khanh-pt/realworld/internal/pkg/database"
	"github.com/khanh-pt/realworld/internal/pkg/env"
	"github.com/khanh-pt/realworld/internal/pkg/router"
	"github.com/khanh-pt/realworld/internal/pkg/search"
	"github.com/khanh-pt/realworld/internal/pkg/storage"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	storage.SetupStorage()
	search.SetupSearch()

	repository.InitializeFactory(database.GetDB())
	if err := repository.GetGlobalFactory().GetSessionRepository().DeleteExpired(); err != nil {
		log.Printf("could not clean up expired sessions: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "realworld",
		ErrorHandler: apperror.ErrorHandler,
		BodyLimit:    1 * 1024 * 1024,
	})
	app.Use(recover.New(), logger.New())

	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "admin"),
		},
	}), monitor.New())

	// ROUTER
	router.InstallRouter(app)

	return app
}
