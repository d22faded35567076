package router

import (
	"net"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"

	"github.com/khanh-pt/realworld/app/controllers"
	"github.com/khanh-pt/realworld/internal/pkg/cache"
	"github.com/khanh-pt/realworld/internal/pkg/env"
	"github.com/khanh-pt/realworld/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	app.Use(middleware.UserContextMiddleware)

	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		Storage:    newLimiterStorage(),
	}))
	registerAPIRoutes(api)
}

func registerAPIRoutes(api fiber.Router) {
	// Users
	api.Post("/users", controllers.HandleRegister)
	api.Post("/users/login", controllers.HandleLogin)
	api.Post("/users/refresh-token", controllers.HandleRefreshToken)
	api.Get("/user", middleware.RequireAuth, controllers.HandleGetCurrentUser)
	api.Put("/user", middleware.RequireAuth, controllers.HandleUpdateCurrentUser)

	// Profiles
	api.Get("/profiles/:username", controllers.HandleGetProfile)
	api.Post("/profiles/:username/follow", middleware.RequireAuth, controllers.HandleFollowUser)
	api.Delete("/profiles/:username/follow", middleware.RequireAuth, controllers.HandleUnfollowUser)

	// Articles
	api.Get("/articles", controllers.HandleListArticles)
	api.Get("/articles/feed", middleware.RequireAuth, controllers.HandleFeedArticles)
	api.Get("/articles/:slug", controllers.HandleGetArticle)
	api.Post("/articles", middleware.RequireAuth, controllers.HandleCreateArticle)
	api.Put("/articles/:slug", middleware.RequireAuth, controllers.HandleUpdateArticle)
	api.Delete("/articles/:slug", middleware.RequireAuth, controllers.HandleDeleteArticle)

	// Favorites
	api.Post("/articles/:slug/favorite", middleware.RequireAuth, controllers.HandleFavoriteArticle)
	api.Delete("/articles/:slug/favorite", middleware.RequireAuth, controllers.HandleUnfavoriteArticle)

	// Comments
	api.Get("/articles/:slug/comments", controllers.HandleGetComments)
	api.Post("/articles/:slug/comments", middleware.RequireAuth, controllers.HandleAddComment)
	api.Delete("/articles/:slug/comments/:id", middleware.RequireAuth, controllers.HandleDeleteComment)

	// Tags
	api.Get("/tags", controllers.HandleGetTags)

	// Search
	api.Get("/articles-search", controllers.HandleSearchArticles)

	// Files
	api.Post("/files/presigned-url", middleware.RequireAuth, controllers.HandleCreatePresignedURL)
}

// newLimiterStorage backs the rate limiter with Redis so limits hold across
// instances. The limiter uses database 1, the cache uses 0.
func newLimiterStorage() *redis.Storage {
	cacheClient := cache.GetClient()
	host := "localhost"
	port := 6379
	password := env.GetEnv("CACHE_PASSWORD", "")
	if cacheClient != nil {
		addr := cacheClient.Options().Addr
		if h, p, err := net.SplitHostPort(addr); err == nil {
			host = h
			if v, err := strconv.Atoi(p); err == nil {
				port = v
			}
		}
		if p := cacheClient.Options().Password; p != "" {
			password = p
		}
	}

	return redis.New(redis.Config{
		Host:     host,
		Port:     port,
		Password: password,
		Database: 1,
		Reset:    false,
	})
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
