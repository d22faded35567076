package router

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func registeredRoutes(app *fiber.App) map[string]bool {
	routes := make(map[string]bool)
	for _, r := range app.GetRoutes() {
		routes[r.Method+" "+r.Path] = true
	}
	return routes
}

func TestRegisterAPIRoutes(t *testing.T) {
	app := fiber.New()
	registerAPIRoutes(app.Group("/api"))
	routes := registeredRoutes(app)

	t.Run("search lives at its own top-level path", func(t *testing.T) {
		assert.True(t, routes["GET /api/articles-search"])
		assert.False(t, routes["GET /api/articles/search"])
	})

	t.Run("article routes are registered", func(t *testing.T) {
		for _, route := range []string{
			"GET /api/articles",
			"GET /api/articles/feed",
			"GET /api/articles/:slug",
			"POST /api/articles",
			"PUT /api/articles/:slug",
			"DELETE /api/articles/:slug",
			"POST /api/articles/:slug/favorite",
			"DELETE /api/articles/:slug/favorite",
			"GET /api/articles/:slug/comments",
			"POST /api/articles/:slug/comments",
			"DELETE /api/articles/:slug/comments/:id",
		} {
			assert.True(t, routes[route], "missing route %s", route)
		}
	})

	t.Run("user and profile routes are registered", func(t *testing.T) {
		for _, route := range []string{
			"POST /api/users",
			"POST /api/users/login",
			"POST /api/users/refresh-token",
			"GET /api/user",
			"PUT /api/user",
			"GET /api/profiles/:username",
			"POST /api/profiles/:username/follow",
			"DELETE /api/profiles/:username/follow",
			"GET /api/tags",
			"POST /api/files/presigned-url",
		} {
			assert.True(t, routes[route], "missing route %s", route)
		}
	})
}
