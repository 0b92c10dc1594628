package router

import (
	"user-management/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func Setup(app *fiber.App, db *sqlx.DB, redis *redis.Client, cfg *config.Config) {
	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"app":    cfg.AppName,
		})
	})

	// Web routes (HTML)
	web := app.Group("")
	setupWebRoutes(web)

	// API routes (JSON)
	api := app.Group("/api/v1")
	SetupAPIRoutes(api, db, redis, cfg)
}

func setupWebRoutes(router fiber.Router) {
	router.Get("/login", func(c *fiber.Ctx) error {
		return c.Render("auth/login", fiber.Map{
			"Title": "Login",
		})
	})

	// User record pages
	router.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/users")
	})

	router.Get("/users", func(c *fiber.Ctx) error {
		return c.Render("users/index", fiber.Map{
			"Title": "Users",
		})
	})

	router.Get("/users/new", func(c *fiber.Ctx) error {
		return c.Render("users/form", fiber.Map{
			"Title": "New User",
		})
	})

	router.Get("/users/edit/:id", func(c *fiber.Ctx) error {
		return c.Render("users/form", fiber.Map{
			"Title":  "Edit User",
			"UserID": c.Params("id"),
		})
	})

	router.Get("/users/import", func(c *fiber.Ctx) error {
		return c.Render("users/import", fiber.Map{
			"Title": "Import Users",
		})
	})
}
