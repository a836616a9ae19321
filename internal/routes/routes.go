package routes

import (
	"time"

	"github.com/dormmarket/dormmarket-backend/internal/handlers"
	"github.com/dormmarket/dormmarket-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	catalogHandler *handlers.CatalogHandler,
	productHandler *handlers.ProductHandler,
	favoriteHandler *handlers.FavoriteHandler,
	eventHandler *handlers.EventHandler,
	messageHandler *handlers.MessageHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/api/health-check", healthHandler.Check)

	// Login/signup rate limit: 10 req/min per IP
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})

	app.Post("/user/signup", authLimiter, authHandler.Signup)
	app.Post("/user/login", authLimiter, authHandler.Login)
	app.Post("/admin/login", authLimiter, authHandler.AdminLogin)

	// General rate limit for authenticated surfaces: 120 req/min per IP
	apiLimiter := limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})

	authed := middleware.Authenticated(db)

	// User surface: token + user role.
	user := app.Group("/user", apiLimiter, authed, middleware.RequireUser())
	user.Post("/logout", authHandler.Logout)
	user.Get("/me", authHandler.Me)
	user.Patch("/settings", authHandler.UpdateProfile)
	user.Get("/settings/language", authHandler.Language)
	user.Post("/settings/language", authHandler.UpdateLanguage)
	user.Get("/settings/university-options", authHandler.UniversityOptions)
	user.Post("/settings/university", authHandler.UpdateUniversitySettings)

	user.Get("/meta/categories", catalogHandler.Categories)
	user.Get("/meta/condition-levels", catalogHandler.ConditionLevels)
	user.Get("/meta/tags", catalogHandler.Tags)
	user.Get("/meta/options", catalogHandler.MetaOptions)
	user.Get("/meta/dormitories", catalogHandler.Dormitories)
	user.Get("/meta/dormitories/by-university", catalogHandler.DormitoriesByUniversity)
	user.Post("/tags", catalogHandler.CreateTag)

	user.Post("/products", productHandler.Create)
	user.Get("/products", productHandler.My)
	user.Get("/products/cards", productHandler.MyCards)
	user.Get("/products/by-tag/:name", productHandler.ByTag)
	user.Get("/products/by-category/:name", productHandler.ByCategory)
	user.Get("/get_product/:id", productHandler.Show)
	user.Get("/products/:id/edit", productHandler.Edit)
	user.Patch("/products/:id/mark-sold", productHandler.MarkSold)
	user.Post("/products/:id/images", productHandler.UploadImages)

	user.Post("/favorites", favoriteHandler.Add)
	user.Get("/get_favorites", favoriteHandler.My)

	user.Post("/behavioral_events", eventHandler.Store)

	user.Post("/messages", messageHandler.Send)
	user.Get("/messages", messageHandler.My)

	// Admin surface: token + admin role.
	admin := app.Group("/admin", apiLimiter, authed, middleware.RequireAdmin())
	admin.Post("/logout", authHandler.Logout)
	admin.Post("/test", adminHandler.Test)

	admin.Post("/universities", adminHandler.CreateUniversity)
	admin.Get("/universities", adminHandler.ListUniversities)
	admin.Put("/universities/:id", adminHandler.UpdateUniversity)
	admin.Get("/universities/:id/dashboard", adminHandler.UniversityDashboard)

	admin.Post("/dormitories", adminHandler.CreateDormitory)
	admin.Get("/dormitories/by-university", adminHandler.DormitoriesByUniversity)
	admin.Get("/dormitories/university-names", adminHandler.DormitoryUniversityNames)

	admin.Post("/categories", adminHandler.CreateCategory)
	admin.Post("/condition-levels", adminHandler.CreateConditionLevel)

	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/users/:id", adminHandler.ShowUser)
	admin.Put("/users/:id", adminHandler.UpdateUser)
	admin.Post("/users/:id/activate", adminHandler.ActivateUser)
	admin.Post("/users/:id/deactivate", adminHandler.DeactivateUser)

	admin.Get("/products", adminHandler.ListProducts)
	admin.Get("/products/:id", adminHandler.ShowProduct)
	admin.Post("/products/:id/block", adminHandler.BlockProduct)

	admin.Post("/messages", messageHandler.Send)
	admin.Get("/messages", messageHandler.All)
}
