package routes

import (
	"FoodSaver-Backend/internal/api/handlers"
	"FoodSaver-Backend/internal/metrics"
	"FoodSaver-Backend/internal/middleware"
	"FoodSaver-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

type Config struct {
	App                *fiber.App
	AuthHandler        handlers.AuthHandler
	UserHandler        handlers.UserHandler
	FoodHandler        handlers.FoodHandler
	TransactionHandler handlers.TransactionHandler
	TipsHandler        handlers.TipsHandler
	Middleware         middleware.Middleware
	JWTService         jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.User()
	c.FoodItems()
	c.Transactions()
	c.Tips()
	c.GuestRoute()
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/google", c.AuthHandler.GoogleSignIn)
		auth.Get("/google/url", c.AuthHandler.GoogleAuthURL)
		auth.Post("/google/callback", c.AuthHandler.GoogleCallback)
		auth.Get("/session", c.Middleware.AuthMiddleware(c.JWTService), c.AuthHandler.Session)
		auth.Get("/session/events", c.Middleware.AuthMiddleware(c.JWTService), c.AuthHandler.SessionEvents)
		auth.Post("/signout", c.Middleware.AuthMiddleware(c.JWTService), c.AuthHandler.SignOut)
	}
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users", c.Middleware.AuthMiddleware(c.JWTService))
	{
		user.Get("/me", c.UserHandler.Me)
		user.Patch("/me", c.UserHandler.UpdateProfile)
	}
}

func (c *Config) FoodItems() {
	foodItems := c.App.Group("/api/v1/food-items")

	// browsing is open to guests
	foodItems.Get("", c.FoodHandler.GetFoodItems)
	foodItems.Get("/nearby", c.FoodHandler.GetNearbyFoodItems)
	foodItems.Get("/mine", c.Middleware.AuthMiddleware(c.JWTService), c.FoodHandler.GetMyFoodItems)
	foodItems.Get("/:id", c.FoodHandler.GetFoodItemDetails)

	foodItems.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.FoodHandler.CreateFoodItem)
	foodItems.Post("/:id/images", c.Middleware.AuthMiddleware(c.JWTService), c.FoodHandler.UploadFoodImage)
	foodItems.Delete("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.FoodHandler.DeleteFoodItem)
}

func (c *Config) Transactions() {
	transactions := c.App.Group("/api/v1/transactions", c.Middleware.AuthMiddleware(c.JWTService))
	{
		transactions.Post("", c.TransactionHandler.CreateTransaction)
		transactions.Get("", c.TransactionHandler.GetTransactions)
		transactions.Patch("/:id/status", c.TransactionHandler.UpdateTransactionStatus)
	}
}

func (c *Config) Tips() {
	c.App.Get("/api/v1/tips", c.TipsHandler.GetTips)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
}
