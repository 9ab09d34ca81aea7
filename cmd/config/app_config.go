package config

import (
	"FoodSaver-Backend/internal/api/handlers"
	"FoodSaver-Backend/internal/api/routes"
	"FoodSaver-Backend/internal/jobs"
	"FoodSaver-Backend/internal/metrics"
	"FoodSaver-Backend/internal/middleware"
	"FoodSaver-Backend/internal/utils"
	"FoodSaver-Backend/internal/utils/mailing"
	"FoodSaver-Backend/internal/utils/storage"
	"FoodSaver-Backend/pkg/auth"
	"FoodSaver-Backend/pkg/food"
	"FoodSaver-Backend/pkg/jwt"
	"FoodSaver-Backend/pkg/session"
	"FoodSaver-Backend/pkg/tips"
	"FoodSaver-Backend/pkg/transaction"
	"FoodSaver-Backend/pkg/user"
	"context"
	"errors"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

const (
	sessionEventBuffer = 8
	sweepSchedule      = "@every 15m"
)

// NewApp wires every dependency and returns the app with a cleanup func
// that stops background work and closes the datastores.
func NewApp(ctx context.Context, db *gorm.DB) (*fiber.App, func(), error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	validator := utils.Validate

	jwtSecret := utils.GetConfig("JWT_SECRET")
	if jwtSecret == "" {
		return nil, nil, errors.New("JWT_SECRET is required")
	}

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, nil, err
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/metrics"
		},
	}))
	app.Use(metrics.Middleware())

	// datastores
	store, closeStore, err := NewSessionStore(ctx)
	if err != nil {
		_ = file.Close()
		return nil, nil, err
	}
	tipRepository, closeTips, err := NewTipRepository(ctx)
	if err != nil {
		closeStore()
		_ = file.Close()
		return nil, nil, err
	}

	// utils
	s3 := storage.NewAwsS3()
	broker := session.NewBroker(sessionEventBuffer)
	middlewares := middleware.NewMiddleware(store)

	var mailer transaction.Mailer
	if mailing.LoadMailConfig().Enabled() {
		mailer = mailing.SendMail
	} else {
		log.Warn("SMTP not configured, reservation mails are disabled")
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	foodRepository := food.NewFoodRepository(db)
	transactionRepository := transaction.NewTransactionRepository(db)

	// Service
	jwtService := jwt.NewJWTService(jwtSecret, utils.GetJWTTTL())
	userService := user.NewUserService(userRepository, broker)
	authService := auth.NewAuthService(
		auth.NewGoogleVerifier(utils.GetConfig("GOOGLE_TOKENINFO_URL"), utils.GetGoogleAudiences()),
		auth.NewGoogleOAuth(
			utils.GetConfig("GOOGLE_CLIENT_ID"),
			utils.GetConfig("GOOGLE_CLIENT_SECRET"),
			utils.GetConfig("GOOGLE_REDIRECT_URL"),
		),
		userService,
		jwtService,
		store,
		broker,
	)
	foodService := food.NewFoodService(foodRepository, s3)
	transactionService := transaction.NewTransactionService(
		transactionRepository,
		foodRepository,
		userRepository,
		mailer,
		utils.GetConfig("APP_URL"),
	)
	tipService := tips.NewTipService(tipRepository)

	// Jobs
	sweeper := jobs.NewReservationSweeper(transactionService, utils.GetReservationTTL())
	if err := sweeper.Start(sweepSchedule); err != nil {
		closeTips()
		closeStore()
		_ = file.Close()
		return nil, nil, err
	}

	// Handler
	authHandler := handlers.NewAuthHandler(authService, broker, validator)
	userHandler := handlers.NewUserHandler(userService, validator)
	foodHandler := handlers.NewFoodHandler(foodService, validator)
	transactionHandler := handlers.NewTransactionHandler(transactionService, validator)
	tipsHandler := handlers.NewTipsHandler(tipService)

	// routes
	routesConfig := routes.Config{
		App:                app,
		AuthHandler:        authHandler,
		UserHandler:        userHandler,
		FoodHandler:        foodHandler,
		TransactionHandler: transactionHandler,
		TipsHandler:        tipsHandler,
		Middleware:         middlewares,
		JWTService:         jwtService,
	}
	routesConfig.Setup()

	cleanup := func() {
		sweeper.Stop()
		closeTips()
		closeStore()
		if err := file.Close(); err != nil {
			log.Warnf("close log file: %v", err)
		}
	}
	return app, cleanup, nil
}
