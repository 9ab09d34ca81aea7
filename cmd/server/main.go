package main

import (
	"FoodSaver-Backend/cmd/config"
	migration "FoodSaver-Backend/cmd/database/migrate"
	"FoodSaver-Backend/internal/utils"
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	migrate := flag.Bool("migrate", false, "run database migrations before serving")
	flag.Parse()

	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	if *migrate {
		if err := migration.Migrate(db); err != nil {
			log.Fatalf("migrate database: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := config.NewApp(ctx, db)
	if err != nil {
		log.Fatalf("build app: %v", err)
	}
	defer cleanup()

	go func() {
		if err := app.Listen(":" + utils.GetConfig("PORT")); err != nil {
			log.Errorf("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}
