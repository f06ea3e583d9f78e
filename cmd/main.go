package main

import (
	"CanteenHub-Backend/cmd/config"
	migration "CanteenHub-Backend/cmd/database/migrate"
	"CanteenHub-Backend/cmd/database/seed"
	"CanteenHub-Backend/internal/utils"
	"log"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := seed.Seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("Failed to setup app: %v", err)
	}

	if err := app.Listen(":" + utils.GetConfig("APP_PORT")); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
