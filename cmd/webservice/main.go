package main

import (
	"context"
	"log"

	"github.com/vparmar-art/MarketplaceApp/config"
	"github.com/vparmar-art/MarketplaceApp/internal/app"

	postgresDriver "github.com/vparmar-art/MarketplaceApp/internal/infrastructure/database/postgres"
)

func main() {
	config := config.CreateNewConfig()
	ctx := context.Background()

	db, err := postgresDriver.Connect(ctx, config.PostgreSQLConfig.DBUsername, config.PostgreSQLConfig.DBPassword, config.PostgreSQLConfig.DBHost, config.PostgreSQLConfig.DBPort, config.PostgreSQLConfig.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}
	defer db.Close()

	if err := postgresDriver.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to apply the schema: %v", err)
	}

	server := app.App{
		DB:     db,
		Config: config,
	}

	server.Start()
}
