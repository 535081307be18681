package main

import (
	"log"
	"net/http"
	"time"

	"github.com/bid2ship/bid2ship/internal/auth"
	"github.com/bid2ship/bid2ship/internal/db"
	"github.com/bid2ship/bid2ship/internal/handlers"
	"github.com/bid2ship/bid2ship/internal/logger"
	"github.com/bid2ship/bid2ship/internal/repository"
	"github.com/bid2ship/bid2ship/internal/router"
	"github.com/bid2ship/bid2ship/internal/router/config"
	"github.com/bid2ship/bid2ship/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dbSource, err := db.ConnString(cfg)
	if err != nil {
		log.Fatal("cannot resolve database connection:", err)
	}
	runDBMigration(cfg.MigrationURL, dbSource)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer dbPool.Close()

	appLogger := logger.New("bid2ship")

	userRepo := repository.NewPostgresUserRepository(dbPool)
	shipmentRepo := repository.NewPostgresShipmentRepository(dbPool)
	bidRepo := repository.NewPostgresBidRepository(dbPool)

	authenticator := auth.NewAuthenticator(userRepo)

	userService := services.NewUserService(userRepo, authenticator)
	shipmentService := services.NewShipmentService(shipmentRepo, bidRepo)
	bidService := services.NewBidService(bidRepo)

	userHandler := handlers.NewUserHandler(userService, authenticator, appLogger, 5*time.Second)
	shipmentHandler := handlers.NewShipmentHandler(shipmentService, authenticator, appLogger, 5*time.Second)
	bidHandler := handlers.NewBidHandler(bidService, authenticator, appLogger, 5*time.Second)

	routes := router.InitRoutes(userHandler, shipmentHandler, bidHandler, cfg.CorsOrigins)

	appLogger.Info("server is listening", logger.String("address", cfg.ServerAddress))
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func runDBMigration(migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance", err)
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("failed to run migrate up:", err)
	}
	log.Println("db migrated successfully")
}
