package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"forwarding/cmd"
	"forwarding/internal/adapters/out/postgres/consolidationrepo"
	"forwarding/internal/adapters/out/postgres/ledgerrepo"
	"forwarding/internal/adapters/out/postgres/notificationrepo"
	"forwarding/internal/adapters/out/postgres/packagerepo"
	"forwarding/internal/adapters/out/postgres/shipmentrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDB(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	if err := app.PhotoStore().EnsureBucket(context.Background()); err != nil {
		log.Fatalf("Failed to provision photo bucket: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		DhlBaseURL: goDotEnvVariable("DHL_BASE_URL"),
		DhlAPIKey:  goDotEnvVariable("DHL_API_KEY"),

		RedisAddr:     goDotEnvVariable("REDIS_ADDR"),
		RedisPassword: goDotEnvVariable("REDIS_PASSWORD"),

		MinioEndpoint:  goDotEnvVariable("MINIO_ENDPOINT"),
		MinioAccessKey: goDotEnvVariable("MINIO_ACCESS_KEY"),
		MinioSecretKey: goDotEnvVariable("MINIO_SECRET_KEY"),
		MinioBucket:    goDotEnvVariable("MINIO_BUCKET"),
		MinioUseSSL:    goDotEnvVariable("MINIO_USE_SSL") == "true",
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustOpenDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&packagerepo.PackageDTO{},
		&consolidationrepo.ConsolidationDTO{},
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.TrackingEventDTO{},
		&notificationrepo.NotificationDTO{},
		&ledgerrepo.LedgerEntryDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
