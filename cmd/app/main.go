package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"parceltrack/cmd"
	httpadapter "parceltrack/internal/adapters/in/http"
	"parceltrack/internal/jobs"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app := cmd.NewCompositionRoot(configs)
	defer func() { _ = app.Close() }()

	jobManager := jobs.NewJobManager(
		app.CreateRebuildIndexesCommandHandler(),
		configs.IndexRepairSchedule,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		RedisAddr:           goDotEnvVariable("REDIS_ADDR"),
		RedisPassword:       goDotEnvVariable("REDIS_PASSWORD"),
		RedisDB:             intEnvVariable("REDIS_DB"),
		StoreTimeout:        time.Duration(intEnvVariable("STORE_TIMEOUT_MS")) * time.Millisecond,
		JWTSecret:           goDotEnvVariable("JWT_SECRET"),
		IndexRepairSchedule: goDotEnvVariable("INDEX_REPAIR_SCHEDULE"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func intEnvVariable(key string) int {
	value, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return value
}

func startWebServer(app cmd.CompositionRoot, port string) {
	server := httpadapter.NewServer(
		app.CreateRegisterParcelCommandHandler(),
		app.CreateUpdateParcelStatusCommandHandler(),
		app.CreateGetParcelByReferenceQueryHandler(),
		app.CreateListParcelsQueryHandler(),
		app.ProfileRepository(),
		app.TokenVerifier(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
