package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/vouchly/vouchly-backend/api"
	"github.com/vouchly/vouchly-backend/config"
	"github.com/vouchly/vouchly-backend/database"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		zlog.Warn().Err(err).Msg("no .env file loaded")
	}

	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		zlog.Fatal().Msg("DATABASE_URL must be set")
	}
	if cfg.JWTSecret == "" {
		zlog.Fatal().Msg("JWT_SECRET must be set")
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	// TranslateError turns driver-level constraint violations into gorm's
	// sentinel errors, which the errs package maps onto the API taxonomy.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("error connecting to database")
	}

	if cfg.DatabaseReplicaURL != "" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(cfg.DatabaseReplicaURL)},
		}))
		if err != nil {
			zlog.Fatal().Err(err).Msg("error registering read replica")
		}
	}

	currentDB := database.New(db)

	if err := currentDB.AutoMigrate(); err != nil {
		zlog.Fatal().Err(err).Msg("error migrating database schema")
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	zlog.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(cfg.ShutdownTimeout)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
