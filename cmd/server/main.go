// Package main initializes and starts the profilekeeper HTTP server,
// setting up configuration, logging, the MongoDB connection,
// repositories, services and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/profilekeeper/internal/config"
	"github.com/atinyakov/profilekeeper/internal/db"
	"github.com/atinyakov/profilekeeper/internal/filestore"
	"github.com/atinyakov/profilekeeper/internal/logger"
	"github.com/atinyakov/profilekeeper/internal/repository"
	"github.com/atinyakov/profilekeeper/internal/server/handler/http"
	"github.com/atinyakov/profilekeeper/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	zapLogger, err := logger.New("Info")
	if err != nil {
		panic(err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if options.JWTSecret == "" {
		zapLogger.Fatal("JWT_SECRET must be set")
	}

	// Initialize the MongoDB connection.
	ctx := context.Background()
	database, err := db.InitMongo(ctx, options.MongoURI, options.MongoDatabase)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer func() { _ = database.Client().Disconnect(ctx) }()

	// Initialize repositories for accounts and catalog items.
	accountRepo := repository.NewMongoAccountRepository(database)
	itemRepo := repository.NewMongoItemRepository(database)

	// Pick the profile-image backend: S3-compatible object storage when a
	// bucket is configured, local disk otherwise.
	var files service.FileStore
	if options.S3Bucket != "" {
		files, err = filestore.NewS3Store(ctx, filestore.S3Options{
			Bucket:       options.S3Bucket,
			Region:       options.S3Region,
			AccessKey:    options.S3AccessKey,
			SecretKey:    options.S3SecretKey,
			BaseEndpoint: options.S3Endpoint,
		})
		if err != nil {
			zapLogger.Fatal("cannot init S3 file store", zap.Error(err))
		}
	} else {
		files = filestore.NewLocalStore(options.UploadDir)
	}

	// Initialize business-logic services.
	accountService := service.NewAccountService(accountRepo, files,
		[]byte(options.JWTSecret), options.TokenTTL, zapLogger)
	itemService := service.NewItemService(itemRepo)

	// Create HTTP handlers for auth, account, catalog and admin endpoints.
	authHandler := &http.AuthHandler{
		AccountService: accountService,
		TokenTTL:       options.TokenTTL,
		Logger:         zapLogger,
	}
	accountHandler := &http.AccountHandler{
		AccountService: accountService,
		Logger:         zapLogger,
	}
	itemHandler := &http.ItemHandler{
		ItemService: itemService,
		Logger:      zapLogger,
	}
	adminHandler := &http.AdminHandler{
		EnsureIndexes: func(ctx context.Context) error {
			return db.EnsureIndexes(ctx, database)
		},
		SetupPass: options.AdminSetupPass,
		Logger:    zapLogger,
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, accountHandler, itemHandler,
		adminHandler, zapLogger, []byte(options.JWTSecret))

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
