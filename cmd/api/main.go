package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ArowuTest/lottery-ticket-backend/internal/app"
	"github.com/ArowuTest/lottery-ticket-backend/internal/config"
	"github.com/ArowuTest/lottery-ticket-backend/internal/logging"
	"github.com/ArowuTest/lottery-ticket-backend/internal/repositories/memory"
	mongorepo "github.com/ArowuTest/lottery-ticket-backend/internal/repositories/mongodb"
	"github.com/ArowuTest/lottery-ticket-backend/pkg/mongodb"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logCloser, err := logging.Setup(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWT.Secret == "" {
		log.Warn("JWT_SECRET is not set; admin login and admin routes will fail")
	}
	if cfg.Razorpay.KeyID == "" || cfg.Razorpay.KeySecret == "" {
		log.Warn("Razorpay credentials are not set; order creation and payment verification will fail")
	}

	repos, opts, closeStorage, err := openStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer closeStorage()

	if err := os.MkdirAll(cfg.Artifacts.Dir, 0o755); err != nil {
		log.Fatalf("Failed to create tickets directory: %v", err)
	}

	application := app.New(cfg, repos, opts)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}

	// Let in-flight ticket renders finish their backfill.
	application.Artifacts.Wait()
	log.Info("Server exiting")
}

// openStorage binds the repositories for the configured driver.
// The returned func releases the backend and is never nil.
func openStorage(cfg *config.Config) (app.Repositories, app.Options, func(), error) {
	switch cfg.Storage.Driver {
	case "memory":
		log.Warn("using in-memory storage; data is lost on restart")
		return app.MemoryRepositories(memory.NewStore()), app.Options{}, func() {}, nil
	case "mongodb", "":
		mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI, cfg.MongoDB.ConnectTimeout)
		if err != nil {
			return app.Repositories{}, app.Options{}, nil, fmt.Errorf("connect to MongoDB: %w", err)
		}
		disconnect := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoClient.Disconnect(ctx); err != nil {
				log.WithError(err).Error("error disconnecting from MongoDB")
			}
		}

		db := mongoClient.Database(cfg.MongoDB.Database)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
			disconnect()
			return app.Repositories{}, app.Options{}, nil, fmt.Errorf("create indexes: %w", err)
		}
		return app.MongoRepositories(db), app.Options{Ping: mongoClient.Ping}, disconnect, nil
	default:
		return app.Repositories{}, app.Options{}, nil, fmt.Errorf("unknown storage driver %q (want mongodb or memory)", cfg.Storage.Driver)
	}
}
