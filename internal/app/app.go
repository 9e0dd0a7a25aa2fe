// Package app assembles repositories, services and handlers into a router.
package app

import (
	"github.com/ArowuTest/lottery-ticket-backend/api/routes"
	"github.com/ArowuTest/lottery-ticket-backend/internal/config"
	"github.com/ArowuTest/lottery-ticket-backend/internal/handlers"
	"github.com/ArowuTest/lottery-ticket-backend/internal/repositories"
	"github.com/ArowuTest/lottery-ticket-backend/internal/repositories/memory"
	mongorepo "github.com/ArowuTest/lottery-ticket-backend/internal/repositories/mongodb"
	"github.com/ArowuTest/lottery-ticket-backend/internal/services"
	"github.com/ArowuTest/lottery-ticket-backend/pkg/jwt"
	"github.com/ArowuTest/lottery-ticket-backend/pkg/razorpay"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repositories is the persistence backend the services run on
type Repositories struct {
	Users   repositories.UserRepository
	Tickets repositories.TicketRepository
	Winners repositories.WinnerRepository
	Admins  repositories.AdminUserRepository
}

// MongoRepositories binds every repository to db
func MongoRepositories(db *mongo.Database) Repositories {
	return Repositories{
		Users:   mongorepo.NewUserRepository(db),
		Tickets: mongorepo.NewTicketRepository(db),
		Winners: mongorepo.NewWinnerRepository(db),
		Admins:  mongorepo.NewAdminUserRepository(db),
	}
}

// MemoryRepositories binds every repository to an in-process store
func MemoryRepositories(store *memory.Store) Repositories {
	return Repositories{
		Users:   store.Users(),
		Tickets: store.Tickets(),
		Winners: store.Winners(),
		Admins:  store.Admins(),
	}
}

// App is the assembled service
type App struct {
	Router    *gin.Engine
	Auth      *services.AuthService
	Purchases *services.PurchaseService
	Artifacts *services.ArtifactWorker
}

// Options carries the collaborators that differ between deployments and tests.
type Options struct {
	Ping    handlers.Pinger
	Gateway services.OrderGateway
}

// New wires services and handlers over repos.
func New(cfg *config.Config, repos Repositories, opts Options) *App {
	errs := handlers.ErrorRenderer{HideDetails: cfg.Server.IsProduction()}

	tokens := jwt.NewAdminTokenService(cfg.JWT.Secret, cfg.JWT.Expiry())
	gateway := opts.Gateway
	if gateway == nil {
		gateway = razorpay.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.Currency, cfg.Razorpay.MockAPI)
	}

	authService := services.NewAuthService(repos.Admins, tokens)
	artifacts := services.NewArtifactWorker(repos.Users, repos.Tickets, cfg.Artifacts.Dir, cfg.Artifacts.URLPrefix, cfg.Artifacts.RenderTimeout)
	purchases := services.NewPurchaseService(repos.Users, repos.Tickets, cfg.Razorpay.KeySecret, artifacts)
	payments := services.NewPaymentService(gateway)
	ticketAdmin := services.NewTicketAdminService(repos.Users, repos.Tickets)
	exports := services.NewExportService(repos.Users, repos.Tickets)
	winners := services.NewWinnerService(repos.Winners, repos.Tickets, repos.Users)

	router := routes.SetupRouter(cfg, routes.HandlerDependencies{
		AuthHandler:        handlers.NewAuthHandler(authService, errs),
		TicketHandler:      handlers.NewTicketHandler(purchases, errs),
		PaymentHandler:     handlers.NewPaymentHandler(payments, errs),
		AdminTicketHandler: handlers.NewAdminTicketHandler(ticketAdmin, artifacts, exports, errs),
		WinnerHandler:      handlers.NewWinnerHandler(winners, errs),
		HealthHandler:      handlers.NewHealthHandler(opts.Ping),
		Authenticator:      authService,
	})

	return &App{
		Router:    router,
		Auth:      authService,
		Purchases: purchases,
		Artifacts: artifacts,
	}
}
