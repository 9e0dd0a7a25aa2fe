package routes

import (
	"github.com/ArowuTest/lottery-ticket-backend/internal/config"
	"github.com/ArowuTest/lottery-ticket-backend/internal/handlers"
	"github.com/ArowuTest/lottery-ticket-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies holds the handlers and the admin authenticator the router mounts
type HandlerDependencies struct {
	AuthHandler        *handlers.AuthHandler
	TicketHandler      *handlers.TicketHandler
	PaymentHandler     *handlers.PaymentHandler
	AdminTicketHandler *handlers.AdminTicketHandler
	WinnerHandler      *handlers.WinnerHandler
	HealthHandler      *handlers.HealthHandler
	Authenticator      middleware.Authenticator
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(cfg))

	// Rendered ticket images
	if cfg.Artifacts.URLPrefix != "" && cfg.Artifacts.Dir != "" {
		router.Static(cfg.Artifacts.URLPrefix, cfg.Artifacts.Dir)
	}

	adminOnly := middleware.AdminAuthMiddleware(deps.Authenticator)

	api := router.Group("/api")
	{
		api.GET("/health", deps.HealthHandler.Health)

		admin := api.Group("/admin")
		{
			admin.POST("/signup", deps.AuthHandler.Signup)
			admin.POST("/login", deps.AuthHandler.Login)

			tickets := admin.Group("/tickets", adminOnly)
			{
				tickets.GET("", deps.AdminTicketHandler.ListTickets)
				tickets.GET("/export", deps.AdminTicketHandler.ExportTickets)
				tickets.DELETE("/:ticketId", deps.AdminTicketHandler.DeleteTicket)
				tickets.POST("/:ticketId/artifact", deps.AdminTicketHandler.RerenderArtifact)
			}
		}

		tickets := api.Group("/tickets")
		{
			tickets.POST("/check", deps.TicketHandler.CheckTicket)
			tickets.GET("/purchased-tickets/:schemeId", deps.TicketHandler.PurchasedTickets)
		}

		api.POST("/create-order", deps.PaymentHandler.CreateOrder)
		api.POST("/verify-payment", deps.TicketHandler.VerifyPayment)
		api.GET("/user-tickets/:mobile", deps.TicketHandler.UserTickets)

		winners := api.Group("/winners")
		{
			winners.GET("", deps.WinnerHandler.ListWinners)
			winners.POST("", adminOnly, deps.WinnerHandler.DeclareWinner)
			winners.DELETE("/:winnerId", adminOnly, deps.WinnerHandler.DeleteWinner)
		}
	}

	return router
}
