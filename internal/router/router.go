// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lotchain/supplytrace-backend/internal/config"
	"github.com/lotchain/supplytrace-backend/internal/handlers"
	"github.com/lotchain/supplytrace-backend/internal/middleware"
	"github.com/lotchain/supplytrace-backend/internal/services"
	"github.com/lotchain/supplytrace-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	registryService := services.NewRegistryService(db, notificationService)
	lotService := services.NewLotService(db, notificationService)
	transferService := services.NewTransferService(db, notificationService)
	queryService := services.NewQueryService(db)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, registryService)
	participantHandler := handlers.NewParticipantHandler(registryService, queryService)
	lotHandler := handlers.NewLotHandler(lotService, storageService, notificationService)
	transferHandler := handlers.NewTransferHandler(transferService, notificationService)
	adminHandler := handlers.NewAdminHandler(adminService, authService, registryService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Participant routes
		participants := v1.Group("/participants")
		{
			participants.GET("/:address", participantHandler.GetParticipant)
			participants.GET("/:address/lots", participantHandler.GetParticipantLots)
			participants.GET("/:address/transfers", participantHandler.GetParticipantTransfers)

			protected := participants.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("/role", participantHandler.RequestRole)
			}
		}

		// Lot routes
		lots := v1.Group("/lots")
		{
			lots.GET("/:id", lotHandler.GetLot)
			lots.GET("/:id/balances/:address", lotHandler.GetBalance)
			lots.GET("/:id/events", lotHandler.GetLotEvents)

			protected := lots.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", lotHandler.CreateLot)
				protected.POST("/:id/documents", middleware.UploadRateLimit(), lotHandler.UploadDocuments)
			}
		}

		// Transfer routes
		transfers := v1.Group("/transfers")
		{
			transfers.GET("/:id", transferHandler.GetTransfer)
			transfers.GET("/:id/events", transferHandler.GetTransferEvents)

			protected := transfers.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", transferHandler.InitiateTransfer)
				protected.PUT("/:id/accept", transferHandler.AcceptTransfer)
				protected.PUT("/:id/reject", transferHandler.RejectTransfer)
			}
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/dashboard/stats", adminHandler.GetDashboardStats)
			admin.GET("/participants", adminHandler.GetParticipants)
			admin.PUT("/participants/:address/status", adminHandler.SetParticipantStatus)
			admin.GET("/events", adminHandler.GetEvents)
		}
	}

	return r
}
