package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/brasaviva/restaurant-api/internal/audit"
	"github.com/brasaviva/restaurant-api/internal/auth"
	"github.com/brasaviva/restaurant-api/internal/config"
	"github.com/brasaviva/restaurant-api/internal/handlers"
	infraRepo "github.com/brasaviva/restaurant-api/internal/infra/repository"
	"github.com/brasaviva/restaurant-api/internal/infra/tokenstore"
	"github.com/brasaviva/restaurant-api/internal/middleware"
	ucReservation "github.com/brasaviva/restaurant-api/internal/usecase/reservation"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	reservationRepo := infraRepo.NewReservationGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	tokenService := auth.NewService(
		cfg.JWTSecret,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
		tokenstore.NewRedisStore(rdb),
	)

	// ======================================================
	// USE CASES — RESERVATION LIFECYCLE
	// ======================================================
	createReservationUC := ucReservation.NewCreateReservation(
		reservationRepo,
		auditDispatcher,
	)

	updateReservationUC := ucReservation.NewUpdateReservation(
		reservationRepo,
		auditDispatcher,
	)

	patchReservationUC := ucReservation.NewPatchReservation(
		reservationRepo,
		auditDispatcher,
	)

	cancelReservationUC := ucReservation.NewCancelReservation(
		reservationRepo,
		auditDispatcher,
	)

	deleteReservationUC := ucReservation.NewDeleteReservation(
		reservationRepo,
		auditDispatcher,
	)

	findAvailableTablesUC := ucReservation.NewFindAvailableTables(
		reservationRepo,
	)

	deleteClientUC := ucReservation.NewDeleteClient(
		reservationRepo,
		auditDispatcher,
	)

	deleteTableUC := ucReservation.NewDeleteTable(
		reservationRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, tokenService)
	meHandler := handlers.NewMeHandler(db)

	tableHandler := handlers.NewTableHandler(db, deleteTableUC)
	clientHandler := handlers.NewClientHandler(db, deleteClientUC)

	reservationHandler := handlers.NewReservationHandler(
		db,
		createReservationUC,
		updateReservationUC,
		patchReservationUC,
		cancelReservationUC,
		deleteReservationUC,
		findAvailableTablesUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)
		api.POST("/auth/logout", authHandler.Logout)

		// ------------------------------
		// PROTECTED API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// TABLES
			// ------------------------------
			secured.GET("/tables", tableHandler.List)
			secured.GET("/tables/availability", reservationHandler.Availability)
			secured.GET("/tables/:id", tableHandler.Get)
			secured.POST("/tables", tableHandler.Create)
			secured.PUT("/tables/:id", tableHandler.Update)
			secured.PATCH("/tables/:id", tableHandler.Patch)
			secured.DELETE("/tables/:id", tableHandler.Delete)

			// ------------------------------
			// CLIENTS
			// ------------------------------
			secured.GET("/clients", clientHandler.List)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.POST("/clients", clientHandler.Create)
			secured.PUT("/clients/:id", clientHandler.Update)
			secured.PATCH("/clients/:id", clientHandler.Patch)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			// ------------------------------
			// RESERVATIONS
			// ------------------------------
			secured.GET("/reservations", reservationHandler.List)
			secured.GET("/reservations/:id", reservationHandler.Get)
			secured.POST("/reservations", reservationHandler.Create)
			secured.PUT("/reservations/:id", reservationHandler.Update)
			secured.PATCH("/reservations/:id", reservationHandler.Patch)
			secured.PATCH("/reservations/:id/cancel", reservationHandler.Cancel)
			secured.DELETE("/reservations/:id", reservationHandler.Delete)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
