package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonops/salon-manager/internal/analytics"
	"github.com/salonops/salon-manager/internal/audit"
	"github.com/salonops/salon-manager/internal/cache"
	"github.com/salonops/salon-manager/internal/config"
	"github.com/salonops/salon-manager/internal/handlers"
	infraRepo "github.com/salonops/salon-manager/internal/infra/repository"
	"github.com/salonops/salon-manager/internal/middleware"
	"github.com/salonops/salon-manager/internal/payments"
	"github.com/salonops/salon-manager/internal/storage"
	ucAppointment "github.com/salonops/salon-manager/internal/usecase/appointment"
	ucInventory "github.com/salonops/salon-manager/internal/usecase/inventory"
	ucLocation "github.com/salonops/salon-manager/internal/usecase/location"
	ucRelationship "github.com/salonops/salon-manager/internal/usecase/relationship"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	invCache *cache.InventoryCache,
	images *storage.ImageStore,
	checkout *payments.Checkout,
) {

	// ======================================================
	// 🌍 GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	inventoryRepo := infraRepo.NewInventoryGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	inventoryAggregator := analytics.NewInventoryAggregator(db, invCache, cfg.LowStockThreshold)

	// ======================================================
	// 🧠 USE CASES — INVENTORY
	// ======================================================
	adjustStockUC := ucInventory.NewAdjustStock(
		inventoryRepo,
		auditDispatcher,
		invCache,
	)

	transferStockUC := ucInventory.NewTransferStock(
		inventoryRepo,
		auditDispatcher,
		invCache,
	)

	repairStockUC := ucInventory.NewRepairStock(
		inventoryRepo,
		auditDispatcher,
		invCache,
	)

	// ======================================================
	// 🧠 USE CASES — RELATIONSHIPS / LOCATIONS
	// ======================================================
	synchronizer := ucRelationship.NewSynchronizer(db, auditDispatcher)
	deduper := ucLocation.NewDeduper(db, auditDispatcher)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	locationHandler := handlers.NewLocationHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	staffHandler := handlers.NewStaffHandler(db)
	clientHandler := handlers.NewClientHandler(db)

	productHandler := handlers.NewProductHandler(db)
	productImageHandler := handlers.NewProductImageHandler(db, images)

	inventoryHandler := handlers.NewInventoryHandler(
		adjustStockUC,
		transferStockUC,
		repairStockUC,
		inventoryRepo,
	)

	syncHandler := handlers.NewSyncHandler(synchronizer)
	maintenanceHandler := handlers.NewMaintenanceHandler(deduper)
	analyticsHandler := handlers.NewAnalyticsHandler(db, inventoryAggregator)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		availabilityUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
	)

	transactionHandler := handlers.NewTransactionHandler(db, checkout, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, createAppointmentUC, availabilityUC)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 PUBLIC API (client portal)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/locations", publicHandler.ListLocations)
			publicAPI.GET("/locations/:id/services", publicHandler.ListServices)
			publicAPI.GET("/locations/:id/staff", publicHandler.ListStaff)
			publicAPI.GET("/locations/:id/availability", publicHandler.Availability)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// LOCATIONS
			// ------------------------------
			secured.GET("/locations", locationHandler.List)
			secured.POST("/locations", locationHandler.Create)
			secured.GET("/locations/:id", locationHandler.Get)
			secured.PATCH("/locations/:id", locationHandler.Update)
			secured.DELETE("/locations/:id", locationHandler.Delete)

			// ------------------------------
			// SERVICES
			// ------------------------------
			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			// ------------------------------
			// STAFF
			// ------------------------------
			secured.GET("/staff", staffHandler.List)
			secured.POST("/staff", staffHandler.Create)
			secured.GET("/staff/:id", staffHandler.Get)
			secured.PATCH("/staff/:id", staffHandler.Update)
			secured.DELETE("/staff/:id", staffHandler.Delete)
			secured.GET("/staff/:id/locations", staffHandler.Locations)

			// ------------------------------
			// CLIENTS
			// ------------------------------
			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)

			// ------------------------------
			// PRODUCTS
			// ------------------------------
			secured.GET("/products", productHandler.List)
			secured.POST("/products", productHandler.Create)
			secured.GET("/products/:id", productHandler.Get)
			secured.PATCH("/products/:id", productHandler.Update)
			secured.DELETE("/products/:id", productHandler.Delete)
			secured.POST("/products/:id/image", productImageHandler.Upload)

			// ------------------------------
			// INVENTORY
			// ------------------------------
			secured.POST("/inventory/adjust", inventoryHandler.Adjust)
			secured.POST("/inventory/transfer", inventoryHandler.Transfer)
			secured.POST("/inventory/repair", inventoryHandler.Repair)
			secured.GET("/inventory/stock", inventoryHandler.Stock)
			secured.GET("/inventory/movements", inventoryHandler.Movements)

			// ------------------------------
			// RELATIONSHIP SYNC
			// ------------------------------
			secured.POST("/sync-service-locations", syncHandler.SyncServiceLocations)
			secured.GET("/sync-service-locations", syncHandler.ServiceLocationStats)
			secured.POST("/sync-staff-locations", syncHandler.SyncStaffLocations)
			secured.GET("/sync-staff-locations", syncHandler.StaffLocationStats)

			// ------------------------------
			// LOCATION MAINTENANCE
			// ------------------------------
			secured.POST("/cleanup-locations", maintenanceHandler.CleanupLocations)
			secured.POST("/fix-locations", maintenanceHandler.FixLocations)
			secured.POST("/migrate-location-refs", maintenanceHandler.MigrateLocationRefs)

			// ------------------------------
			// ANALYTICS
			// ------------------------------
			secured.GET("/analytics/inventory", analyticsHandler.Inventory)
			secured.GET("/analytics/revenue", analyticsHandler.Revenue)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/appointments/availability", appointmentHandler.Availability)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			// ------------------------------
			// TRANSACTIONS
			// ------------------------------
			secured.GET("/transactions", transactionHandler.List)
			secured.POST("/transactions", transactionHandler.Create)
			secured.GET("/transactions/:id", transactionHandler.Get)
			secured.POST("/transactions/:id/checkout", transactionHandler.Checkout)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
