package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salonops/salon-manager/internal/audit"
	"github.com/salonops/salon-manager/internal/cache"
	"github.com/salonops/salon-manager/internal/config"
	dbpkg "github.com/salonops/salon-manager/internal/db"
	infraRepo "github.com/salonops/salon-manager/internal/infra/repository"
	"github.com/salonops/salon-manager/internal/jobs"
	"github.com/salonops/salon-manager/internal/payments"
	"github.com/salonops/salon-manager/internal/routes"
	"github.com/salonops/salon-manager/internal/storage"
	ucInventory "github.com/salonops/salon-manager/internal/usecase/inventory"
	ucRelationship "github.com/salonops/salon-manager/internal/usecase/relationship"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	invCache := cache.NewInventoryCache(cfg)
	images := storage.NewImageStore(cfg)

	checkout, err := payments.NewCheckout(cfg)
	if err != nil {
		log.Fatalf("failed to configure payments: %v", err)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, invCache, images, checkout)

	// Nightly maintenance: relationship sync plus a negative stock scan.
	if cfg.MaintenanceCron != "" {
		dispatcher := audit.NewDispatcher(audit.New(db))
		inventoryRepo := infraRepo.NewInventoryGormRepository(db)

		scheduler := jobs.NewScheduler(
			ucRelationship.NewSynchronizer(db, dispatcher),
			ucInventory.NewRepairStock(inventoryRepo, dispatcher, invCache),
		)
		if err := scheduler.Start(cfg.MaintenanceCron); err != nil {
			log.Fatalf("failed to start maintenance scheduler: %v", err)
		}
		defer scheduler.Stop()
	}

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
