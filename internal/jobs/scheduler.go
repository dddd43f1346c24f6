package jobs

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	ucinventory "github.com/salonops/salon-manager/internal/usecase/inventory"
	"github.com/salonops/salon-manager/internal/usecase/relationship"
)

// Scheduler runs the nightly maintenance pass: converge the
// relationship fan-outs and clamp any stock drift. All three steps are
// idempotent, so a missed or repeated run is harmless.
type Scheduler struct {
	cron *cron.Cron

	synchronizer *relationship.Synchronizer
	repair       *ucinventory.RepairStock
}

func NewScheduler(
	synchronizer *relationship.Synchronizer,
	repair *ucinventory.RepairStock,
) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		synchronizer: synchronizer,
		repair:       repair,
	}
}

func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		return nil
	}

	if _, err := s.cron.AddFunc(spec, s.runMaintenance); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("maintenance scheduler running (%s)", spec)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runMaintenance() {
	ctx := context.Background()

	if res, err := s.synchronizer.SyncServiceLocations(ctx); err != nil {
		log.Println("maintenance: service sync failed:", err)
	} else if res.Created > 0 {
		log.Printf("maintenance: created %d service-location rows", res.Created)
	}

	if res, err := s.synchronizer.SyncStaffLocations(ctx); err != nil {
		log.Println("maintenance: staff sync failed:", err)
	} else if res.Created > 0 {
		log.Printf("maintenance: created %d staff-location rows", res.Created)
	}

	if res, err := s.repair.Execute(ctx, nil); err != nil {
		log.Println("maintenance: stock repair failed:", err)
	} else if res.ClampedRows > 0 {
		log.Printf("maintenance: clamped %d negative stock rows", res.ClampedRows)
	}
}
