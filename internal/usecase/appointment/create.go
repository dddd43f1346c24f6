package appointment

import (
	"context"
	"time"

	"github.com/salonops/salon-manager/internal/audit"
	domain "github.com/salonops/salon-manager/internal/domain/appointment"
	"github.com/salonops/salon-manager/internal/httperr"
	"github.com/salonops/salon-manager/internal/models"
	"github.com/salonops/salon-manager/internal/timezone"
)

// Bookings closer than this to the start time are rejected.
const minAdvanceMinutes = 120

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	LocationID uint
	StaffID    uint
	ServiceID  uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	loc, err := uc.repo.GetLocationByID(ctx, in.LocationID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeLocationNotFound)
	}
	if !loc.Active {
		return nil, httperr.ErrBusiness("location_inactive")
	}

	// Date and time are interpreted in the location's timezone.
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(loc.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := timezone.NowIn(loc.Timezone)
	if start.Before(now.Add(minAdvanceMinutes * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}

	join, err := uc.repo.GetLocationService(ctx, svc.ID, loc.ID)
	if err != nil {
		return nil, err
	}
	if join == nil || !join.Active {
		return nil, httperr.ErrBusiness("service_not_offered_at_location")
	}

	assigned, err := uc.repo.IsStaffAssignedToLocation(ctx, in.StaffID, loc.ID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, httperr.ErrBusiness("staff_not_at_location")
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	ok, err := uc.repo.IsWithinWorkingHours(ctx, in.StaffID, start, end)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.AssertNoTimeConflict(ctx, in.StaffID, start, end); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		LocationID: loc.ID,
		StaffID:    in.StaffID,
		ClientID:   client.ID,
		ServiceID:  svc.ID,
		StartTime:  start,
		EndTime:    end,
		Status:     string(domain.InitialStatus()),
		Notes:      in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		LocationID: &loc.ID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
