package appointment

import (
	"context"
	"time"

	"github.com/salonops/salon-manager/internal/models"
)

type Repository interface {
	// -------- Location --------
	GetLocationByID(
		ctx context.Context,
		id uint,
	) (*models.Location, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	// GetLocationService resolves the join row carrying the
	// location-specific price override; nil when the synchronizer has
	// not created the pair yet.
	GetLocationService(
		ctx context.Context,
		serviceID uint,
		locationID uint,
	) (*models.LocationService, error)

	// -------- Staff --------
	IsStaffAssignedToLocation(
		ctx context.Context,
		staffID uint,
		locationID uint,
	) (bool, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForStaff(
		ctx context.Context,
		appointmentID uint,
		staffID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// CompleteWithTransaction persists the completed appointment and
	// its derived transaction in the same database transaction.
	CompleteWithTransaction(
		ctx context.Context,
		ap *models.Appointment,
		tr *models.Transaction,
	) error

	// -------- Availability --------
	GetWorkingHours(
		ctx context.Context,
		staffID uint,
		weekday int,
	) (*models.WorkingHours, error)

	IsWithinWorkingHours(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) (bool, error)

	ListAppointmentsForDay(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
