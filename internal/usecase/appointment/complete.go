package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/salonops/salon-manager/internal/audit"
	domain "github.com/salonops/salon-manager/internal/domain/appointment"
	"github.com/salonops/salon-manager/internal/httperr"
	"github.com/salonops/salon-manager/internal/models"
	"github.com/salonops/salon-manager/internal/timezone"
)

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute marks the appointment completed and records the derived
// transaction: one item, the service at its location price, amount equal
// to the item total. Both rows land in the same database transaction.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	staffID uint,
	appointmentID uint,
	method string,
) (*models.Appointment, *models.Transaction, error) {

	ap, err := uc.repo.GetAppointmentForStaff(ctx, appointmentID, staffID)
	if err != nil {
		return nil, nil, httperr.ErrBusiness("appointment_not_found")
	}

	loc, err := uc.repo.GetLocationByID(ctx, ap.LocationID)
	if err != nil {
		return nil, nil, err
	}

	now := timezone.NowIn(loc.Timezone)
	if err := domain.Complete(ap, now); err != nil {
		return nil, nil, err
	}

	svc, err := uc.repo.GetService(ctx, ap.ServiceID)
	if err != nil {
		return nil, nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}

	join, err := uc.repo.GetLocationService(ctx, svc.ID, ap.LocationID)
	if err != nil {
		return nil, nil, err
	}
	price := join.EffectivePrice(svc.Price)

	if method == "" {
		method = "cash"
	}

	tr := &models.Transaction{
		Reference:     uuid.NewString(),
		AppointmentID: &ap.ID,
		LocationID:    ap.LocationID,
		ClientID:      &ap.ClientID,
		Amount:        price,
		Method:        method,
		Status:        models.TransactionPaid,
		Items: []models.TransactionItem{
			{
				Description: svc.Name,
				Quantity:    1,
				UnitPrice:   price,
				Total:       price,
			},
		},
	}

	if err := uc.repo.CompleteWithTransaction(ctx, ap, tr); err != nil {
		return nil, nil, err
	}

	uc.audit.Dispatch(audit.Event{
		LocationID: &ap.LocationID,
		Action:     "appointment_completed",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata: map[string]any{
			"transaction": tr.Reference,
			"amount":      tr.Amount,
		},
	})

	return ap, tr, nil
}
