package appointment

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/barber-admin/internal/audit"
	domain "github.com/BruksfildServices01/barber-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/models"
)

type RescheduleInput struct {
	BookingInput
	AppointmentID string
}

// RescheduleAppointment edita um agendamento ativo. O próprio horário do
// agendamento não conta como conflito.
type RescheduleAppointment struct {
	repo   domain.Repository
	mirror Mirror
	audit  *audit.Dispatcher
	now    Clock
}

func NewRescheduleAppointment(
	repo domain.Repository,
	mirror Mirror,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:   repo,
		mirror: mirror,
		audit:  audit,
		now:    time.Now,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*models.Appointment, error) {

	if err := in.validate(); err != nil {
		return nil, err
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, httperr.ErrBusiness("barbershop_not_found")
	}

	ap, err := uc.repo.GetAppointment(ctx, shop.ID, in.AppointmentID)
	if err != nil || ap == nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if domain.Status(ap.Status) != domain.StatusScheduled {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	services, err := uc.repo.ListServices(ctx, shop.ID)
	if err != nil {
		return nil, err
	}
	if err := checkSelection(in.ServiceIDs, services); err != nil {
		return nil, err
	}

	start := normalizeHM(in.Time)
	slots, err := computeSlots(ctx, uc.repo, shop, uc.now(), in.ProfessionalID, in.Date, in.ServiceIDs, ap.ID)
	if err != nil {
		return nil, err
	}
	if !domain.IsOffered(slots, start) {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	sel := price(in.ServiceIDs, services)

	before := map[string]any{
		"professional_id": ap.ProfessionalID,
		"date":            ap.Date,
		"start":           ap.StartTime,
	}

	ap.ProfessionalID = in.ProfessionalID
	ap.ClientName = in.ClientName
	ap.ClientPhone = in.ClientPhone
	ap.ClientTaxID = in.ClientTaxID
	ap.Service = sel.description
	ap.ServiceIDs = datatypes.JSON(encodeIDs(in.ServiceIDs))
	ap.Date = in.Date
	ap.StartTime = start
	ap.EndTime = endTime(start, sel.duration)
	ap.Value = sel.value
	ap.Notes = in.Notes

	if err := uc.repo.RescheduleAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.mirror.Upsert(*ap)

	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       in.UserID,
		Action:       "appointment_rescheduled",
		Entity:       "appointment",
		EntityID:     ap.ID,
		Metadata:     map[string]any{"before": before},
	})

	return ap, nil
}
