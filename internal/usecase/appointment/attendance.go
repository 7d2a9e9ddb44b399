package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-admin/internal/audit"
	domain "github.com/BruksfildServices01/barber-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/models"
)

// MarkAttendance liga ou desliga "cliente confirmou presença". Agendamento
// com presença confirmada não é pego pela varredura da meia-noite.
type MarkAttendance struct {
	repo   domain.Repository
	mirror Mirror
	audit  *audit.Dispatcher
}

func NewMarkAttendance(
	repo domain.Repository,
	mirror Mirror,
	audit *audit.Dispatcher,
) *MarkAttendance {
	return &MarkAttendance{repo: repo, mirror: mirror, audit: audit}
}

func (uc *MarkAttendance) Execute(
	ctx context.Context,
	barbershopID uint,
	userID *uint,
	appointmentID string,
	confirmed bool,
) (*models.Appointment, error) {

	if err := uc.repo.SetClientConfirmed(ctx, barbershopID, appointmentID, confirmed); err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, barbershopID, appointmentID)
	if err != nil || ap == nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	uc.mirror.Upsert(*ap)

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       userID,
		Action:       "appointment_attendance",
		Entity:       "appointment",
		EntityID:     ap.ID,
		Metadata:     map[string]any{"client_confirmed": confirmed},
	})

	return ap, nil
}
