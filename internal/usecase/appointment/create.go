package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/barber-admin/internal/audit"
	domain "github.com/BruksfildServices01/barber-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

// CreateAppointment atende o painel e a página pública. A notificação de
// novo agendamento não sai daqui: vem do change feed, para as duas origens
// serem tratadas igual.
type CreateAppointment struct {
	repo   domain.Repository
	mirror Mirror
	audit  *audit.Dispatcher
	now    Clock
}

func NewCreateAppointment(
	repo domain.Repository,
	mirror Mirror,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		mirror: mirror,
		audit:  audit,
		now:    time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in BookingInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Campos obrigatórios
	// --------------------------------------------------
	if err := in.validate(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Barbearia
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, httperr.ErrBusiness("barbershop_not_found")
	}

	// --------------------------------------------------
	// 3. Serviços conhecidos e ativos
	// --------------------------------------------------
	services, err := uc.repo.ListServices(ctx, shop.ID)
	if err != nil {
		return nil, err
	}
	if err := checkSelection(in.ServiceIDs, services); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Horário ainda oferecido?
	// --------------------------------------------------
	start := normalizeHM(in.Time)
	slots, err := computeSlots(ctx, uc.repo, shop, uc.now(), in.ProfessionalID, in.Date, in.ServiceIDs, "")
	if err != nil {
		return nil, err
	}
	if !domain.IsOffered(slots, start) {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	// --------------------------------------------------
	// 5. Descrição, valor, fim
	// --------------------------------------------------
	sel := price(in.ServiceIDs, services)

	ap := &models.Appointment{
		ID:             uuid.NewString(),
		BarbershopID:   shop.ID,
		ProfessionalID: in.ProfessionalID,
		ClientName:     in.ClientName,
		ClientPhone:    in.ClientPhone,
		ClientTaxID:    in.ClientTaxID,
		Service:        sel.description,
		ServiceIDs:     datatypes.JSON(encodeIDs(in.ServiceIDs)),
		Date:           in.Date,
		StartTime:      start,
		EndTime:        endTime(start, sel.duration),
		Value:          sel.value,
		Status:         string(domain.InitialStatus()),
		Notes:          in.Notes,
	}

	// --------------------------------------------------
	// 6. Persistência (recheca conflito com o profissional travado)
	// --------------------------------------------------
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			uc.audit.Dispatch(audit.Event{
				BarbershopID: shop.ID,
				UserID:       in.UserID,
				Action:       "appointment_conflict",
				Entity:       "appointment",
				Metadata: map[string]any{
					"professional_id": in.ProfessionalID,
					"date":            in.Date,
					"start":           start,
				},
			})
		}
		return nil, err
	}

	uc.mirror.Upsert(*ap)

	// --------------------------------------------------
	// 7. Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       in.UserID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     ap.ID,
	})

	return ap, nil
}
