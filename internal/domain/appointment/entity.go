package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-admin/internal/models"
)

const (
	DefaultCancelReason = "Cancelado pelo estabelecimento"
	NoShowReason        = "Cliente não compareceu"
)

// ===============================
// Domain Actions
// ===============================

// Close aplica uma transição terminal e monta o registro de histórico.
// O agendamento ativo não é alterado; quem chama decide quando removê-lo.
func Close(
	ap *models.Appointment,
	action Action,
	now time.Time,
	reason string,
) (*models.AppointmentHistory, error) {

	to, err := Transition(action, Status(ap.Status))
	if err != nil {
		return nil, err
	}

	if reason == "" {
		switch action {
		case ActionCancel:
			reason = DefaultCancelReason
		case ActionNoShow:
			reason = NoShowReason
		}
	}

	return &models.AppointmentHistory{
		ID:              uuid.NewString(),
		AppointmentID:   ap.ID,
		BarbershopID:    ap.BarbershopID,
		ProfessionalID:  ap.ProfessionalID,
		ClientName:      ap.ClientName,
		ClientPhone:     ap.ClientPhone,
		ClientTaxID:     ap.ClientTaxID,
		Service:         ap.Service,
		Date:            ap.Date,
		StartTime:       ap.StartTime,
		EndTime:         ap.EndTime,
		Value:           ap.Value,
		Status:          string(to),
		ClientConfirmed: ap.ClientConfirmed,
		Notes:           ap.Notes,
		Reason:          reason,
		ClosedAt:        now,
	}, nil
}
