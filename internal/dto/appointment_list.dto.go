package dto

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-admin/internal/models"
)

type AppointmentListDTO struct {
	ID              string          `json:"id"`
	ProfessionalID  uint            `json:"professional_id"`
	Date            string          `json:"date"`
	StartTime       string          `json:"start_time"`
	EndTime         string          `json:"end_time"`
	Status          string          `json:"status"`
	ClientName      string          `json:"client_name"`
	ClientPhone     string          `json:"client_phone"`
	Service         string          `json:"service"`
	Value           decimal.Decimal `json:"value"`
	ClientConfirmed bool            `json:"client_confirmed"`
	Reason          string          `json:"reason,omitempty"`
}

func FromAppointment(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:              ap.ID,
		ProfessionalID:  ap.ProfessionalID,
		Date:            ap.Date,
		StartTime:       ap.StartTime,
		EndTime:         ap.EndTime,
		Status:          ap.Status,
		ClientName:      ap.ClientName,
		ClientPhone:     ap.ClientPhone,
		Service:         ap.Service,
		Value:           ap.Value,
		ClientConfirmed: ap.ClientConfirmed,
	}
}

// FromHistory usa o id do agendamento original, não o do registro de histórico.
func FromHistory(h models.AppointmentHistory) AppointmentListDTO {
	return AppointmentListDTO{
		ID:              h.AppointmentID,
		ProfessionalID:  h.ProfessionalID,
		Date:            h.Date,
		StartTime:       h.StartTime,
		EndTime:         h.EndTime,
		Status:          h.Status,
		ClientName:      h.ClientName,
		ClientPhone:     h.ClientPhone,
		Service:         h.Service,
		Value:           h.Value,
		ClientConfirmed: h.ClientConfirmed,
		Reason:          h.Reason,
	}
}
