package notify

import (
	"fmt"
	"strconv"

	"github.com/BruksfildServices01/barber-admin/internal/models"
)

const (
	KindNewAppointment = "new_appointment"
	KindCancelled      = "appointment_cancelled"
	KindNewClient      = "new_active_client"
)

func NewAppointment(ap *models.Appointment) Notification {
	return Notification{
		BarbershopID: ap.BarbershopID,
		Kind:         KindNewAppointment,
		Title:        "Novo agendamento",
		Body:         fmt.Sprintf("%s às %s", ap.ClientName, ap.StartTime),
		Detail:       fmt.Sprintf("%s em %s, %s-%s", ap.Service, ap.Date, ap.StartTime, ap.EndTime),
		Data: map[string]string{
			"appointment_id":  ap.ID,
			"professional_id": strconv.FormatUint(uint64(ap.ProfessionalID), 10),
			"date":            ap.Date,
		},
	}
}

func Cancelled(h *models.AppointmentHistory) Notification {
	return Notification{
		BarbershopID: h.BarbershopID,
		Kind:         KindCancelled,
		Title:        "Agendamento cancelado",
		Body:         fmt.Sprintf("%s, %s às %s", h.ClientName, h.Date, h.StartTime),
		Detail:       h.Reason,
		Data: map[string]string{
			"appointment_id": h.AppointmentID,
			"date":           h.Date,
		},
	}
}

func NewActiveClient(c *models.Client) Notification {
	return Notification{
		BarbershopID: c.BarbershopID,
		Kind:         KindNewClient,
		Title:        "Novo cliente ativo",
		Body:         c.Name,
		Detail:       fmt.Sprintf("%d agendamentos confirmados", c.TotalAppointments),
		Data: map[string]string{
			"client_id": strconv.FormatUint(uint64(c.ID), 10),
			"phone":     c.Phone,
		},
	}
}
