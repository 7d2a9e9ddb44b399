package appointment

import (
	"github.com/BruksfildServices01/barber-admin/internal/models"
	"github.com/BruksfildServices01/barber-admin/internal/timezone"
)

// SelectNoShows escolhe os agendamentos que a varredura da meia-noite deve
// marcar como não comparecimento: ainda "scheduled", sem confirmação do
// cliente e datados de ontem. Em modo catchUp vale qualquer data anterior a hoje.
func SelectNoShows(active []models.Appointment, today string, catchUp bool) []models.Appointment {
	yesterday := timezone.AddDays(today, -1)

	var out []models.Appointment
	for _, ap := range active {
		if Status(ap.Status) != StatusScheduled || ap.ClientConfirmed {
			continue
		}
		if catchUp {
			if ap.Date >= today {
				continue
			}
		} else if ap.Date != yesterday {
			continue
		}
		out = append(out, ap)
	}
	return out
}
