package appointment

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/barber-admin/internal/models"
	"github.com/BruksfildServices01/barber-admin/internal/timezone"
)

const (
	// duração assumida para serviço que não existe mais no catálogo
	FallbackServiceMinutes = 30
	MinimumTotalMinutes    = 30
	DefaultLeadMinutes     = 15
)

type Period string

const (
	PeriodMorning   Period = "Manhã"
	PeriodAfternoon Period = "Tarde"
)

type AvailabilityInput struct {
	BarbershopID         uint
	ProfessionalID       uint
	ServiceIDs           []uint
	Date                 time.Time
	ExcludeAppointmentID string
}

type TimeSlot struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Period Period `json:"period"`
}

// SlotQuery reúne tudo que o cálculo de horários precisa; nada é buscado
// aqui dentro.
type SlotQuery struct {
	ProfessionalID       uint
	Date                 string
	ServiceIDs           []uint
	Services             []models.Service
	Appointments         []models.Appointment
	Hours                *models.BusinessHours
	ExcludeAppointmentID string
	Now                  time.Time
	LeadMinutes          int
}

// TotalDuration soma a duração dos serviços escolhidos, com 30 min para ids
// desconhecidos e piso de 30 min no total.
func TotalDuration(ids []uint, services []models.Service) int {
	byID := make(map[uint]models.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}

	total := 0
	for _, id := range ids {
		s, ok := byID[id]
		if !ok || s.DurationMinutes <= 0 {
			total += FallbackServiceMinutes
			continue
		}
		total += s.DurationMinutes
	}

	if total < MinimumTotalMinutes {
		total = MinimumTotalMinutes
	}
	return total
}

type period struct {
	name       Period
	start, end int
}

func periodsFor(wh *models.BusinessHours) []period {
	var out []period
	add := func(name Period, start, end string) {
		s, ok1 := timezone.ParseHM(start)
		e, ok2 := timezone.ParseHM(end)
		if ok1 && ok2 && e > s {
			out = append(out, period{name: name, start: s, end: e})
		}
	}
	add(PeriodMorning, wh.MorningStart, wh.MorningEnd)
	add(PeriodAfternoon, wh.AfternoonStart, wh.AfternoonEnd)
	return out
}

type interval struct {
	start, end int
}

func busyIntervals(q SlotQuery) []interval {
	var out []interval
	for _, ap := range q.Appointments {
		if Status(ap.Status) != StatusScheduled {
			continue
		}
		if ap.ProfessionalID != q.ProfessionalID || ap.Date != q.Date {
			continue
		}
		if q.ExcludeAppointmentID != "" && ap.ID == q.ExcludeAppointmentID {
			continue
		}
		s, ok1 := timezone.ParseHM(ap.StartTime)
		e, ok2 := timezone.ParseHM(ap.EndTime)
		if !ok1 || !ok2 {
			continue
		}
		out = append(out, interval{start: s, end: e})
	}
	return out
}

// earliestStart é o primeiro minuto reservável hoje: agora + antecedência,
// arredondado para cima ao próximo múltiplo da duração total.
func earliestStart(now time.Time, lead, duration int) int {
	minutes := now.Hour()*60 + now.Minute()
	if now.Second() > 0 || now.Nanosecond() > 0 {
		minutes++
	}
	minutes += lead

	if rem := minutes % duration; rem != 0 {
		minutes += duration - rem
	}
	return minutes
}

// ComputeAvailableSlots devolve, em ordem cronológica, os horários livres do
// profissional na data. Dia fechado, nenhum serviço ou agenda cheia resultam
// em lista vazia, nunca em erro.
func ComputeAvailableSlots(q SlotQuery) []TimeSlot {
	slots := []TimeSlot{}

	if len(q.ServiceIDs) == 0 || q.Hours == nil || !q.Hours.Active {
		return slots
	}

	day, err := time.Parse(timezone.DateLayout, q.Date)
	if err != nil || int(day.Weekday()) != q.Hours.Weekday {
		return slots
	}

	duration := TotalDuration(q.ServiceIDs, q.Services)

	minStart := 0
	if !q.Now.IsZero() && timezone.Date(q.Now) == q.Date {
		lead := q.LeadMinutes
		if lead <= 0 {
			lead = DefaultLeadMinutes
		}
		minStart = earliestStart(q.Now, lead, duration)
	}

	busy := busyIntervals(q)
	seen := map[int]bool{}

	for _, p := range periodsFor(q.Hours) {
		for start := p.start; start+duration <= p.end; start += duration {
			end := start + duration

			if start < minStart || seen[start] {
				continue
			}

			conflict := false
			for _, b := range busy {
				if start < b.end && end > b.start {
					conflict = true
					break
				}
			}
			if conflict {
				continue
			}

			seen[start] = true
			slots = append(slots, TimeSlot{
				Start:  timezone.FormatHM(start),
				End:    timezone.FormatHM(end),
				Period: p.name,
			})
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Start < slots[j].Start
	})

	return slots
}

// IsOffered diz se start está entre os horários calculados.
func IsOffered(slots []TimeSlot, start string) bool {
	for _, s := range slots {
		if s.Start == start {
			return true
		}
	}
	return false
}
