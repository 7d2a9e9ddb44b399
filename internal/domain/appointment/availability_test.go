package appointment

import (
	"reflect"
	"testing"
	"time"

	"github.com/BruksfildServices01/barber-admin/internal/models"
	"github.com/BruksfildServices01/barber-admin/internal/timezone"
)

// 2026-03-09 é uma segunda-feira.
const monday = "2026-03-09"

func mondayMorning() *models.BusinessHours {
	return &models.BusinessHours{
		Weekday:      1,
		MorningStart: "08:00",
		MorningEnd:   "12:00",
		Active:       true,
	}
}

func catalog() []models.Service {
	return []models.Service{
		{ID: 1, Name: "Corte", DurationMinutes: 30},
		{ID: 2, Name: "Combo Prata", DurationMinutes: 45},
		{ID: 3, Name: "Barba", DurationMinutes: 15},
	}
}

func booked(id, start, end string) models.Appointment {
	return models.Appointment{
		ID:             id,
		ProfessionalID: 7,
		Date:           monday,
		StartTime:      start,
		EndTime:        end,
		Status:         string(StatusScheduled),
	}
}

func starts(slots []TimeSlot) []string {
	out := []string{}
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

func TestComputeAvailableSlots_ThirtyMinuteService(t *testing.T) {
	slots := ComputeAvailableSlots(SlotQuery{
		ProfessionalID: 7,
		Date:           monday,
		ServiceIDs:     []uint{1},
		Services:       catalog(),
		Appointments:   []models.Appointment{booked("a1", "09:00", "09:30")},
		Hours:          mondayMorning(),
	})

	want := []string{"08:00", "08:30", "09:30", "10:00", "10:30", "11:00", "11:30"}
	if got := starts(slots); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for _, s := range slots {
		if s.Period != PeriodMorning {
			t.Fatalf("slot %s tagged %s", s.Start, s.Period)
		}
	}
}

func TestComputeAvailableSlots_StepFollowsDuration(t *testing.T) {
	slots := ComputeAvailableSlots(SlotQuery{
		ProfessionalID: 7,
		Date:           monday,
		ServiceIDs:     []uint{2},
		Services:       catalog(),
		Appointments:   []models.Appointment{booked("a1", "09:00", "09:30")},
		Hours:          mondayMorning(),
	})

	want := []string{"08:00", "09:30", "10:15", "11:00"}
	if got := starts(slots); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if slots[1].End != "10:15" {
		t.Fatalf("unexpected end for %s: %s", slots[1].Start, slots[1].End)
	}
}

func TestComputeAvailableSlots_TodayCutoff(t *testing.T) {
	loc := timezone.Location("America/Sao_Paulo")
	now := time.Date(2026, 3, 9, 14, 50, 0, 0, loc)

	hours := &models.BusinessHours{
		Weekday:        1,
		MorningStart:   "08:00",
		MorningEnd:     "12:00",
		AfternoonStart: "13:00",
		AfternoonEnd:   "18:00",
		Active:         true,
	}

	slots := ComputeAvailableSlots(SlotQuery{
		ProfessionalID: 7,
		Date:           monday,
		ServiceIDs:     []uint{1},
		Services:       catalog(),
		Hours:          hours,
		Now:            now,
		LeadMinutes:    15,
	})

	if len(slots) == 0 || slots[0].Start != "15:30" {
		t.Fatalf("expected first slot 15:30, got %v", starts(slots))
	}
	for _, s := range slots {
		if s.Start < "15:30" {
			t.Fatalf("slot %s offered before cutoff", s.Start)
		}
		if s.Period != PeriodAfternoon {
			t.Fatalf("slot %s tagged %s", s.Start, s.Period)
		}
	}
}

func TestComputeAvailableSlots_OtherDayIgnoresCutoff(t *testing.T) {
	loc := timezone.Location("America/Sao_Paulo")
	now := time.Date(2026, 3, 8, 23, 0, 0, 0, loc)

	slots := ComputeAvailableSlots(SlotQuery{
		ProfessionalID: 7,
		Date:           monday,
		ServiceIDs:     []uint{1},
		Services:       catalog(),
		Hours:          mondayMorning(),
		Now:            now,
	})
	if len(slots) != 8 || slots[0].Start != "08:00" {
		t.Fatalf("unexpected slots: %v", starts(slots))
	}
}

func TestComputeAvailableSlots_ClosedDay(t *testing.T) {
	// 2026-03-08 é domingo
	sunday := &models.BusinessHours{Weekday: 0, MorningStart: "08:00", MorningEnd: "12:00", Active: false}

	for _, ids := range [][]uint{{1}, {2}, {1, 2, 3}, {99}} {
		slots := ComputeAvailableSlots(SlotQuery{
			ProfessionalID: 7,
			Date:           "2026-03-08",
			ServiceIDs:     ids,
			Services:       catalog(),
			Hours:          sunday,
		})
		if slots == nil || len(slots) != 0 {
			t.Fatalf("closed day returned %v for %v", slots, ids)
		}
	}
}

func TestComputeAvailableSlots_DegradedInputs(t *testing.T) {
	cases := []struct {
		name  string
		query SlotQuery
	}{
		{"no services", SlotQuery{ProfessionalID: 7, Date: monday, Hours: mondayMorning()}},
		{"no hours", SlotQuery{ProfessionalID: 7, Date: monday, ServiceIDs: []uint{1}}},
		{"bad date", SlotQuery{ProfessionalID: 7, Date: "09/03/2026", ServiceIDs: []uint{1}, Hours: mondayMorning()}},
		{"weekday mismatch", SlotQuery{ProfessionalID: 7, Date: "2026-03-10", ServiceIDs: []uint{1}, Hours: mondayMorning()}},
		{"fully booked", SlotQuery{
			ProfessionalID: 7, Date: monday, ServiceIDs: []uint{1}, Services: catalog(), Hours: mondayMorning(),
			Appointments: []models.Appointment{booked("a1", "08:00", "12:00")},
		}},
	}
	for _, tt := range cases {
		if got := ComputeAvailableSlots(tt.query); len(got) != 0 {
			t.Fatalf("%s: expected no slots, got %v", tt.name, starts(got))
		}
	}
}

func TestComputeAvailableSlots_UnknownServiceFallsBack(t *testing.T) {
	slots := ComputeAvailableSlots(SlotQuery{
		ProfessionalID: 7,
		Date:           monday,
		ServiceIDs:     []uint{99},
		Services:       catalog(),
		Hours:          mondayMorning(),
	})
	if len(slots) != 8 || slots[1].Start != "08:30" {
		t.Fatalf("expected a 30 minute grid, got %v", starts(slots))
	}
}

func TestComputeAvailableSlots_ExcludesOwnAppointment(t *testing.T) {
	q := SlotQuery{
		ProfessionalID: 7,
		Date:           monday,
		ServiceIDs:     []uint{1},
		Services:       catalog(),
		Appointments:   []models.Appointment{booked("self", "09:00", "09:30")},
		Hours:          mondayMorning(),
	}
	if IsOffered(ComputeAvailableSlots(q), "09:00") {
		t.Fatalf("09:00 should be taken")
	}

	q.ExcludeAppointmentID = "self"
	if !IsOffered(ComputeAvailableSlots(q), "09:00") {
		t.Fatalf("own appointment should not block the edit")
	}
}

func TestComputeAvailableSlots_IgnoresOtherProfessionalsAndClosed(t *testing.T) {
	other := booked("a1", "08:00", "09:00")
	other.ProfessionalID = 8
	cancelled := booked("a2", "09:00", "10:00")
	cancelled.Status = string(StatusCancelled)
	otherDay := booked("a3", "10:00", "11:00")
	otherDay.Date = "2026-03-16"

	slots := ComputeAvailableSlots(SlotQuery{
		ProfessionalID: 7,
		Date:           monday,
		ServiceIDs:     []uint{1},
		Services:       catalog(),
		Appointments:   []models.Appointment{other, cancelled, otherDay},
		Hours:          mondayMorning(),
	})
	if len(slots) != 8 {
		t.Fatalf("expected full grid, got %v", starts(slots))
	}
}

func TestComputeAvailableSlots_Properties(t *testing.T) {
	hours := &models.BusinessHours{
		Weekday:        1,
		MorningStart:   "08:10",
		MorningEnd:     "12:00",
		AfternoonStart: "13:30",
		AfternoonEnd:   "19:00",
		Active:         true,
	}
	existing := []models.Appointment{
		booked("a1", "09:00", "09:45"),
		booked("a2", "14:00", "15:00"),
		booked("a3", "17:20", "17:50"),
	}

	for _, ids := range [][]uint{{1}, {2}, {3}, {1, 3}, {1, 2}, {1, 2, 3}} {
		duration := TotalDuration(ids, catalog())
		slots := ComputeAvailableSlots(SlotQuery{
			ProfessionalID: 7,
			Date:           monday,
			ServiceIDs:     ids,
			Services:       catalog(),
			Appointments:   existing,
			Hours:          hours,
		})

		prev := -1
		for _, s := range slots {
			start, _ := timezone.ParseHM(s.Start)
			end := start + duration

			var pStart, pEnd string
			if s.Period == PeriodMorning {
				pStart, pEnd = hours.MorningStart, hours.MorningEnd
			} else {
				pStart, pEnd = hours.AfternoonStart, hours.AfternoonEnd
			}
			ps, _ := timezone.ParseHM(pStart)
			pe, _ := timezone.ParseHM(pEnd)
			if start < ps || end > pe {
				t.Fatalf("%v: slot %s outside its period", ids, s.Start)
			}

			for _, ap := range existing {
				as, _ := timezone.ParseHM(ap.StartTime)
				ae, _ := timezone.ParseHM(ap.EndTime)
				if start < ae && end > as {
					t.Fatalf("%v: slot %s overlaps %s-%s", ids, s.Start, ap.StartTime, ap.EndTime)
				}
			}

			if start <= prev {
				t.Fatalf("%v: slots out of order", ids)
			}
			prev = start
		}
	}
}

func TestTotalDuration(t *testing.T) {
	cases := []struct {
		ids  []uint
		want int
	}{
		{[]uint{1}, 30},
		{[]uint{3}, 30},
		{[]uint{1, 3}, 45},
		{[]uint{1, 2}, 75},
		{[]uint{99}, 30},
		{[]uint{3, 99}, 45},
		{nil, 30},
	}
	for _, tt := range cases {
		if got := TotalDuration(tt.ids, catalog()); got != tt.want {
			t.Fatalf("TotalDuration(%v)=%d, want %d", tt.ids, got, tt.want)
		}
	}
}

func TestEarliestStart(t *testing.T) {
	loc := time.UTC
	cases := []struct {
		now      time.Time
		duration int
		want     string
	}{
		{time.Date(2026, 3, 9, 14, 50, 0, 0, loc), 30, "15:30"},
		{time.Date(2026, 3, 9, 14, 45, 0, 0, loc), 30, "15:00"},
		{time.Date(2026, 3, 9, 14, 45, 1, 0, loc), 30, "15:30"},
		{time.Date(2026, 3, 9, 14, 50, 0, 0, loc), 45, "15:45"},
	}
	for _, tt := range cases {
		if got := timezone.FormatHM(earliestStart(tt.now, 15, tt.duration)); got != tt.want {
			t.Fatalf("earliestStart(%s, %d)=%s, want %s", tt.now.Format("15:04:05"), tt.duration, got, tt.want)
		}
	}
}
