package appointment

import (
	"bytes"
	"context"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/BruksfildServices01/barber-admin/internal/agenda"
	"github.com/BruksfildServices01/barber-admin/internal/models"
)

func TestMidnightSweep(t *testing.T) {
	tests := []struct {
		name    string
		catchUp bool
		noShows []string
	}{
		{"nightly only yesterday", false, []string{"yesterday"}},
		{"catch-up everything before today", true, []string{"old", "yesterday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			seed(repo, "old", "2026-03-06", "09:00", "09:30")
			seed(repo, "yesterday", "2026-03-09", "09:00", "09:30")
			seed(repo, "attended", "2026-03-09", "10:00", "10:30")
			seed(repo, "today", "2026-03-10", "09:00", "09:30")
			ap := repo.active["attended"]
			ap.ClientConfirmed = true
			repo.active["attended"] = ap

			mirror := agenda.New(repo)
			lc := NewLifecycle(repo, repo, mirror, nil, nil, 3)
			uc := NewMidnightSweep(repo, mirror, lc)
			uc.now = fixed(saoPaulo(2026, 3, 10, 0, 0))

			res, err := uc.Execute(context.Background(), tt.catchUp)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.NoShows != len(tt.noShows) || res.Failed != 0 {
				t.Fatalf("unexpected result %+v", res)
			}

			got := map[string]string{}
			for _, h := range repo.history {
				got[h.AppointmentID] = h.Status
			}
			for _, id := range tt.noShows {
				if got[id] != "no_show" {
					t.Fatalf("%s should be no_show, history=%v", id, got)
				}
				if _, ok := repo.active[id]; ok {
					t.Fatalf("%s should leave the active table", id)
				}
			}
			for _, id := range []string{"attended", "today"} {
				if _, ok := repo.active[id]; !ok {
					t.Fatalf("%s must not be touched", id)
				}
			}
		})
	}
}

func TestSweepUsesEachShopTimezone(t *testing.T) {
	repo := newFakeRepo()
	repo.shops[2] = models.Barbershop{ID: 2, Slug: "manaus", Timezone: "America/Manaus"}
	repo.professionals[20] = models.Professional{ID: 20, BarbershopID: 2, Active: true}

	seed(repo, "sp", "2026-03-09", "09:00", "09:30")
	repo.active["am"] = models.Appointment{ID: "am", BarbershopID: 2, ProfessionalID: 20, Date: "2026-03-09", StartTime: "09:00", EndTime: "09:30", Status: "scheduled"}

	mirror := agenda.New(repo)
	uc := NewMidnightSweep(repo, mirror, NewLifecycle(repo, repo, mirror, nil, nil, 3))

	// 00:30 em São Paulo ainda é 23:30 do dia 9 em Manaus
	uc.now = fixed(saoPaulo(2026, 3, 10, 0, 30))

	if _, err := uc.Execute(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.active["sp"]; ok {
		t.Fatalf("São Paulo appointment should be swept")
	}
	if _, ok := repo.active["am"]; !ok {
		t.Fatalf("Manaus appointment is still today there")
	}
}

func TestListAppointmentsMergesHistory(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, "b", "2026-03-09", "10:00", "10:30")
	repo.history = []models.AppointmentHistory{confirmedHistory("a", "1", "2026-03-09")}
	repo.history[0].StartTime = "09:00"
	seed(repo, "april", "2026-04-01", "09:00", "09:30")

	uc := NewListAppointments(repo)
	out, err := uc.ByMonth(context.Background(), 1, 2026, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0].ID != "a" || out[0].Status != "confirmed" || out[1].ID != "b" {
		t.Fatalf("unexpected list %+v", out)
	}

	if _, err := uc.ByMonth(context.Background(), 1, 2026, 13); err == nil {
		t.Fatalf("expected error for month 13")
	}
	if _, err := uc.ByDate(context.Background(), 1, "ontem"); err == nil {
		t.Fatalf("expected error for bad date")
	}
}

func TestMidnightSweepLogsSummaryOnce(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	repo := newFakeRepo()
	seed(repo, "yesterday", "2026-03-09", "09:00", "09:30")
	mirror := agenda.New(repo)
	uc := NewMidnightSweep(repo, mirror, NewLifecycle(repo, repo, mirror, nil, nil, 3))
	uc.now = fixed(saoPaulo(2026, 3, 10, 0, 0))

	if _, err := uc.Execute(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := strings.Count(buf.String(), "sweep done"); n != 1 {
		t.Fatalf("expected one summary line, got %d:\n%s", n, buf.String())
	}
}
