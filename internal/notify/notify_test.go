package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/BruksfildServices01/barber-admin/internal/models"
)

type recordingSink struct {
	mu   sync.Mutex
	got  []Notification
	fail bool
}

func (s *recordingSink) Send(_ context.Context, n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, n)
	if s.fail {
		return errors.New("unreachable")
	}
	return nil
}

func TestDispatcherFansOutToEverySink(t *testing.T) {
	failing := &recordingSink{fail: true}
	ok := &recordingSink{}
	d := NewDispatcher(failing, ok, LogSink{})

	d.Notify(NewAppointment(&models.Appointment{ID: "ap-1", BarbershopID: 4, ClientName: "Ana", StartTime: "09:00"}))
	d.Notify(NewActiveClient(&models.Client{ID: 2, BarbershopID: 4, Name: "Ana", TotalAppointments: 3}))
	d.Close()

	if len(failing.got) != 2 || len(ok.got) != 2 {
		t.Fatalf("expected both sinks to receive 2 notifications, got %d and %d", len(failing.got), len(ok.got))
	}
	if ok.got[0].Kind != KindNewAppointment || ok.got[0].Data["appointment_id"] != "ap-1" {
		t.Fatalf("unexpected first notification: %+v", ok.got[0])
	}

	d.Notify(Notification{Kind: "late"})
}

func TestCancelledNotificationCarriesReason(t *testing.T) {
	n := Cancelled(&models.AppointmentHistory{AppointmentID: "ap-9", BarbershopID: 1, Reason: "chuva"})
	if n.Kind != KindCancelled || n.Detail != "chuva" || n.Data["appointment_id"] != "ap-9" {
		t.Fatalf("unexpected notification: %+v", n)
	}
}

func TestTopic(t *testing.T) {
	if Topic(12) != "barbershop-12" {
		t.Fatalf("unexpected topic %s", Topic(12))
	}
}
