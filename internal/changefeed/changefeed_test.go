package changefeed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/models"
	"github.com/BruksfildServices01/barber-admin/internal/notify"
)

type fakeStore struct {
	mu      sync.Mutex
	byID    map[string]models.Appointment
	created []models.Appointment
	since   []time.Time

	// falhas de conexão antes de responder
	failures int
}

func (f *fakeStore) GetAppointment(_ context.Context, shop uint, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("connection reset by peer")
	}
	ap, ok := f.byID[id]
	if !ok || ap.BarbershopID != shop {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return &ap, nil
}

func (f *fakeStore) ListCreatedSince(_ context.Context, since time.Time, _ int) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.since = append(f.since, since)
	var out []models.Appointment
	for _, ap := range f.created {
		if !ap.CreatedAt.Before(since) {
			out = append(out, ap)
		}
	}
	return out, nil
}

type fakeMirror struct {
	mu   sync.Mutex
	seen []string
}

func (m *fakeMirror) Upsert(ap models.Appointment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = append(m.seen, ap.ID)
}

type fakeNotifier struct {
	mu  sync.Mutex
	got []notify.Notification
}

func (n *fakeNotifier) Notify(x notify.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.got = append(n.got, x)
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.got)
}

func TestHandleNotifiesOnce(t *testing.T) {
	store := &fakeStore{byID: map[string]models.Appointment{
		"a1": {ID: "a1", BarbershopID: 1, ClientName: "Ana", Date: "2026-03-09", StartTime: "09:00"},
	}}
	mirror := &fakeMirror{}
	notifier := &fakeNotifier{}
	w := NewWatcher(store, mirror, notifier, NewMemoryGuard(8))

	ctx := context.Background()
	w.Handle(ctx, Change{BarbershopID: 1, AppointmentID: "a1"})
	w.Handle(ctx, Change{BarbershopID: 1, AppointmentID: "a1"})
	w.Handle(ctx, Change{BarbershopID: 1, AppointmentID: "missing"})
	w.Handle(ctx, Change{BarbershopID: 2, AppointmentID: "a1"})

	if notifier.count() != 1 {
		t.Fatalf("expected one notification, got %d", notifier.count())
	}
	if notifier.got[0].Kind != notify.KindNewAppointment || notifier.got[0].Data["appointment_id"] != "a1" {
		t.Fatalf("unexpected notification %+v", notifier.got[0])
	}
	if len(mirror.seen) != 1 {
		t.Fatalf("mirror should be updated once, got %v", mirror.seen)
	}
}

func TestMemoryGuardEvictsOldest(t *testing.T) {
	g := NewMemoryGuard(2)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if ok, _ := g.First(ctx, id); !ok {
			t.Fatalf("%s should be new", id)
		}
	}
	if ok, _ := g.First(ctx, "c"); ok {
		t.Fatalf("c is a repeat")
	}
	if ok, _ := g.First(ctx, "a"); !ok {
		t.Fatalf("a should have been evicted")
	}
}

func TestParsePayload(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{`{"id":"x","barbershop_id":3}`, true},
		{`{"id":"","barbershop_id":3}`, false},
		{`{"id":"x"}`, false},
		{`not json`, false},
	}
	for _, tt := range tests {
		if _, ok := ParsePayload(tt.in); ok != tt.ok {
			t.Fatalf("ParsePayload(%q) ok=%v want %v", tt.in, ok, tt.ok)
		}
	}
}

func TestPollSourceAdvancesCursor(t *testing.T) {
	start := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{created: []models.Appointment{
		{ID: "old", BarbershopID: 1, CreatedAt: start.Add(-time.Minute)},
		{ID: "new", BarbershopID: 1, CreatedAt: start.Add(time.Second)},
	}}
	src := NewPollSource(store, 10*time.Millisecond)
	src.now = func() time.Time { return start }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := make(chan Change, 8)
	go func() { _ = src.Run(ctx, out) }()

	select {
	case c := <-out:
		if c.AppointmentID != "new" {
			t.Fatalf("poll must start from boot time, got %s", c.AppointmentID)
		}
	case <-time.After(time.Second):
		t.Fatalf("no change emitted")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	store := &fakeStore{byID: map[string]models.Appointment{}}
	w := NewWatcher(store, &fakeMirror{}, &fakeNotifier{}, nil, NewPollSource(store, 10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("watcher did not stop")
	}
}

func TestHandleReportsTransientErrors(t *testing.T) {
	store := &fakeStore{
		byID: map[string]models.Appointment{
			"a1": {ID: "a1", BarbershopID: 1, ClientName: "Ana"},
		},
		failures: 1,
	}
	notifier := &fakeNotifier{}
	w := NewWatcher(store, &fakeMirror{}, notifier, NewMemoryGuard(8))
	ctx := context.Background()

	if err := w.Handle(ctx, Change{BarbershopID: 1, AppointmentID: "a1"}); err == nil {
		t.Fatalf("a failed load must be reported")
	}
	if notifier.count() != 0 {
		t.Fatalf("nothing should be sent on a failed load")
	}

	// o guard não ficou marcado, então a próxima tentativa avisa
	if err := w.Handle(ctx, Change{BarbershopID: 1, AppointmentID: "a1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notifier.count() != 1 {
		t.Fatalf("expected one notification, got %d", notifier.count())
	}

	if err := w.Handle(ctx, Change{BarbershopID: 1, AppointmentID: "missing"}); err != nil {
		t.Fatalf("a closed appointment is not an error: %v", err)
	}
}

type onceSource struct {
	change Change
}

func (s onceSource) Run(ctx context.Context, out chan<- Change) error {
	out <- s.change
	<-ctx.Done()
	return nil
}

func TestRunRetriesTransientErrors(t *testing.T) {
	store := &fakeStore{
		byID: map[string]models.Appointment{
			"a1": {ID: "a1", BarbershopID: 1, ClientName: "Ana"},
		},
		failures: 2,
	}
	notifier := &fakeNotifier{}
	w := NewWatcher(store, &fakeMirror{}, notifier, NewMemoryGuard(8),
		onceSource{change: Change{BarbershopID: 1, AppointmentID: "a1"}})
	w.retryDelay = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	deadline := time.After(time.Second)
	for notifier.count() == 0 {
		select {
		case <-deadline:
			cancel()
			t.Fatalf("change was not retried")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done

	if notifier.count() != 1 {
		t.Fatalf("expected one notification, got %d", notifier.count())
	}
}
