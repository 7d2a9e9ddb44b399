package appointment

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-admin/internal/domain/client"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/models"
	"github.com/BruksfildServices01/barber-admin/internal/notify"
	"github.com/BruksfildServices01/barber-admin/internal/timezone"
)

// fakeRepo guarda tudo em memória e imita a recheca de conflito da transação.
type fakeRepo struct {
	mu sync.Mutex

	shops         map[uint]models.Barbershop
	professionals map[uint]models.Professional
	services      []models.Service
	hours         map[int]models.BusinessHours
	active        map[string]models.Appointment
	history       []models.AppointmentHistory
	clients       []models.Client
	settings      map[string]string

	// ListAppointmentsForDay não enxerga nada, simulando uma corrida
	staleReads bool

	insertHistoryErr error
	deleteErr        error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shops: map[uint]models.Barbershop{
			1: {ID: 1, Name: "Navalha", Slug: "navalha", Timezone: timezone.DefaultTimezone, MinAdvanceMinutes: 15},
		},
		professionals: map[uint]models.Professional{
			10: {ID: 10, BarbershopID: 1, Name: "João", Active: true},
			11: {ID: 11, BarbershopID: 1, Name: "Pedro", Active: false},
		},
		services: []models.Service{
			{ID: 1, BarbershopID: 1, Name: "Corte", DurationMinutes: 30, Price: decimal.RequireFromString("35.00"), Active: true},
			{ID: 2, BarbershopID: 1, Name: "Barba", DurationMinutes: 15, Price: decimal.RequireFromString("20.00"), Active: true},
		},
		hours: map[int]models.BusinessHours{
			0: {BarbershopID: 1, Weekday: 0, Active: false, MorningStart: "08:00", MorningEnd: "12:00"},
			1: {BarbershopID: 1, Weekday: 1, Active: true, MorningStart: "08:00", MorningEnd: "12:00"},
		},
		active:   map[string]models.Appointment{},
		settings: map[string]string{},
	}
}

var errNotFound = errors.New("record not found")

func (f *fakeRepo) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.shops[id]
	if !ok {
		return nil, errNotFound
	}
	return &s, nil
}

func (f *fakeRepo) GetBarbershopBySlug(_ context.Context, slug string) (*models.Barbershop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.shops {
		if s.Slug == slug {
			return &s, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRepo) ListBarbershops(_ context.Context) ([]models.Barbershop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Barbershop
	for _, s := range f.shops {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) GetProfessional(_ context.Context, shop, id uint) (*models.Professional, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.professionals[id]
	if !ok || p.BarbershopID != shop {
		return nil, errNotFound
	}
	return &p, nil
}

func (f *fakeRepo) ListServices(_ context.Context, _ uint) ([]models.Service, error) {
	return f.services, nil
}

func (f *fakeRepo) GetBusinessHours(_ context.Context, _ uint, weekday int) (*models.BusinessHours, error) {
	wh, ok := f.hours[weekday]
	if !ok {
		return nil, nil
	}
	return &wh, nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, shop uint, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ap, ok := f.active[id]
	if !ok || ap.BarbershopID != shop {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return &ap, nil
}

func (f *fakeRepo) ListAppointmentsForDay(_ context.Context, shop, prof uint, date string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.staleReads {
		return nil, nil
	}
	var out []models.Appointment
	for _, ap := range f.active {
		if ap.BarbershopID == shop && ap.ProfessionalID == prof && ap.Date == date {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListActive(_ context.Context, shop uint) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, ap := range f.active {
		if ap.BarbershopID == shop {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, shop uint, from, to string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, ap := range f.active {
		if ap.BarbershopID == shop && ap.Date >= from && ap.Date <= to {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListHistoryForPeriod(_ context.Context, shop uint, from, to string) ([]models.AppointmentHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AppointmentHistory
	for _, h := range f.history {
		if h.BarbershopID == shop && h.Date >= from && h.Date <= to {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListCreatedSince(_ context.Context, _ time.Time, _ int) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeRepo) overlaps(ap *models.Appointment) bool {
	s, _ := timezone.ParseHM(ap.StartTime)
	e, _ := timezone.ParseHM(ap.EndTime)
	for _, other := range f.active {
		if other.ID == ap.ID || other.ProfessionalID != ap.ProfessionalID || other.Date != ap.Date {
			continue
		}
		os, _ := timezone.ParseHM(other.StartTime)
		oe, _ := timezone.ParseHM(other.EndTime)
		if s < oe && e > os {
			return true
		}
	}
	return false
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.overlaps(ap) {
		return httperr.ErrBusiness("time_conflict")
	}
	ap.CreatedAt = time.Now()
	f.active[ap.ID] = *ap
	return nil
}

func (f *fakeRepo) RescheduleAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.active[ap.ID]; !ok {
		return httperr.ErrBusiness("appointment_not_found")
	}
	if f.overlaps(ap) {
		return httperr.ErrBusiness("time_conflict")
	}
	f.active[ap.ID] = *ap
	return nil
}

func (f *fakeRepo) SetClientConfirmed(_ context.Context, shop uint, id string, confirmed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ap, ok := f.active[id]
	if !ok || ap.BarbershopID != shop {
		return httperr.ErrBusiness("appointment_not_found")
	}
	ap.ClientConfirmed = confirmed
	f.active[id] = ap
	return nil
}

func (f *fakeRepo) DeleteAppointment(_ context.Context, _ uint, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.active, id)
	return nil
}

func (f *fakeRepo) InsertHistory(_ context.Context, h *models.AppointmentHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertHistoryErr != nil {
		return f.insertHistoryErr
	}
	for _, existing := range f.history {
		if existing.AppointmentID == h.AppointmentID {
			return errors.New("duplicate key")
		}
	}
	f.history = append(f.history, *h)
	return nil
}

func (f *fakeRepo) ClosedAppointmentIDs(_ context.Context, _ uint, ids []string) (map[string]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := map[string]bool{}
	for _, h := range f.history {
		if want[h.AppointmentID] {
			out[h.AppointmentID] = true
		}
	}
	return out, nil
}

// -------- client.Repository --------

func matches(key client.Key, phone, taxID string) bool {
	if key.Phone != "" {
		return phone == key.Phone
	}
	return taxID == key.TaxID
}

func (f *fakeRepo) ConfirmedStats(_ context.Context, shop uint, key client.Key) (client.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var st client.Stats
	for _, h := range f.history {
		if h.BarbershopID != shop || h.Status != "confirmed" || !matches(key, h.ClientPhone, h.ClientTaxID) {
			continue
		}
		st.Confirmed++
		if st.FirstDate == "" || h.Date < st.FirstDate {
			st.FirstDate = h.Date
		}
		if h.Date > st.LastDate {
			st.LastDate = h.Date
		}
	}
	return st, nil
}

func (f *fakeRepo) FindClient(_ context.Context, shop uint, key client.Key) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.clients {
		if c.BarbershopID == shop && matches(key, c.Phone, c.TaxID) {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) CreateClient(_ context.Context, c *models.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = uint(len(f.clients) + 1)
	f.clients = append(f.clients, *c)
	return nil
}

func (f *fakeRepo) UpdateClient(_ context.Context, c *models.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.clients {
		if f.clients[i].ID == c.ID {
			f.clients[i] = *c
		}
	}
	return nil
}

func (f *fakeRepo) GetSetting(_ context.Context, _ uint, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.settings[key]
	return v, ok, nil
}

// -------- notify --------

type fakeNotifier struct {
	mu  sync.Mutex
	got []notify.Notification
}

func (n *fakeNotifier) Notify(x notify.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.got = append(n.got, x)
}

func (n *fakeNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, x := range n.got {
		out = append(out, x.Kind)
	}
	return out
}

// -------- helpers --------

func saoPaulo(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, timezone.Location(timezone.DefaultTimezone))
}

func fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

func seed(f *fakeRepo, id, date, start, end string) {
	f.active[id] = models.Appointment{
		ID:             id,
		BarbershopID:   1,
		ProfessionalID: 10,
		ClientName:     "Cliente " + id,
		ClientPhone:    "5511900000" + id,
		Date:           date,
		StartTime:      start,
		EndTime:        end,
		Value:          decimal.RequireFromString("35.00"),
		Status:         "scheduled",
	}
}

func timezoneDate(date string) (time.Time, error) {
	return timezone.ParseDate(timezone.DefaultTimezone, date)
}
