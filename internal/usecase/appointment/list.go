package appointment

import (
	"context"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/barber-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-admin/internal/dto"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/timezone"
)

// ListActive devolve a agenda em aberto a partir do espelho.
type ListActive struct {
	mirror Mirror
}

func NewListActive(mirror Mirror) *ListActive {
	return &ListActive{mirror: mirror}
}

func (uc *ListActive) Execute(ctx context.Context, barbershopID uint, date string) ([]dto.AppointmentListDTO, error) {
	active, err := uc.mirror.List(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(active))
	for _, ap := range active {
		if date != "" && ap.Date != date {
			continue
		}
		out = append(out, dto.FromAppointment(ap))
	}
	return out, nil
}

// ListAppointments junta ativos e histórico num intervalo de datas.
type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) ByDate(
	ctx context.Context,
	barbershopID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	if _, err := time.Parse(timezone.DateLayout, date); err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	return uc.period(ctx, barbershopID, date, date)
}

func (uc *ListAppointments) ByMonth(
	ctx context.Context,
	barbershopID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return uc.period(ctx, barbershopID, timezone.Date(first), timezone.Date(last))
}

func (uc *ListAppointments) period(
	ctx context.Context,
	barbershopID uint,
	from string,
	to string,
) ([]dto.AppointmentListDTO, error) {

	active, err := uc.repo.ListAppointmentsForPeriod(ctx, barbershopID, from, to)
	if err != nil {
		return nil, err
	}
	closed, err := uc.repo.ListHistoryForPeriod(ctx, barbershopID, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(active)+len(closed))
	for _, ap := range active {
		out = append(out, dto.FromAppointment(ap))
	}
	for _, h := range closed {
		out = append(out, dto.FromHistory(h))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}
