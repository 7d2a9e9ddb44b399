package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/models"
	"github.com/BruksfildServices01/barber-admin/internal/timezone"
)

type Repository interface {
	GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error)
	CountActiveForDate(ctx context.Context, barbershopID uint, date string) (int64, error)
	SumConfirmedValue(ctx context.Context, barbershopID uint, fromDate, toDate string) (decimal.Decimal, error)
	CountConfirmed(ctx context.Context, barbershopID uint, fromDate, toDate string) (int64, error)
	CountActiveProfessionals(ctx context.Context, barbershopID uint) (int64, error)
	CountActiveClients(ctx context.Context, barbershopID uint) (int64, error)
}

type Summary struct {
	Date               string          `json:"date"`
	AgendaToday        int64           `json:"agenda_today"`
	ConfirmedToday     int64           `json:"confirmed_today"`
	RevenueToday       decimal.Decimal `json:"revenue_today"`
	RevenueMonth       decimal.Decimal `json:"revenue_month"`
	AverageTicketMonth decimal.Decimal `json:"average_ticket_month"`
	ActiveProfessional int64           `json:"active_professionals"`
	ActiveClients      int64           `json:"active_clients"`
}

// Dashboard resume o dia e o mês corrente no fuso da barbearia. Receita só
// conta atendimentos confirmados (histórico).
type Dashboard struct {
	repo Repository
	now  func() time.Time
}

func NewDashboard(repo Repository) *Dashboard {
	return &Dashboard{repo: repo, now: time.Now}
}

func (uc *Dashboard) Execute(ctx context.Context, barbershopID uint) (*Summary, error) {
	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, httperr.ErrBusiness("barbershop_not_found")
	}

	local := timezone.In(uc.now(), shop.Timezone)
	today := timezone.Date(local)
	monthStart := timezone.Date(time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, local.Location()))

	out := &Summary{Date: today}

	if out.AgendaToday, err = uc.repo.CountActiveForDate(ctx, shop.ID, today); err != nil {
		return nil, err
	}
	if out.ConfirmedToday, err = uc.repo.CountConfirmed(ctx, shop.ID, today, today); err != nil {
		return nil, err
	}
	if out.RevenueToday, err = uc.repo.SumConfirmedValue(ctx, shop.ID, today, today); err != nil {
		return nil, err
	}
	if out.RevenueMonth, err = uc.repo.SumConfirmedValue(ctx, shop.ID, monthStart, today); err != nil {
		return nil, err
	}

	confirmedMonth, err := uc.repo.CountConfirmed(ctx, shop.ID, monthStart, today)
	if err != nil {
		return nil, err
	}
	out.AverageTicketMonth = decimal.Zero
	if confirmedMonth > 0 {
		out.AverageTicketMonth = out.RevenueMonth.Div(decimal.NewFromInt(confirmedMonth)).Round(2)
	}

	if out.ActiveProfessional, err = uc.repo.CountActiveProfessionals(ctx, shop.ID); err != nil {
		return nil, err
	}
	if out.ActiveClients, err = uc.repo.CountActiveClients(ctx, shop.ID); err != nil {
		return nil, err
	}

	return out, nil
}
