package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/models"
	"github.com/BruksfildServices01/barber-admin/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
	now  Clock
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo, now: time.Now}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, httperr.ErrBusiness("barbershop_not_found")
	}

	return computeSlots(
		ctx,
		uc.repo,
		shop,
		uc.now(),
		in.ProfessionalID,
		in.Date.Format(timezone.DateLayout),
		in.ServiceIDs,
		in.ExcludeAppointmentID,
	)
}

// computeSlots busca os dados do dia e delega ao cálculo puro. Também é o
// que criação e edição usam para rechecar o horário escolhido.
func computeSlots(
	ctx context.Context,
	repo domain.Repository,
	shop *models.Barbershop,
	now time.Time,
	professionalID uint,
	date string,
	serviceIDs []uint,
	excludeID string,
) ([]domain.TimeSlot, error) {

	prof, err := repo.GetProfessional(ctx, shop.ID, professionalID)
	if err != nil || prof == nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}
	if !prof.Active {
		return []domain.TimeSlot{}, nil
	}

	day, err := timezone.ParseDate(shop.Timezone, date)
	if err != nil {
		return []domain.TimeSlot{}, nil
	}

	hours, err := repo.GetBusinessHours(ctx, shop.ID, int(day.Weekday()))
	if err != nil {
		return nil, err
	}
	if hours == nil || !hours.Active {
		return []domain.TimeSlot{}, nil
	}

	services, err := repo.ListServices(ctx, shop.ID)
	if err != nil {
		return nil, err
	}

	booked, err := repo.ListAppointmentsForDay(ctx, shop.ID, professionalID, date)
	if err != nil {
		return nil, err
	}

	return domain.ComputeAvailableSlots(domain.SlotQuery{
		ProfessionalID:       professionalID,
		Date:                 date,
		ServiceIDs:           serviceIDs,
		Services:             services,
		Appointments:         booked,
		Hours:                hours,
		ExcludeAppointmentID: excludeID,
		Now:                  timezone.In(now, shop.Timezone),
		LeadMinutes:          shop.MinAdvanceMinutes,
	}), nil
}
