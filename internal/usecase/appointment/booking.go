package appointment

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/barber-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/models"
	"github.com/BruksfildServices01/barber-admin/internal/timezone"
)

// BookingInput é comum à criação (painel e página pública) e à edição.
type BookingInput struct {
	BarbershopID   uint
	UserID         *uint
	ProfessionalID uint

	ClientName  string
	ClientPhone string
	ClientTaxID string

	ServiceIDs []uint
	Date       string
	Time       string
	Notes      string
}

// validate roda antes de qualquer acesso ao banco.
func (in *BookingInput) validate() error {
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)
	in.ClientTaxID = strings.TrimSpace(in.ClientTaxID)
	in.Time = strings.TrimSpace(in.Time)
	in.Notes = strings.TrimSpace(in.Notes)

	if in.ClientName == "" || in.ClientPhone == "" {
		return httperr.ErrBusiness("missing_client")
	}
	if len(in.ServiceIDs) == 0 {
		return httperr.ErrBusiness("no_services")
	}
	if in.Time == "" {
		return httperr.ErrBusiness("no_slot")
	}
	if in.ProfessionalID == 0 {
		return httperr.ErrBusiness("professional_not_found")
	}
	if _, err := time.Parse(timezone.DateLayout, in.Date); err != nil {
		return httperr.ErrBusiness("invalid_date_or_time")
	}
	if _, ok := timezone.ParseHM(in.Time); !ok {
		return httperr.ErrBusiness("invalid_date_or_time")
	}
	return nil
}

// checkSelection recusa a seleção quando nenhum id é um serviço conhecido ou
// quando algum id aponta para serviço desativado. Ids que não existem mais
// só são tolerados ao lado de um serviço válido.
func checkSelection(ids []uint, services []models.Service) error {
	byID := make(map[uint]models.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}

	known := 0
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			continue
		}
		if !s.Active {
			return httperr.ErrBusiness("no_services")
		}
		known++
	}
	if known == 0 {
		return httperr.ErrBusiness("no_services")
	}
	return nil
}

type pricedSelection struct {
	description string
	value       decimal.Decimal
	duration    int
}

// price monta descrição ("Corte + Barba"), valor e duração dos serviços
// escolhidos. Ids que não existem mais entram só na duração.
func price(ids []uint, services []models.Service) pricedSelection {
	byID := make(map[uint]models.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}

	var names []string
	value := decimal.Zero
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			continue
		}
		names = append(names, s.Name)
		value = value.Add(s.Price)
	}

	return pricedSelection{
		description: strings.Join(names, " + "),
		value:       value,
		duration:    domain.TotalDuration(ids, services),
	}
}

// endTime soma a duração ao início "HH:MM".
func endTime(start string, duration int) string {
	m, _ := timezone.ParseHM(start)
	return timezone.FormatHM(m + duration)
}

// normalizeHM converte "09:00:00" em "09:00".
func normalizeHM(hm string) string {
	m, _ := timezone.ParseHM(hm)
	return timezone.FormatHM(m)
}
