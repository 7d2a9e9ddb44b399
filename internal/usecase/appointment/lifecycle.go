package appointment

import (
	"context"
	"log"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/barber-admin/internal/audit"
	domain "github.com/BruksfildServices01/barber-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-admin/internal/domain/client"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/models"
	"github.com/BruksfildServices01/barber-admin/internal/notify"
	"github.com/BruksfildServices01/barber-admin/internal/telemetry"
	"github.com/BruksfildServices01/barber-admin/internal/timezone"
)

// CloseResult descreve uma transição terminal concluída.
type CloseResult struct {
	History *models.AppointmentHistory `json:"history"`

	// histórico gravado mas a linha ativa não foi apagada; o próximo
	// refresh da agenda resolve
	PendingCleanup bool `json:"pending_cleanup"`

	ActivatedClient *models.Client `json:"activated_client,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

// Lifecycle aplica confirmar, cancelar e não comparecimento. O item sai do
// espelho antes de persistir e volta se o histórico não puder ser gravado.
type Lifecycle struct {
	repo      domain.Repository
	clients   client.Repository
	mirror    Mirror
	notifier  notify.Notifier
	audit     *audit.Dispatcher
	threshold int
	now       Clock
}

func NewLifecycle(
	repo domain.Repository,
	clients client.Repository,
	mirror Mirror,
	notifier notify.Notifier,
	audit *audit.Dispatcher,
	defaultThreshold int,
) *Lifecycle {
	if defaultThreshold <= 0 {
		defaultThreshold = client.DefaultActivationThreshold
	}
	return &Lifecycle{
		repo:      repo,
		clients:   clients,
		mirror:    mirror,
		notifier:  notifier,
		audit:     audit,
		threshold: defaultThreshold,
		now:       time.Now,
	}
}

func (uc *Lifecycle) Confirm(
	ctx context.Context,
	barbershopID uint,
	userID *uint,
	appointmentID string,
) (*CloseResult, error) {

	res, err := uc.close(ctx, barbershopID, userID, appointmentID, domain.ActionConfirm, "")
	if err != nil {
		return nil, err
	}

	res.ActivatedClient = uc.activateClient(ctx, res.History)
	return res, nil
}

func (uc *Lifecycle) Cancel(
	ctx context.Context,
	barbershopID uint,
	userID *uint,
	appointmentID string,
	reason string,
) (*CloseResult, error) {

	res, err := uc.close(ctx, barbershopID, userID, appointmentID, domain.ActionCancel, reason)
	if err != nil {
		return nil, err
	}

	uc.notify(notify.Cancelled(res.History))
	return res, nil
}

// NoShow é usado pela varredura da meia-noite.
func (uc *Lifecycle) NoShow(
	ctx context.Context,
	barbershopID uint,
	appointmentID string,
) (*CloseResult, error) {
	return uc.close(ctx, barbershopID, nil, appointmentID, domain.ActionNoShow, "")
}

// ======================================================
// CLOSE
// ======================================================

func (uc *Lifecycle) close(
	ctx context.Context,
	barbershopID uint,
	userID *uint,
	appointmentID string,
	action domain.Action,
	reason string,
) (*CloseResult, error) {

	ctx, span := telemetry.Tracer().Start(ctx, "appointment."+string(action))
	defer span.End()
	span.SetAttributes(
		attribute.String("appointment.id", appointmentID),
		attribute.Int64("barbershop.id", int64(barbershopID)),
	)

	// --------------------------------------------------
	// 1. Remoção otimista do espelho
	// --------------------------------------------------
	ap, ok, err := uc.mirror.Take(ctx, barbershopID, appointmentID)
	if err != nil {
		log.Printf("lifecycle load error barbershop=%d: %v", barbershopID, err)
		return nil, httperr.ErrBusiness("persistence_failed")
	}
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// --------------------------------------------------
	// 2. Transição
	// --------------------------------------------------
	h, err := domain.Close(&ap, action, uc.now(), reason)
	if err != nil {
		uc.mirror.Restore(ap)
		return nil, err
	}

	// --------------------------------------------------
	// 3. Histórico; falha devolve o item ao espelho
	// --------------------------------------------------
	if err := uc.repo.InsertHistory(ctx, h); err != nil {
		uc.mirror.Restore(ap)
		span.RecordError(err)
		log.Printf("lifecycle history error appointment=%s action=%s: %v", ap.ID, action, err)
		return nil, httperr.ErrBusiness("persistence_failed")
	}

	// --------------------------------------------------
	// 4. Remoção da linha ativa; falha aqui não desfaz nada
	// --------------------------------------------------
	res := &CloseResult{History: h}
	if err := uc.repo.DeleteAppointment(ctx, barbershopID, ap.ID); err != nil {
		log.Printf("lifecycle partial close appointment=%s action=%s: %v", ap.ID, action, err)
		res.PendingCleanup = true
	}
	uc.mirror.Done(ap.ID)

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       userID,
		Action:       "appointment_" + h.Status,
		Entity:       "appointment",
		EntityID:     ap.ID,
		Metadata: map[string]any{
			"history_id":      h.ID,
			"reason":          h.Reason,
			"pending_cleanup": res.PendingCleanup,
		},
	})

	return res, nil
}

// ======================================================
// CLIENT ACTIVATION
// ======================================================

// activateClient recalcula o cliente dono do agendamento confirmado. Erros
// são apenas registrados: a confirmação já foi gravada.
func (uc *Lifecycle) activateClient(ctx context.Context, h *models.AppointmentHistory) *models.Client {
	if uc.clients == nil {
		return nil
	}

	key, ok := client.KeyFor(h.ClientPhone, h.ClientTaxID)
	if !ok {
		return nil
	}

	threshold := uc.thresholdFor(ctx, h.BarbershopID)

	stats, err := uc.clients.ConfirmedStats(ctx, h.BarbershopID, key)
	if err != nil {
		log.Printf("client stats error barbershop=%d: %v", h.BarbershopID, err)
		return nil
	}

	existing, err := uc.clients.FindClient(ctx, h.BarbershopID, key)
	if err != nil {
		log.Printf("client lookup error barbershop=%d: %v", h.BarbershopID, err)
		return nil
	}

	decision := client.Evaluate(existing, stats, threshold)
	switch decision {
	case client.DecisionNone:
		return nil

	case client.DecisionCreate:
		c := &models.Client{
			BarbershopID: h.BarbershopID,
			Name:         h.ClientName,
			Phone:        h.ClientPhone,
			TaxID:        h.ClientTaxID,
			SignupDate:   uc.today(ctx, h.BarbershopID),
		}
		client.Apply(c, stats, decision)
		if err := uc.clients.CreateClient(ctx, c); err != nil {
			log.Printf("client create error barbershop=%d: %v", h.BarbershopID, err)
			return nil
		}
		uc.announce(c)
		return c

	default:
		client.Apply(existing, stats, decision)
		if err := uc.clients.UpdateClient(ctx, existing); err != nil {
			log.Printf("client update error client=%d: %v", existing.ID, err)
			return nil
		}
		if decision == client.DecisionActivate {
			uc.announce(existing)
			return existing
		}
		return nil
	}
}

func (uc *Lifecycle) announce(c *models.Client) {
	uc.notify(notify.NewActiveClient(c))
	uc.audit.Dispatch(audit.Event{
		BarbershopID: c.BarbershopID,
		Action:       "client_activated",
		Entity:       "client",
		EntityID:     strconv.FormatUint(uint64(c.ID), 10),
		Metadata:     map[string]any{"total_appointments": c.TotalAppointments},
	})
}

// thresholdFor lê o limite configurado pela barbearia; valor ausente ou
// inválido usa o padrão do processo.
func (uc *Lifecycle) thresholdFor(ctx context.Context, barbershopID uint) int {
	raw, ok, err := uc.clients.GetSetting(ctx, barbershopID, client.SettingActivationThreshold)
	if err != nil || !ok {
		return uc.threshold
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return uc.threshold
	}
	return n
}

func (uc *Lifecycle) today(ctx context.Context, barbershopID uint) string {
	tz := timezone.DefaultTimezone
	if shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID); err == nil && shop != nil {
		tz = shop.Timezone
	}
	return timezone.Date(timezone.In(uc.now(), tz))
}

func (uc *Lifecycle) notify(n notify.Notification) {
	if uc.notifier != nil {
		uc.notifier.Notify(n)
	}
}
