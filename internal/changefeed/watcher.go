package changefeed

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/models"
	"github.com/BruksfildServices01/barber-admin/internal/notify"
)

type AppointmentLoader interface {
	GetAppointment(ctx context.Context, barbershopID uint, appointmentID string) (*models.Appointment, error)
}

const (
	maxAttempts       = 5
	defaultRetryDelay = 2 * time.Second
)

type Mirror interface {
	Upsert(ap models.Appointment)
}

// Watcher junta as fontes, descarta repetidos, atualiza o espelho da agenda
// e avisa a equipe de cada agendamento novo exatamente uma vez.
type Watcher struct {
	sources  []Source
	guard    Guard
	store    AppointmentLoader
	mirror   Mirror
	notifier notify.Notifier

	retryDelay time.Duration
}

func NewWatcher(
	store AppointmentLoader,
	mirror Mirror,
	notifier notify.Notifier,
	guard Guard,
	sources ...Source,
) *Watcher {
	if guard == nil {
		guard = NewMemoryGuard(0)
	}
	return &Watcher{
		sources:  sources,
		guard:    guard,
		store:    store,
		mirror:     mirror,
		notifier:   notifier,
		retryDelay: defaultRetryDelay,
	}
}

// Run bloqueia até o ctx terminar.
func (w *Watcher) Run(ctx context.Context) {
	changes := make(chan Change, 64)

	var wg sync.WaitGroup
	for _, src := range w.sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			if err := src.Run(ctx, changes); err != nil && ctx.Err() == nil {
				log.Printf("changefeed source stopped: %v", err)
			}
		}(src)
	}

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case c := <-changes:
			if err := w.Handle(ctx, c); err != nil {
				w.retry(ctx, &wg, changes, c, err)
			}
		}
	}
}

// retry devolve a mudança ao canal depois de um intervalo. A fonte já
// avançou o cursor, então sem isso o aviso se perderia.
func (w *Watcher) retry(ctx context.Context, wg *sync.WaitGroup, changes chan<- Change, c Change, cause error) {
	c.attempt++
	if c.attempt >= maxAttempts {
		log.Printf("changefeed giving up appointment=%s after %d attempts: %v", c.AppointmentID, c.attempt, cause)
		return
	}
	log.Printf("changefeed retry appointment=%s attempt=%d: %v", c.AppointmentID, c.attempt, cause)

	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			return
		case <-time.After(w.retryDelay * time.Duration(c.attempt)):
		}
		select {
		case <-ctx.Done():
		case changes <- c:
		}
	}()
}

// Handle processa uma mudança. Devolve erro só quando vale tentar de novo;
// agendamento que já sumiu não é erro.
func (w *Watcher) Handle(ctx context.Context, c Change) error {
	ap, err := w.store.GetAppointment(ctx, c.BarbershopID, c.AppointmentID)
	if httperr.IsBusiness(err, "appointment_not_found") || (err == nil && ap == nil) {
		// já fechado ou removido antes de ser observado
		return nil
	}
	if err != nil {
		return err
	}

	first, err := w.guard.First(ctx, ap.ID)
	if err != nil {
		return err
	}
	if !first {
		return nil
	}

	w.mirror.Upsert(*ap)
	if w.notifier != nil {
		w.notifier.Notify(notify.NewAppointment(ap))
	}
	return nil
}
