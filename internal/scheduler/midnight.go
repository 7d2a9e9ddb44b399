package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/BruksfildServices01/barber-admin/internal/timezone"
)

// Job recebe catchUp=true apenas na execução de partida.
type Job func(ctx context.Context, catchUp bool)

// Midnight roda o job uma vez ao subir, depois na próxima meia-noite do fuso
// configurado e, a partir daí, a cada intervalo (24h).
type Midnight struct {
	tz       string
	job      Job
	interval time.Duration
	now      func() time.Time
}

func NewMidnight(tz string, job Job) *Midnight {
	return &Midnight{
		tz:       tz,
		job:      job,
		interval: 24 * time.Hour,
		now:      time.Now,
	}
}

// untilMidnight mede até a meia-noite do fuso configurado, não a de cada
// barbearia: quem fica a oeste dele só entra na varredura seguinte.
func (m *Midnight) untilMidnight() time.Duration {
	now := timezone.In(m.now(), m.tz)
	return timezone.NextMidnight(now).Sub(now)
}

// Run bloqueia até o ctx terminar; timer e ticker são sempre parados.
func (m *Midnight) Run(ctx context.Context) {
	m.run(ctx, true)

	wait := m.untilMidnight()
	log.Printf("scheduler: next sweep in %s", wait.Round(time.Second))

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}
	m.run(ctx, false)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.run(ctx, false)
		}
	}
}

func (m *Midnight) run(ctx context.Context, catchUp bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("scheduler: job panic: %v", r)
		}
	}()
	if ctx.Err() != nil {
		return
	}
	m.job(ctx, catchUp)
}
