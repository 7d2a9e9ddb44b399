package changefeed

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/BruksfildServices01/barber-admin/internal/models"
)

// Change aponta um agendamento recém-criado.
type Change struct {
	BarbershopID  uint   `json:"barbershop_id"`
	AppointmentID string `json:"id"`

	attempt int
}

type Source interface {
	Run(ctx context.Context, out chan<- Change) error
}

type CreatedLister interface {
	ListCreatedSince(ctx context.Context, since time.Time, limit int) ([]models.Appointment, error)
}

// ============================
// POLLING
// ============================

// PollSource consulta a tabela de ativos a cada intervalo, a partir do
// momento em que subiu. O cursor é inclusivo; o guard descarta repetidos.
type PollSource struct {
	store    CreatedLister
	interval time.Duration
	limit    int
	now      func() time.Time
}

func NewPollSource(store CreatedLister, interval time.Duration) *PollSource {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &PollSource{store: store, interval: interval, limit: 200, now: time.Now}
}

func (s *PollSource) Run(ctx context.Context, out chan<- Change) error {
	cursor := s.now()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		fetchCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		created, err := s.store.ListCreatedSince(fetchCtx, cursor, s.limit)
		cancel()
		if err != nil {
			log.Printf("changefeed poll error: %v", err)
			continue
		}

		for _, ap := range created {
			if ap.CreatedAt.After(cursor) {
				cursor = ap.CreatedAt
			}
			select {
			case out <- Change{BarbershopID: ap.BarbershopID, AppointmentID: ap.ID}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// ============================
// LISTEN / NOTIFY
// ============================

const Channel = "agendamentos_changes"

// ListenSource escuta o NOTIFY disparado pelo trigger de inserção. Conexão
// perdida é refeita após retry.
type ListenSource struct {
	dsn   string
	retry time.Duration
}

func NewListenSource(dsn string) *ListenSource {
	return &ListenSource{dsn: dsn, retry: 5 * time.Second}
}

func (s *ListenSource) Run(ctx context.Context, out chan<- Change) error {
	for {
		err := s.listen(ctx, out)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("changefeed listen error: %v", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.retry):
		}
	}
}

func (s *ListenSource) listen(ctx context.Context, out chan<- Change) error {
	conn, err := pgx.Connect(ctx, s.dsn)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+Channel); err != nil {
		return err
	}

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}

		change, ok := ParsePayload(n.Payload)
		if !ok {
			log.Printf("changefeed: ignoring payload %q", n.Payload)
			continue
		}

		select {
		case out <- change:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func ParsePayload(payload string) (Change, bool) {
	var c Change
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return Change{}, false
	}
	if c.AppointmentID == "" || c.BarbershopID == 0 {
		return Change{}, false
	}
	return c, true
}
