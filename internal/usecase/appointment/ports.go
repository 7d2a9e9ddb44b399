package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-admin/internal/models"
)

// Mirror é a visão em memória dos ativos (implementada por agenda.Mirror).
type Mirror interface {
	List(ctx context.Context, barbershopID uint) ([]models.Appointment, error)
	Refresh(ctx context.Context, barbershopID uint) error
	Take(ctx context.Context, barbershopID uint, appointmentID string) (models.Appointment, bool, error)
	Restore(ap models.Appointment)
	Done(appointmentID string)
	Upsert(ap models.Appointment)
}

type Clock func() time.Time
