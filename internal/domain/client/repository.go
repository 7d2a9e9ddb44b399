package client

import (
	"context"

	"github.com/BruksfildServices01/barber-admin/internal/models"
)

type Repository interface {
	ConfirmedStats(ctx context.Context, barbershopID uint, key Key) (Stats, error)

	// FindClient devolve nil sem erro quando não há cadastro.
	FindClient(ctx context.Context, barbershopID uint, key Key) (*models.Client, error)
	CreateClient(ctx context.Context, c *models.Client) error
	UpdateClient(ctx context.Context, c *models.Client) error

	GetSetting(ctx context.Context, barbershopID uint, key string) (string, bool, error)
}
