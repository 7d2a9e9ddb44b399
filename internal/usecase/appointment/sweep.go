package appointment

import (
	"context"
	"log"
	"time"

	domain "github.com/BruksfildServices01/barber-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-admin/internal/timezone"
)

type SweepResult struct {
	Barbershops int
	NoShows     int
	Failed      int
}

// MidnightSweep marca como não comparecimento os agendamentos vencidos de
// todas as barbearias, cada uma no seu fuso.
type MidnightSweep struct {
	repo      domain.Repository
	mirror    Mirror
	lifecycle *Lifecycle
	now       Clock
}

func NewMidnightSweep(
	repo domain.Repository,
	mirror Mirror,
	lifecycle *Lifecycle,
) *MidnightSweep {
	return &MidnightSweep{
		repo:      repo,
		mirror:    mirror,
		lifecycle: lifecycle,
		now:       time.Now,
	}
}

// Execute com catchUp=true pega qualquer data anterior a hoje (usado na
// subida do processo); senão, só ontem.
func (uc *MidnightSweep) Execute(ctx context.Context, catchUp bool) (SweepResult, error) {
	var res SweepResult

	shops, err := uc.repo.ListBarbershops(ctx)
	if err != nil {
		return res, err
	}

	now := uc.now()
	for _, shop := range shops {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		res.Barbershops++

		if err := uc.mirror.Refresh(ctx, shop.ID); err != nil {
			log.Printf("sweep refresh error barbershop=%d: %v", shop.ID, err)
			res.Failed++
			continue
		}
		active, err := uc.mirror.List(ctx, shop.ID)
		if err != nil {
			log.Printf("sweep list error barbershop=%d: %v", shop.ID, err)
			res.Failed++
			continue
		}

		today := timezone.Date(timezone.In(now, shop.Timezone))
		for _, ap := range domain.SelectNoShows(active, today, catchUp) {
			if _, err := uc.lifecycle.NoShow(ctx, shop.ID, ap.ID); err != nil {
				log.Printf("sweep no_show error appointment=%s: %v", ap.ID, err)
				res.Failed++
				continue
			}
			res.NoShows++
		}
	}

	log.Printf("sweep done catch_up=%t barbershops=%d no_shows=%d failed=%d",
		catchUp, res.Barbershops, res.NoShows, res.Failed)
	return res, nil
}
