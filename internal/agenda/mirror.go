package agenda

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/BruksfildServices01/barber-admin/internal/models"
)

type Store interface {
	ListActive(ctx context.Context, barbershopID uint) ([]models.Appointment, error)
	ClosedAppointmentIDs(ctx context.Context, barbershopID uint, appointmentIDs []string) (map[string]bool, error)
	DeleteAppointment(ctx context.Context, barbershopID uint, appointmentID string) error
}

// Mirror mantém em memória os agendamentos ativos de cada barbearia. As
// transições removem o item antes de persistir (Take) e o devolvem em caso
// de falha (Restore); Refresh reconcilia com o banco.
type Mirror struct {
	store Store

	mu       sync.Mutex
	shops    map[uint]map[string]models.Appointment
	inflight map[string]bool

	// fechados enquanto algum Refresh lia o banco; a foto lida pode ser
	// anterior ao fechamento
	refreshing int
	closed     map[string]bool
}

func New(store Store) *Mirror {
	return &Mirror{
		store:    store,
		shops:    make(map[uint]map[string]models.Appointment),
		inflight: make(map[string]bool),
		closed:   make(map[string]bool),
	}
}

// Refresh recarrega a barbearia. Linhas ativas que já têm histórico (sobras
// de um fechamento parcial) são apagadas e ficam fora do espelho.
func (m *Mirror) Refresh(ctx context.Context, barbershopID uint) error {
	m.mu.Lock()
	m.refreshing++
	m.mu.Unlock()

	fresh, err := m.load(ctx, barbershopID)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err == nil {
		for id := range fresh {
			if m.inflight[id] || m.closed[id] {
				delete(fresh, id)
			}
		}
		m.shops[barbershopID] = fresh
	}

	m.refreshing--
	if m.refreshing == 0 {
		m.closed = make(map[string]bool)
	}
	return err
}

func (m *Mirror) load(ctx context.Context, barbershopID uint) (map[string]models.Appointment, error) {
	active, err := m.store.ListActive(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(active))
	for _, ap := range active {
		ids = append(ids, ap.ID)
	}

	closed := map[string]bool{}
	if len(ids) > 0 {
		closed, err = m.store.ClosedAppointmentIDs(ctx, barbershopID, ids)
		if err != nil {
			return nil, err
		}
	}

	fresh := make(map[string]models.Appointment, len(active))
	for _, ap := range active {
		if closed[ap.ID] {
			if err := m.store.DeleteAppointment(ctx, barbershopID, ap.ID); err != nil {
				log.Printf("agenda reconcile barbershop=%d appointment=%s: %v", barbershopID, ap.ID, err)
			}
			continue
		}
		fresh[ap.ID] = ap
	}
	return fresh, nil
}

func (m *Mirror) ensure(ctx context.Context, barbershopID uint) error {
	m.mu.Lock()
	_, ok := m.shops[barbershopID]
	m.mu.Unlock()
	if ok {
		return nil
	}
	return m.Refresh(ctx, barbershopID)
}

// List devolve os ativos ordenados por data e horário.
func (m *Mirror) List(ctx context.Context, barbershopID uint) ([]models.Appointment, error) {
	if err := m.ensure(ctx, barbershopID); err != nil {
		return nil, err
	}

	m.mu.Lock()
	out := make([]models.Appointment, 0, len(m.shops[barbershopID]))
	for _, ap := range m.shops[barbershopID] {
		out = append(out, ap)
	}
	m.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Mirror) take(barbershopID uint, appointmentID string) (models.Appointment, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ap, ok := m.shops[barbershopID][appointmentID]
	if !ok || m.inflight[appointmentID] {
		return models.Appointment{}, false
	}
	delete(m.shops[barbershopID], appointmentID)
	m.inflight[appointmentID] = true
	return ap, true
}

// Take remove o agendamento do espelho e o marca como em transição. Se não
// estiver no espelho, recarrega a barbearia uma vez antes de desistir.
func (m *Mirror) Take(ctx context.Context, barbershopID uint, appointmentID string) (models.Appointment, bool, error) {
	if err := m.ensure(ctx, barbershopID); err != nil {
		return models.Appointment{}, false, err
	}
	if ap, ok := m.take(barbershopID, appointmentID); ok {
		return ap, true, nil
	}

	m.mu.Lock()
	busy := m.inflight[appointmentID]
	m.mu.Unlock()
	if busy {
		return models.Appointment{}, false, nil
	}

	if err := m.Refresh(ctx, barbershopID); err != nil {
		return models.Appointment{}, false, err
	}
	ap, ok := m.take(barbershopID, appointmentID)
	return ap, ok, nil
}

// Restore desfaz um Take após falha de persistência.
func (m *Mirror) Restore(ap models.Appointment) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.inflight, ap.ID)
	if shop, ok := m.shops[ap.BarbershopID]; ok {
		shop[ap.ID] = ap
	}
}

// Done encerra um Take bem-sucedido.
func (m *Mirror) Done(appointmentID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inflight, appointmentID)
	if m.refreshing > 0 {
		m.closed[appointmentID] = true
	}
}

// Upsert grava um agendamento ativo observado (criação, edição ou change feed).
// Barbearias ainda não carregadas ficam para o próximo Refresh.
func (m *Mirror) Upsert(ap models.Appointment) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.inflight[ap.ID] {
		return
	}
	if shop, ok := m.shops[ap.BarbershopID]; ok {
		shop[ap.ID] = ap
	}
}

func (m *Mirror) Contains(barbershopID uint, appointmentID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.shops[barbershopID][appointmentID]
	return ok
}
