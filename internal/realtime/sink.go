package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/barber-admin/internal/notify"
)

type envelope struct {
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Detail    string            `json:"detail,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// HubSink repassa notificações para o painel aberto no navegador.
type HubSink struct {
	hub *Hub
	now func() time.Time
}

var _ notify.Sink = (*HubSink)(nil)

func NewHubSink(hub *Hub) *HubSink {
	return &HubSink{hub: hub, now: time.Now}
}

func (s *HubSink) Send(_ context.Context, n notify.Notification) error {
	payload, err := json.Marshal(envelope{
		Type:      n.Kind,
		Title:     n.Title,
		Body:      n.Body,
		Detail:    n.Detail,
		Data:      n.Data,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return err
	}
	s.hub.Broadcast(n.BarbershopID, payload)
	return nil
}
