package notify

import (
	"context"
	"log"
	"sync"
	"time"
)

type Notification struct {
	BarbershopID uint              `json:"barbershop_id"`
	Kind         string            `json:"kind"`
	Title        string            `json:"title"`
	Body         string            `json:"body"`
	Detail       string            `json:"detail"`
	Data         map[string]string `json:"data,omitempty"`
}

type Sink interface {
	Send(ctx context.Context, n Notification) error
}

// Notifier é o que o restante do sistema enxerga: dispara e esquece.
type Notifier interface {
	Notify(n Notification)
}

// Dispatcher entrega notificações às sinks em background. Notify nunca
// bloqueia nem falha quem chamou: fila cheia descarta.
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	queue   chan Notification
	done    chan struct{}
	once    sync.Once
}

func NewDispatcher(sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks:   sinks,
		timeout: 10 * time.Second,
		queue:   make(chan Notification, 256),
		done:    make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for n := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
			if err := s.Send(ctx, n); err != nil {
				log.Printf("notify error kind=%s barbershop=%d: %v", n.Kind, n.BarbershopID, err)
			}
			cancel()
		}
	}
}

func (d *Dispatcher) Notify(n Notification) {
	defer func() {
		// Notify depois de Close: descartamos
		_ = recover()
	}()
	select {
	case d.queue <- n:
	default:
		log.Printf("notify queue full, dropping kind=%s", n.Kind)
	}
}

func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	<-d.done
}

// LogSink só registra no log; útil quando nenhum canal externo está configurado.
type LogSink struct{}

func (LogSink) Send(_ context.Context, n Notification) error {
	log.Printf("notification barbershop=%d kind=%s title=%q body=%q", n.BarbershopID, n.Kind, n.Title, n.Body)
	return nil
}
