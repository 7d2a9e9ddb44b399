package notify

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"
)

// FCMSink publica no tópico da barbearia; os aparelhos da equipe assinam
// "barbershop-<id>".
type FCMSink struct {
	client *messaging.Client
}

func NewFCMSink(ctx context.Context, credentialsFile string) (*FCMSink, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase messaging: %w", err)
	}

	return &FCMSink{client: client}, nil
}

func Topic(barbershopID uint) string {
	return fmt.Sprintf("barbershop-%d", barbershopID)
}

func (s *FCMSink) Send(ctx context.Context, n Notification) error {
	data := map[string]string{
		"kind":   n.Kind,
		"detail": n.Detail,
	}
	for k, v := range n.Data {
		data[k] = v
	}

	_, err := s.client.Send(ctx, &messaging.Message{
		Topic: Topic(n.BarbershopID),
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: data,
	})
	return err
}
