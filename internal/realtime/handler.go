package realtime

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/igm/sockjs-go/sockjs"

	"github.com/BruksfildServices01/barber-admin/internal/middleware"
)

const Prefix = "/realtime"

// NewHandler abre sessões SockJS autenticadas pelo token da equipe
// (?token=...). Mensagens do cliente são ignoradas.
func NewHandler(hub *Hub, jwtSecret string) http.Handler {
	return sockjs.NewHandler(Prefix, sockjs.DefaultOptions, func(session sockjs.Session) {
		token := session.Request().URL.Query().Get("token")
		claims, err := middleware.ParseToken(jwtSecret, token)
		if err != nil {
			_ = session.Close(4001, "invalid token")
			return
		}

		client := &Client{
			ID:           uuid.NewString(),
			BarbershopID: claims.BarbershopID,
			Send:         make(chan []byte, 16),
		}
		hub.Register(client)
		defer hub.Unregister(client)

		go func() {
			for msg := range client.Send {
				_ = session.Send(string(msg))
			}
		}()

		for {
			if _, err := session.Recv(); err != nil {
				return
			}
		}
	})
}
