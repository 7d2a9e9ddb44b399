package handlers

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-admin/internal/httperr"
)

var businessMessages = map[string]string{
	"invalid_request":        "Dados inválidos.",
	"missing_client":         "Nome e telefone do cliente são obrigatórios.",
	"no_services":            "Selecione ao menos um serviço.",
	"no_slot":                "Selecione um horário.",
	"invalid_date_or_time":   "Data ou hora inválida.",
	"slot_unavailable":       "Horário indisponível.",
	"time_conflict":          "Conflito de horário.",
	"appointment_not_found":  "Agendamento não encontrado.",
	"invalid_state":          "Agendamento já foi encerrado.",
	"professional_not_found": "Profissional não encontrado.",
	"barbershop_not_found":   "Barbearia não encontrada.",
	"persistence_failed":     "Erro ao salvar. Tente novamente.",
}

// writeError traduz o erro de um use case em resposta HTTP.
func writeError(c *gin.Context, err error, fallback string) {
	code := httperr.Code(err)
	if code == "" {
		log.Printf("handler error: %s: %v", fallback, err)
		httperr.Internal(c, fallback, "Erro interno.")
		return
	}

	msg, ok := businessMessages[code]
	if !ok {
		msg = "Operação não permitida."
	}

	switch code {
	case "appointment_not_found", "professional_not_found", "barbershop_not_found":
		httperr.NotFound(c, code, msg)
	case "slot_unavailable", "time_conflict", "invalid_state":
		httperr.Conflict(c, code, msg)
	case "persistence_failed":
		httperr.Internal(c, code, msg)
	default:
		httperr.BadRequest(c, code, msg)
	}
}
