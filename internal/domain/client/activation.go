package client

import (
	"strings"

	"github.com/BruksfildServices01/barber-admin/internal/models"
)

const (
	StatusActive   = "ativo"
	StatusInactive = "inativo"

	DefaultActivationThreshold = 3
	SettingActivationThreshold = "client_activation_threshold"
)

// Key identifica o cliente: telefone, ou CPF quando não há telefone.
type Key struct {
	Phone string
	TaxID string
}

func KeyFor(phone, taxID string) (Key, bool) {
	phone = strings.TrimSpace(phone)
	taxID = strings.TrimSpace(taxID)
	if phone != "" {
		return Key{Phone: phone}, true
	}
	if taxID != "" {
		return Key{TaxID: taxID}, true
	}
	return Key{}, false
}

// Stats resume os agendamentos confirmados de um cliente no histórico.
type Stats struct {
	Confirmed int
	FirstDate string
	LastDate  string
}

type Decision int

const (
	DecisionNone Decision = iota
	DecisionCreate
	DecisionActivate
	DecisionTouch
)

// Evaluate decide o que fazer com o cadastro do cliente após uma confirmação.
// O cadastro só nasce quando o total de confirmados atinge o limite.
func Evaluate(existing *models.Client, stats Stats, threshold int) Decision {
	if threshold <= 0 {
		threshold = DefaultActivationThreshold
	}
	reached := stats.Confirmed >= threshold

	switch {
	case existing == nil && reached:
		return DecisionCreate
	case existing == nil:
		return DecisionNone
	case existing.Status != StatusActive && reached:
		return DecisionActivate
	default:
		return DecisionTouch
	}
}

// Apply grava no cadastro os números do histórico.
func Apply(c *models.Client, stats Stats, decision Decision) {
	c.TotalAppointments = stats.Confirmed
	c.FirstAppointment = stats.FirstDate
	c.LastAppointment = stats.LastDate
	if decision == DecisionCreate || decision == DecisionActivate {
		c.Status = StatusActive
	}
}
