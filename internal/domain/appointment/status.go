package appointment

import "github.com/BruksfildServices01/barber-admin/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

func (s Status) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusCancelled || s == StatusNoShow
}

// ===============================
// Transitions
// ===============================

type Action string

const (
	ActionConfirm Action = "confirm"
	ActionCancel  Action = "cancel"
	ActionNoShow  Action = "no_show"
)

type transition struct {
	from []Status
	to   Status
}

var transitions = map[Action]transition{
	ActionConfirm: {from: []Status{StatusScheduled}, to: StatusConfirmed},
	ActionCancel:  {from: []Status{StatusScheduled}, to: StatusCancelled},
	ActionNoShow:  {from: []Status{StatusScheduled}, to: StatusNoShow},
}

// Transition valida a ação a partir do estado atual e devolve o estado final.
func Transition(action Action, current Status) (Status, error) {
	tr, ok := transitions[action]
	if !ok {
		return "", httperr.ErrBusiness("invalid_action")
	}
	for _, s := range tr.from {
		if s == current {
			return tr.to, nil
		}
	}
	return "", httperr.ErrBusiness("invalid_state")
}

func InitialStatus() Status {
	return StatusScheduled
}
