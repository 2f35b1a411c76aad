package payment

import "github.com/glowdesk/salon-scheduler/internal/httperr"

// ===============================
// Payment Method / Status
// ===============================

type Method string

const (
	MethodCard     Method = "card"
	MethodCash     Method = "cash"
	MethodTerminal Method = "terminal"
	MethodGiftCard Method = "gift_card"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

func ValidMethod(m Method) bool {
	switch m {
	case MethodCard, MethodCash, MethodTerminal, MethodGiftCard:
		return true
	}
	return false
}

// IsTerminalState indica que o pagamento chegou a um estado final e o
// polling do cliente pode parar.
func IsTerminalState(s Status) bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// Só pagamentos pendentes mudam de estado via webhook/polling.
func CanResolve(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
