package payment

import (
	"context"

	"github.com/glowdesk/salon-scheduler/internal/audit"
	domain "github.com/glowdesk/salon-scheduler/internal/domain/payment"
	"github.com/glowdesk/salon-scheduler/internal/httperr"
	"github.com/glowdesk/salon-scheduler/internal/models"
)

// ResolveTerminalPayment aplica a confirmação do webhook da maquininha a
// um pagamento pendente.
type ResolveTerminalPayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewResolveTerminalPayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ResolveTerminalPayment {
	return &ResolveTerminalPayment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ResolveTerminalPayment) Execute(
	ctx context.Context,
	providerRef string,
	status string,
) (*models.Payment, error) {

	switch domain.Status(status) {
	case domain.StatusCompleted, domain.StatusFailed, domain.StatusCancelled:
	default:
		return nil, httperr.ErrBusiness("invalid_status")
	}

	p, err := uc.repo.GetPaymentByProviderRef(ctx, providerRef)
	if err != nil {
		return nil, httperr.ErrBusiness("payment_not_found")
	}

	if err := domain.CanResolve(domain.Status(p.Status)); err != nil {
		return nil, err
	}

	p.Status = status
	if err := uc.repo.UpdatePayment(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  p.SalonID,
		Action:   "terminal_payment_" + status,
		Entity:   "payment",
		EntityID: &p.ID,
	})

	return p, nil
}
