package payment

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/glowdesk/salon-scheduler/internal/audit"
	domain "github.com/glowdesk/salon-scheduler/internal/domain/payment"
	"github.com/glowdesk/salon-scheduler/internal/httperr"
	"github.com/glowdesk/salon-scheduler/internal/models"
	"github.com/glowdesk/salon-scheduler/internal/payments"
)

// ======================================================
// INPUT
// ======================================================

type CheckoutInput struct {
	SalonID uint
	UserID  uint

	AppointmentID *uint

	Method      string
	AmountCents int64
	TipCents    int64

	// card
	CardToken  string
	PayerEmail string

	// gift card
	GiftCardCode string

	// terminal
	TerminalID string

	Items []domain.SaleItem
}

// ======================================================
// USE CASE
// ======================================================

// Checkout registra e liquida um pagamento. Pagamento e agendamento não
// são transacionais entre si: falha de cobrança nunca desfaz o
// agendamento já criado.
type Checkout struct {
	repo     domain.Repository
	card     payments.CardGateway
	terminal payments.TerminalGateway
	audit    *audit.Dispatcher
}

func NewCheckout(
	repo domain.Repository,
	card payments.CardGateway,
	terminal payments.TerminalGateway,
	audit *audit.Dispatcher,
) *Checkout {
	return &Checkout{
		repo:     repo,
		card:     card,
		terminal: terminal,
		audit:    audit,
	}
}

func (uc *Checkout) Execute(
	ctx context.Context,
	in CheckoutInput,
) (*models.Payment, error) {

	if !domain.ValidMethod(domain.Method(in.Method)) {
		return nil, httperr.ErrBusiness("invalid_payment_method")
	}
	if in.AmountCents <= 0 {
		return nil, httperr.ErrBusiness("invalid_amount")
	}

	p := &models.Payment{
		SalonID:     in.SalonID,
		Method:      in.Method,
		Status:      string(domain.StatusPending),
		AmountCents: in.AmountCents,
		TipCents:    in.TipCents,
	}

	if in.AppointmentID != nil {
		ap, err := uc.repo.GetAppointmentForSalon(ctx, *in.AppointmentID, in.SalonID)
		if err != nil {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		p.AppointmentID = &ap.ID
		p.ClientID = &ap.ClientID
	}

	// Baixa de estoque antes da cobrança, na mesma transação do repo.
	sold := len(in.Items) > 0
	if sold {
		if err := uc.repo.SellItems(ctx, in.SalonID, in.Items); err != nil {
			return nil, err
		}
	}

	// Cobrança que não se concretiza devolve o estoque já baixado;
	// compensação, não rollback (a venda e a cobrança são transações
	// separadas).
	fail := func(err error) (*models.Payment, error) {
		if sold {
			if rerr := uc.repo.RestockItems(ctx, in.SalonID, in.Items); rerr != nil {
				log.Println("restock after failed charge:", rerr)
			}
		}
		return nil, err
	}

	switch domain.Method(in.Method) {

	case domain.MethodCash:
		p.Provider = "cash"
		p.Status = string(domain.StatusCompleted)

	case domain.MethodCard:
		if uc.card == nil {
			return fail(httperr.ErrBusiness("payment_gateway_unavailable"))
		}

		res, err := uc.card.Charge(ctx, payments.ChargeInput{
			AmountCents: in.AmountCents + in.TipCents,
			Token:       in.CardToken,
			Description: "salon checkout",
			PayerEmail:  in.PayerEmail,
		})
		if err != nil {
			p.Provider = "mercadopago"
			p.Status = string(domain.StatusFailed)
			p.FailureReason = err.Error()
			_ = uc.repo.CreatePayment(ctx, p)
			return fail(httperr.ErrBusiness("payment_failed"))
		}

		p.Provider = "mercadopago"
		p.ProviderRef = res.ProviderRef
		if !res.Approved {
			p.Status = string(domain.StatusFailed)
			p.FailureReason = res.Detail
			_ = uc.repo.CreatePayment(ctx, p)
			return fail(httperr.ErrBusiness("payment_declined"))
		}
		p.Status = string(domain.StatusCompleted)

	case domain.MethodGiftCard:
		gc, err := uc.repo.RedeemGiftCard(
			ctx,
			in.SalonID,
			in.GiftCardCode,
			in.AmountCents+in.TipCents,
		)
		if err != nil {
			return fail(err)
		}
		p.Provider = "gift_card"
		p.GiftCardID = &gc.ID
		p.Status = string(domain.StatusCompleted)

	case domain.MethodTerminal:
		if uc.terminal == nil {
			return fail(httperr.ErrBusiness("payment_gateway_unavailable"))
		}

		ref, err := uc.terminal.Initiate(
			ctx,
			in.TerminalID,
			in.AmountCents+in.TipCents,
			uuid.NewString(),
		)
		if err != nil {
			return fail(httperr.ErrBusiness("payment_failed"))
		}

		p.Provider = "terminal"
		p.ProviderRef = ref
		// fica pendente até o webhook resolver; o app faz polling
	}

	if err := uc.repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.UserID,
		Action:   "payment_" + p.Status,
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]any{
			"method": p.Method,
			"amount": p.AmountCents,
		},
	})

	return p, nil
}
