package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/glowdesk/salon-scheduler/internal/audit"
	domain "github.com/glowdesk/salon-scheduler/internal/domain/payment"
	"github.com/glowdesk/salon-scheduler/internal/httperr"
	"github.com/glowdesk/salon-scheduler/internal/models"
)

type IssueGiftCardInput struct {
	SalonID      uint
	UserID       uint
	InitialCents int64
	ClientID     *uint
}

type IssueGiftCard struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewIssueGiftCard(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *IssueGiftCard {
	return &IssueGiftCard{
		repo:  repo,
		audit: audit,
	}
}

func (uc *IssueGiftCard) Execute(
	ctx context.Context,
	in IssueGiftCardInput,
) (*models.GiftCard, error) {

	if in.InitialCents <= 0 {
		return nil, httperr.ErrBusiness("invalid_amount")
	}

	gc := &models.GiftCard{
		SalonID:             in.SalonID,
		Code:                uuid.NewString(),
		InitialCents:        in.InitialCents,
		BalanceCents:        in.InitialCents,
		Active:              true,
		PurchasedByClientID: in.ClientID,
	}

	if err := uc.repo.CreateGiftCard(ctx, gc); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.UserID,
		Action:   "gift_card_issued",
		Entity:   "gift_card",
		EntityID: &gc.ID,
	})

	return gc, nil
}
