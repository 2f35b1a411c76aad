package payment

import (
	"context"

	"github.com/glowdesk/salon-scheduler/internal/models"
)

// SaleItem é um item de varejo vendido junto do checkout.
type SaleItem struct {
	InventoryItemID uint
	Qty             int
}

type Repository interface {
	// -------- Appointment --------
	GetAppointmentForSalon(
		ctx context.Context,
		appointmentID uint,
		salonID uint,
	) (*models.Appointment, error)

	// -------- Payment --------
	CreatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	UpdatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	GetPayment(
		ctx context.Context,
		paymentID uint,
		salonID uint,
	) (*models.Payment, error)

	GetPaymentByProviderRef(
		ctx context.Context,
		providerRef string,
	) (*models.Payment, error)

	ListPayments(
		ctx context.Context,
		salonID uint,
	) ([]models.Payment, error)

	// -------- Gift card --------
	CreateGiftCard(
		ctx context.Context,
		gc *models.GiftCard,
	) error

	GetGiftCardByCode(
		ctx context.Context,
		salonID uint,
		code string,
	) (*models.GiftCard, error)

	// RedeemGiftCard debita o saldo em transação; saldo insuficiente é
	// erro de negócio, nunca saldo negativo.
	RedeemGiftCard(
		ctx context.Context,
		salonID uint,
		code string,
		amountCents int64,
	) (*models.GiftCard, error)

	// -------- Inventory --------
	SellItems(
		ctx context.Context,
		salonID uint,
		items []SaleItem,
	) error

	// RestockItems devolve ao estoque o que SellItems baixou, quando a
	// cobrança não se concretiza.
	RestockItems(
		ctx context.Context,
		salonID uint,
		items []SaleItem,
	) error
}
