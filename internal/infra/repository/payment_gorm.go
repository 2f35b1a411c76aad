package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/glowdesk/salon-scheduler/internal/domain/payment"
	"github.com/glowdesk/salon-scheduler/internal/httperr"
	"github.com/glowdesk/salon-scheduler/internal/models"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *PaymentGormRepository) GetAppointmentForSalon(
	ctx context.Context,
	appointmentID uint,
	salonID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", appointmentID, salonID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

// --------------------------------------------------
// Payment
// --------------------------------------------------

func (r *PaymentGormRepository) CreatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentGormRepository) UpdatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PaymentGormRepository) GetPayment(
	ctx context.Context,
	paymentID uint,
	salonID uint,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", paymentID, salonID).
		First(&p).Error; err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *PaymentGormRepository) GetPaymentByProviderRef(
	ctx context.Context,
	providerRef string,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Where("provider_ref = ?", providerRef).
		First(&p).Error; err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *PaymentGormRepository) ListPayments(
	ctx context.Context,
	salonID uint,
) ([]models.Payment, error) {

	var out []models.Payment
	if err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}

	return out, nil
}

// --------------------------------------------------
// Gift card
// --------------------------------------------------

func (r *PaymentGormRepository) CreateGiftCard(
	ctx context.Context,
	gc *models.GiftCard,
) error {
	return r.db.WithContext(ctx).Create(gc).Error
}

func (r *PaymentGormRepository) GetGiftCardByCode(
	ctx context.Context,
	salonID uint,
	code string,
) (*models.GiftCard, error) {

	var gc models.GiftCard
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND code = ?", salonID, code).
		First(&gc).Error; err != nil {
		return nil, err
	}

	return &gc, nil
}

func (r *PaymentGormRepository) RedeemGiftCard(
	ctx context.Context,
	salonID uint,
	code string,
	amountCents int64,
) (*models.GiftCard, error) {

	var redeemed models.GiftCard

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var gc models.GiftCard
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("salon_id = ? AND code = ? AND active = true", salonID, code).
			First(&gc).Error; err != nil {
			return httperr.ErrBusiness("gift_card_not_found")
		}

		if gc.BalanceCents < amountCents {
			return httperr.ErrBusiness("insufficient_balance")
		}

		gc.BalanceCents -= amountCents
		if err := tx.Save(&gc).Error; err != nil {
			return err
		}

		redeemed = gc
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &redeemed, nil
}

// --------------------------------------------------
// Inventory
// --------------------------------------------------

func (r *PaymentGormRepository) SellItems(
	ctx context.Context,
	salonID uint,
	items []domain.SaleItem,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		for _, it := range items {
			if it.Qty <= 0 {
				return httperr.ErrBusiness("invalid_quantity")
			}

			var item models.InventoryItem
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND salon_id = ?", it.InventoryItemID, salonID).
				First(&item).Error; err != nil {
				return httperr.ErrBusiness("item_not_found")
			}

			if item.StockQty < it.Qty {
				return httperr.ErrBusiness("insufficient_stock")
			}

			item.StockQty -= it.Qty
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *PaymentGormRepository) RestockItems(
	ctx context.Context,
	salonID uint,
	items []domain.SaleItem,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		for _, it := range items {
			if it.Qty <= 0 {
				continue
			}

			if err := tx.Model(&models.InventoryItem{}).
				Where("id = ? AND salon_id = ?", it.InventoryItemID, salonID).
				Update("stock_qty", gorm.Expr("stock_qty + ?", it.Qty)).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Compile-time check
var _ domain.Repository = (*PaymentGormRepository)(nil)
