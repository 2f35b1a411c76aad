package payment

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	domain "github.com/glowdesk/salon-scheduler/internal/domain/payment"
	"github.com/glowdesk/salon-scheduler/internal/httperr"
	"github.com/glowdesk/salon-scheduler/internal/models"
	"github.com/glowdesk/salon-scheduler/internal/payments"
)

// ======================================================
// FAKES
// ======================================================

type fakePaymentRepo struct {
	appointments map[uint]*models.Appointment
	payments     []*models.Payment
	giftCards    map[string]*models.GiftCard
	stock        map[uint]*models.InventoryItem

	nextID uint
}

var _ domain.Repository = (*fakePaymentRepo)(nil)

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		appointments: map[uint]*models.Appointment{},
		giftCards:    map[string]*models.GiftCard{},
		stock:        map[uint]*models.InventoryItem{},
		nextID:       1,
	}
}

func (f *fakePaymentRepo) GetAppointmentForSalon(_ context.Context, appointmentID, salonID uint) (*models.Appointment, error) {
	ap, ok := f.appointments[appointmentID]
	if !ok || ap.SalonID != salonID {
		return nil, gorm.ErrRecordNotFound
	}
	return ap, nil
}

func (f *fakePaymentRepo) CreatePayment(_ context.Context, p *models.Payment) error {
	p.ID = f.nextID
	f.nextID++
	f.payments = append(f.payments, p)
	return nil
}

func (f *fakePaymentRepo) UpdatePayment(_ context.Context, p *models.Payment) error {
	for i, existing := range f.payments {
		if existing.ID == p.ID {
			f.payments[i] = p
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakePaymentRepo) GetPayment(_ context.Context, paymentID, salonID uint) (*models.Payment, error) {
	for _, p := range f.payments {
		if p.ID == paymentID && p.SalonID == salonID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePaymentRepo) GetPaymentByProviderRef(_ context.Context, providerRef string) (*models.Payment, error) {
	for _, p := range f.payments {
		if p.ProviderRef == providerRef {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePaymentRepo) ListPayments(_ context.Context, salonID uint) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range f.payments {
		if p.SalonID == salonID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) CreateGiftCard(_ context.Context, gc *models.GiftCard) error {
	gc.ID = f.nextID
	f.nextID++
	f.giftCards[gc.Code] = gc
	return nil
}

func (f *fakePaymentRepo) GetGiftCardByCode(_ context.Context, salonID uint, code string) (*models.GiftCard, error) {
	gc, ok := f.giftCards[code]
	if !ok || gc.SalonID != salonID {
		return nil, gorm.ErrRecordNotFound
	}
	return gc, nil
}

func (f *fakePaymentRepo) RedeemGiftCard(_ context.Context, salonID uint, code string, amountCents int64) (*models.GiftCard, error) {
	gc, ok := f.giftCards[code]
	if !ok || gc.SalonID != salonID || !gc.Active {
		return nil, httperr.ErrBusiness("gift_card_not_found")
	}
	if gc.BalanceCents < amountCents {
		return nil, httperr.ErrBusiness("insufficient_balance")
	}
	gc.BalanceCents -= amountCents
	return gc, nil
}

func (f *fakePaymentRepo) SellItems(_ context.Context, salonID uint, items []domain.SaleItem) error {
	for _, it := range items {
		item, ok := f.stock[it.InventoryItemID]
		if !ok || item.SalonID != salonID {
			return httperr.ErrBusiness("item_not_found")
		}
		if item.StockQty < it.Qty {
			return httperr.ErrBusiness("insufficient_stock")
		}
	}
	for _, it := range items {
		f.stock[it.InventoryItemID].StockQty -= it.Qty
	}
	return nil
}

func (f *fakePaymentRepo) RestockItems(_ context.Context, salonID uint, items []domain.SaleItem) error {
	for _, it := range items {
		if item, ok := f.stock[it.InventoryItemID]; ok && item.SalonID == salonID {
			item.StockQty += it.Qty
		}
	}
	return nil
}

type fakeCardGateway struct {
	approved bool
	detail   string
	err      error
}

func (g *fakeCardGateway) Charge(_ context.Context, _ payments.ChargeInput) (*payments.ChargeResult, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &payments.ChargeResult{
		Approved:    g.approved,
		ProviderRef: "mp-123",
		Detail:      g.detail,
	}, nil
}

type fakeTerminalGateway struct {
	ref string
	err error
}

func (g *fakeTerminalGateway) Initiate(_ context.Context, _ string, _ int64, _ string) (string, error) {
	return g.ref, g.err
}

// ======================================================
// TESTS
// ======================================================

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil || !httperr.IsBusiness(err, code) {
		t.Fatalf("expected business error %q, got %v", code, err)
	}
}

func TestCheckoutCashCompletesImmediately(t *testing.T) {
	repo := newFakePaymentRepo()
	uc := NewCheckout(repo, nil, nil, nil)

	p, err := uc.Execute(context.Background(), CheckoutInput{
		SalonID:     1,
		UserID:      5,
		Method:      "cash",
		AmountCents: 5000,
		TipCents:    500,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Status != "completed" {
		t.Errorf("expected completed, got %q", p.Status)
	}
	if p.Provider != "cash" {
		t.Errorf("expected cash provider, got %q", p.Provider)
	}
}

func TestCheckoutRejectsInvalidMethod(t *testing.T) {
	uc := NewCheckout(newFakePaymentRepo(), nil, nil, nil)

	_, err := uc.Execute(context.Background(), CheckoutInput{
		SalonID:     1,
		Method:      "bitcoin",
		AmountCents: 5000,
	})
	assertCode(t, err, "invalid_payment_method")
}

func TestCheckoutRejectsNonPositiveAmount(t *testing.T) {
	uc := NewCheckout(newFakePaymentRepo(), nil, nil, nil)

	_, err := uc.Execute(context.Background(), CheckoutInput{
		SalonID: 1,
		Method:  "cash",
	})
	assertCode(t, err, "invalid_amount")
}

func TestCheckoutCardApproved(t *testing.T) {
	repo := newFakePaymentRepo()
	uc := NewCheckout(repo, &fakeCardGateway{approved: true}, nil, nil)

	p, err := uc.Execute(context.Background(), CheckoutInput{
		SalonID:     1,
		Method:      "card",
		AmountCents: 8000,
		CardToken:   "tok_abc",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Status != "completed" || p.ProviderRef != "mp-123" {
		t.Errorf("unexpected payment state: %+v", p)
	}
}

func TestCheckoutCardDeclinedKeepsFailedRecord(t *testing.T) {
	repo := newFakePaymentRepo()
	uc := NewCheckout(repo, &fakeCardGateway{approved: false, detail: "cc_rejected"}, nil, nil)

	_, err := uc.Execute(context.Background(), CheckoutInput{
		SalonID:     1,
		Method:      "card",
		AmountCents: 8000,
		CardToken:   "tok_abc",
	})
	assertCode(t, err, "payment_declined")

	// a recusa fica registrada para o histórico
	if len(repo.payments) != 1 {
		t.Fatalf("expected failed payment persisted, got %d records", len(repo.payments))
	}
	if repo.payments[0].Status != "failed" || repo.payments[0].FailureReason != "cc_rejected" {
		t.Errorf("unexpected failed record: %+v", repo.payments[0])
	}
}

func TestCheckoutCardGatewayError(t *testing.T) {
	repo := newFakePaymentRepo()
	uc := NewCheckout(repo, &fakeCardGateway{err: errors.New("timeout")}, nil, nil)

	_, err := uc.Execute(context.Background(), CheckoutInput{
		SalonID:     1,
		Method:      "card",
		AmountCents: 8000,
	})
	assertCode(t, err, "payment_failed")
}

func TestCheckoutCardWithoutGateway(t *testing.T) {
	uc := NewCheckout(newFakePaymentRepo(), nil, nil, nil)

	_, err := uc.Execute(context.Background(), CheckoutInput{
		SalonID:     1,
		Method:      "card",
		AmountCents: 8000,
	})
	assertCode(t, err, "payment_gateway_unavailable")
}

func TestCheckoutGiftCardRedeems(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.giftCards["GC-1"] = &models.GiftCard{
		ID: 7, SalonID: 1, Code: "GC-1", Active: true,
		InitialCents: 10000, BalanceCents: 10000,
	}

	uc := NewCheckout(repo, nil, nil, nil)

	p, err := uc.Execute(context.Background(), CheckoutInput{
		SalonID:      1,
		Method:       "gift_card",
		AmountCents:  6000,
		GiftCardCode: "GC-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Status != "completed" || p.GiftCardID == nil || *p.GiftCardID != 7 {
		t.Errorf("unexpected payment: %+v", p)
	}
	if got := repo.giftCards["GC-1"].BalanceCents; got != 4000 {
		t.Errorf("expected balance 4000, got %d", got)
	}
}

func TestCheckoutGiftCardInsufficientBalance(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.giftCards["GC-1"] = &models.GiftCard{
		ID: 7, SalonID: 1, Code: "GC-1", Active: true,
		InitialCents: 1000, BalanceCents: 1000,
	}

	uc := NewCheckout(repo, nil, nil, nil)

	_, err := uc.Execute(context.Background(), CheckoutInput{
		SalonID:      1,
		Method:       "gift_card",
		AmountCents:  6000,
		GiftCardCode: "GC-1",
	})
	assertCode(t, err, "insufficient_balance")

	if got := repo.giftCards["GC-1"].BalanceCents; got != 1000 {
		t.Errorf("balance must be untouched, got %d", got)
	}
}

func TestCheckoutTerminalStaysPending(t *testing.T) {
	repo := newFakePaymentRepo()
	uc := NewCheckout(repo, nil, &fakeTerminalGateway{ref: "txn-9"}, nil)

	p, err := uc.Execute(context.Background(), CheckoutInput{
		SalonID:     1,
		Method:      "terminal",
		AmountCents: 3000,
		TerminalID:  "T1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Status != "pending" || p.ProviderRef != "txn-9" {
		t.Errorf("expected pending payment with provider ref, got %+v", p)
	}
}

func TestCheckoutSellsInventory(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.stock[3] = &models.InventoryItem{ID: 3, SalonID: 1, StockQty: 5}

	uc := NewCheckout(repo, nil, nil, nil)

	_, err := uc.Execute(context.Background(), CheckoutInput{
		SalonID:     1,
		Method:      "cash",
		AmountCents: 2500,
		Items:       []domain.SaleItem{{InventoryItemID: 3, Qty: 2}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := repo.stock[3].StockQty; got != 3 {
		t.Errorf("expected stock 3, got %d", got)
	}
}

func TestCheckoutDeclinedCardRestocksItems(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.stock[3] = &models.InventoryItem{ID: 3, SalonID: 1, StockQty: 5}

	uc := NewCheckout(repo, &fakeCardGateway{approved: false, detail: "cc_rejected"}, nil, nil)

	_, err := uc.Execute(context.Background(), CheckoutInput{
		SalonID:     1,
		Method:      "card",
		AmountCents: 2500,
		Items:       []domain.SaleItem{{InventoryItemID: 3, Qty: 2}},
	})
	assertCode(t, err, "payment_declined")

	// cobrança não concretizada devolve a baixa de estoque
	if got := repo.stock[3].StockQty; got != 5 {
		t.Errorf("expected stock restored to 5, got %d", got)
	}
}

func TestCheckoutGatewayErrorRestocksItems(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.stock[3] = &models.InventoryItem{ID: 3, SalonID: 1, StockQty: 5}

	uc := NewCheckout(repo, &fakeCardGateway{err: errors.New("timeout")}, nil, nil)

	_, err := uc.Execute(context.Background(), CheckoutInput{
		SalonID:     1,
		Method:      "card",
		AmountCents: 2500,
		Items:       []domain.SaleItem{{InventoryItemID: 3, Qty: 2}},
	})
	assertCode(t, err, "payment_failed")

	if got := repo.stock[3].StockQty; got != 5 {
		t.Errorf("expected stock restored to 5, got %d", got)
	}
}

func TestCheckoutGiftCardFailureRestocksItems(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.stock[3] = &models.InventoryItem{ID: 3, SalonID: 1, StockQty: 5}
	repo.giftCards["GC-1"] = &models.GiftCard{
		ID: 7, SalonID: 1, Code: "GC-1", Active: true,
		InitialCents: 1000, BalanceCents: 1000,
	}

	uc := NewCheckout(repo, nil, nil, nil)

	_, err := uc.Execute(context.Background(), CheckoutInput{
		SalonID:      1,
		Method:       "gift_card",
		AmountCents:  6000,
		GiftCardCode: "GC-1",
		Items:        []domain.SaleItem{{InventoryItemID: 3, Qty: 2}},
	})
	assertCode(t, err, "insufficient_balance")

	if got := repo.stock[3].StockQty; got != 5 {
		t.Errorf("expected stock restored to 5, got %d", got)
	}
}

func TestCheckoutInsufficientStock(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.stock[3] = &models.InventoryItem{ID: 3, SalonID: 1, StockQty: 1}

	uc := NewCheckout(repo, nil, nil, nil)

	_, err := uc.Execute(context.Background(), CheckoutInput{
		SalonID:     1,
		Method:      "cash",
		AmountCents: 2500,
		Items:       []domain.SaleItem{{InventoryItemID: 3, Qty: 2}},
	})
	assertCode(t, err, "insufficient_stock")

	if len(repo.payments) != 0 {
		t.Error("no payment should be recorded when the sale fails")
	}
}

func TestResolveTerminalPayment(t *testing.T) {
	repo := newFakePaymentRepo()
	checkout := NewCheckout(repo, nil, &fakeTerminalGateway{ref: "txn-9"}, nil)
	resolve := NewResolveTerminalPayment(repo, nil)

	if _, err := checkout.Execute(context.Background(), CheckoutInput{
		SalonID:     1,
		Method:      "terminal",
		AmountCents: 3000,
	}); err != nil {
		t.Fatalf("seed payment failed: %v", err)
	}

	p, err := resolve.Execute(context.Background(), "txn-9", "completed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != "completed" {
		t.Errorf("expected completed, got %q", p.Status)
	}

	// reentrega do webhook: estado final não muda de novo
	_, err = resolve.Execute(context.Background(), "txn-9", "failed")
	assertCode(t, err, "invalid_state")
}

func TestResolveTerminalUnknownRef(t *testing.T) {
	resolve := NewResolveTerminalPayment(newFakePaymentRepo(), nil)

	_, err := resolve.Execute(context.Background(), "nope", "completed")
	assertCode(t, err, "payment_not_found")
}

func TestResolveTerminalRejectsBogusStatus(t *testing.T) {
	resolve := NewResolveTerminalPayment(newFakePaymentRepo(), nil)

	_, err := resolve.Execute(context.Background(), "txn-9", "maybe")
	assertCode(t, err, "invalid_status")
}

func TestIssueGiftCard(t *testing.T) {
	repo := newFakePaymentRepo()
	uc := NewIssueGiftCard(repo, nil)

	gc, err := uc.Execute(context.Background(), IssueGiftCardInput{
		SalonID:      1,
		UserID:       5,
		InitialCents: 10000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gc.Code == "" {
		t.Error("expected generated code")
	}
	if gc.BalanceCents != 10000 || !gc.Active {
		t.Errorf("unexpected gift card: %+v", gc)
	}

	_, err = uc.Execute(context.Background(), IssueGiftCardInput{SalonID: 1})
	assertCode(t, err, "invalid_amount")
}
