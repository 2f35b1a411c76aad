package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	pdomain "github.com/glowdesk/salon-scheduler/internal/domain/payment"
	"github.com/glowdesk/salon-scheduler/internal/httperr"
	"github.com/glowdesk/salon-scheduler/internal/httpresp"
	"github.com/glowdesk/salon-scheduler/internal/middleware"
	"github.com/glowdesk/salon-scheduler/internal/payments"
	usecase "github.com/glowdesk/salon-scheduler/internal/usecase/payment"
)

type PaymentHandler struct {
	repo pdomain.Repository

	checkout      *usecase.Checkout
	resolve       *usecase.ResolveTerminalPayment
	issueGiftCard *usecase.IssueGiftCard

	webhookSecret string
}

func NewPaymentHandler(
	repo pdomain.Repository,
	checkout *usecase.Checkout,
	resolve *usecase.ResolveTerminalPayment,
	issueGiftCard *usecase.IssueGiftCard,
	webhookSecret string,
) *PaymentHandler {
	return &PaymentHandler{
		repo:          repo,
		checkout:      checkout,
		resolve:       resolve,
		issueGiftCard: issueGiftCard,
		webhookSecret: webhookSecret,
	}
}

// ======================================================
// CHECKOUT
// ======================================================

type checkoutRequest struct {
	AppointmentID *uint `json:"appointment_id"`

	Method      string `json:"method" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required"`
	TipCents    int64  `json:"tip_cents"`

	CardToken  string `json:"card_token"`
	PayerEmail string `json:"payer_email"`

	GiftCardCode string `json:"gift_card_code"`

	TerminalID string `json:"terminal_id"`

	Items []checkoutItem `json:"items"`
}

type checkoutItem struct {
	InventoryItemID uint `json:"inventory_item_id"`
	Qty             int  `json:"qty"`
}

func (h *PaymentHandler) Checkout(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)
	userID := c.GetUint(middleware.ContextUserID)

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	items := make([]pdomain.SaleItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, pdomain.SaleItem{
			InventoryItemID: it.InventoryItemID,
			Qty:             it.Qty,
		})
	}

	p, err := h.checkout.Execute(c.Request.Context(), usecase.CheckoutInput{
		SalonID:       salonID,
		UserID:        userID,
		AppointmentID: req.AppointmentID,
		Method:        req.Method,
		AmountCents:   req.AmountCents,
		TipCents:      req.TipCents,
		CardToken:     req.CardToken,
		PayerEmail:    req.PayerEmail,
		GiftCardCode:  req.GiftCardCode,
		TerminalID:    req.TerminalID,
		Items:         items,
	})
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// GetPayment serve o polling do app enquanto a maquininha não confirma.
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)

	paymentID, ok := parseIDParam(c)
	if !ok {
		return
	}

	p, err := h.repo.GetPayment(c.Request.Context(), paymentID, salonID)
	if err != nil {
		httperr.NotFound(c, "payment_not_found", "Payment not found.")
		return
	}

	httpresp.OK(c, p)
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)

	list, err := h.repo.ListPayments(c.Request.Context(), salonID)
	if err != nil {
		httperr.Internal(c, "internal_error", "Failed to list payments.")
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// WEBHOOK DA MAQUININHA (rota pública)
// ======================================================

func (h *PaymentHandler) TerminalWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		httperr.BadRequest(c, "invalid_body", "Could not read body.")
		return
	}

	signature := c.GetHeader("X-Signature")
	if signature == "" {
		signature = c.GetHeader("Authorization")
	}

	if !payments.VerifyWebhookSignature(h.webhookSecret, body, signature) {
		httperr.Unauthorized(c, "invalid_signature", "Webhook signature mismatch.")
		return
	}

	var ev payments.WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		httperr.BadRequest(c, "invalid_body", "Malformed webhook payload.")
		return
	}

	p, err := h.resolve.Execute(c.Request.Context(), ev.TransactionID, ev.Status)
	if err != nil {
		// idempotência: reentrega de um evento já aplicado não é falha
		if httperr.IsBusiness(err, "invalid_state") {
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}
		writeUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "payment_id": p.ID, "status": p.Status})
}

// ======================================================
// GIFT CARDS
// ======================================================

type issueGiftCardRequest struct {
	InitialCents int64 `json:"initial_cents" binding:"required"`
	ClientID     *uint `json:"client_id"`
}

func (h *PaymentHandler) IssueGiftCard(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)
	userID := c.GetUint(middleware.ContextUserID)

	var req issueGiftCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	gc, err := h.issueGiftCard.Execute(c.Request.Context(), usecase.IssueGiftCardInput{
		SalonID:      salonID,
		UserID:       userID,
		InitialCents: req.InitialCents,
		ClientID:     req.ClientID,
	})
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gc)
}

func (h *PaymentHandler) GetGiftCard(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)

	code := c.Param("code")
	gc, err := h.repo.GetGiftCardByCode(c.Request.Context(), salonID, code)
	if err != nil {
		httperr.NotFound(c, "gift_card_not_found", "Gift card not found.")
		return
	}

	httpresp.OK(c, gc)
}
