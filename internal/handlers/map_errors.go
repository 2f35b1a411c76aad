package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/glowdesk/salon-scheduler/internal/httperr"
)

// writeUsecaseError traduz erros de negócio dos use cases para HTTP.
// Conflito de agenda é 409; o app trata esse status como "recarregue os
// horários", diferente de um 400 de entrada inválida.
func writeUsecaseError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		httperr.Internal(c, "internal_error", "Unexpected error.")
		return
	}

	switch be.Code {

	case "time_conflict":
		httperr.Conflict(c, be.Code, "This time is no longer available.")

	case "appointment_not_found",
		"service_not_found",
		"payment_not_found",
		"gift_card_not_found",
		"item_not_found":
		httperr.NotFound(c, be.Code, "Resource not found.")

	case "payment_failed", "payment_declined":
		httperr.PaymentRequired(c, be.Code, "Payment was not completed.")

	default:
		httperr.BadRequest(c, be.Code, "Request could not be processed.")
	}
}
