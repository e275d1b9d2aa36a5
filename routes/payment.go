package routes

import (
	"github.com/MohamedAmineBenGhouizia/real-estate/models"
	"github.com/MohamedAmineBenGhouizia/real-estate/services"
	"github.com/MohamedAmineBenGhouizia/real-estate/storage"
	"github.com/MohamedAmineBenGhouizia/real-estate/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

type CreatePaymentInput struct {
	InvoiceID uint   `json:"invoiceID" validate:"required"`
	Source    string `json:"source" validate:"required"`
}

// POST /api/payments
// Single payment attempt against the mock processor; success flips the
// invoice to paid.
func CreatePayment(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CreatePaymentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var invoice models.Invoice
	if err := storage.DB.Preload("Reservation").First(&invoice, input.InvoiceID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Invoice not found", ctx)
		return
	}

	if claims.Role != "admin" && (invoice.Reservation == nil || invoice.Reservation.UserID != claims.ID) {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "You can only pay your own invoices", ctx)
		return
	}

	if invoice.Status == models.InvoicePaid {
		utils.CreateError(iris.StatusBadRequest, "Payment Error", "Invoice already paid", ctx)
		return
	}

	result, err := services.ProcessPayment(invoice.Amount, "USD", input.Source)
	if err != nil || !result.Success {
		utils.CreateError(iris.StatusBadRequest, "Payment Error", "Payment failed", ctx)
		return
	}

	invoice.Status = models.InvoicePaid
	if err := storage.DB.Save(&invoice).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"message":       "Payment successful",
		"transactionId": result.TransactionID,
	})
}
