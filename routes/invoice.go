package routes

import (
	"net/http"
	"time"

	"github.com/MohamedAmineBenGhouizia/real-estate/models"
	"github.com/MohamedAmineBenGhouizia/real-estate/storage"
	"github.com/MohamedAmineBenGhouizia/real-estate/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/exp/slices"
)

// Manual invoice CRUD for admin corrections. These edits do not feed
// back into the owning reservation.

// GET /api/invoices
func AdminListInvoices(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	status := ctx.URLParamDefault("status", "")

	q := storage.DB.Model(&models.Invoice{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	q.Count(&total)

	var items []models.Invoice
	if err := q.Preload("Reservation").Preload("Reservation.User").
		Offset((page - 1) * perPage).Limit(perPage).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	utils.JSONPage(ctx, items, page, perPage, total)
}

// GET /api/invoices/:id is readable by an admin or the reservation owner.
func GetInvoice(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid invoice ID", ctx)
		return
	}

	var invoice models.Invoice
	if err := storage.DB.Preload("Reservation").First(&invoice, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Invoice not found", ctx)
		return
	}

	if claims.Role != "admin" && (invoice.Reservation == nil || invoice.Reservation.UserID != claims.ID) {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "You can only view your own invoices", ctx)
		return
	}

	ctx.JSON(invoice)
}

type CreateInvoiceInput struct {
	ReservationID uint       `json:"reservationID" validate:"required"`
	Amount        float64    `json:"amount" validate:"required,gt=0"`
	Status        string     `json:"status" validate:"omitempty,oneof=unpaid pending paid"`
	DueDate       *time.Time `json:"dueDate"`
}

// POST /api/invoices
func AdminCreateInvoice(ctx iris.Context) {
	var input CreateInvoiceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var reservation models.Reservation
	if err := storage.DB.First(&reservation, input.ReservationID).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "reservation not found")
		return
	}

	status := input.Status
	if status == "" {
		status = models.InvoiceUnpaid
	}

	invoice := models.Invoice{
		ReservationID: input.ReservationID,
		Amount:        input.Amount,
		IssuedDate:    time.Now().UTC(),
		DueDate:       input.DueDate,
		Status:        status,
	}

	if err := storage.DB.Create(&invoice).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.Audit(ctx, "invoice.create", "invoice", invoice.ID, nil, invoice)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": invoice})
}

type UpdateInvoiceInput struct {
	Amount  *float64   `json:"amount"`
	Status  *string    `json:"status"`
	DueDate *time.Time `json:"dueDate"`
}

// PUT /api/invoices/:id applies a partial update. Absent fields keep their old values.
func AdminUpdateInvoice(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var invoice models.Invoice
	if err := storage.DB.First(&invoice, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "invoice not found")
		return
	}

	var input UpdateInvoiceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := invoice

	if input.Amount != nil && *input.Amount > 0 {
		invoice.Amount = *input.Amount
	}
	if input.Status != nil {
		if !slices.Contains(models.InvoiceStatuses, *input.Status) {
			utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_payload", "status must be one of unpaid, pending, paid")
			return
		}
		invoice.Status = *input.Status
	}
	if input.DueDate != nil {
		invoice.DueDate = input.DueDate
	}

	if err := storage.DB.Save(&invoice).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.Audit(ctx, "invoice.update", "invoice", invoice.ID, before, invoice)
	ctx.JSON(iris.Map{"data": invoice})
}

// DELETE /api/invoices/:id
func AdminDeleteInvoice(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var invoice models.Invoice
	if err := storage.DB.First(&invoice, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "invoice not found")
		return
	}

	if err := storage.DB.Delete(&invoice).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.Audit(ctx, "invoice.delete", "invoice", invoice.ID, invoice, nil)
	ctx.JSON(iris.Map{"message": "Invoice deleted successfully"})
}
