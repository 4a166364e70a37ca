package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/net2mulu/signature-gym/internal/domain/payment"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/utils"
)

// PaymentHandler serves payment methods, history, refunds and receipts
type PaymentHandler struct {
	service payment.Service
	logger  *logger.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(service payment.Service, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{service: service, logger: log}
}

// Methods returns the accepted payment methods
// @Summary Payment methods
// @Tags Payments
// @Produce json
// @Success 200 {array} payment.Method
// @Router /payments/methods [get]
func (h *PaymentHandler) Methods(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, h.service.Methods())
}

// List returns the member's payments, newest first
// @Summary List payments
// @Tags Payments
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} utils.PaginatedResponse{data=[]payment.Payment}
// @Security BearerAuth
// @Router /payments [get]
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	params := utils.ParsePaginationParams(r)
	items, total, err := h.service.List(r.Context(), userID, params.PageSize, params.Offset)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list payments")
		return
	}
	if items == nil {
		items = []*payment.Payment{}
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(items, params.Page, params.PageSize, total))
}

// Get returns one payment
// @Summary Get payment
// @Tags Payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} payment.Payment
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /payments/{id} [get]
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	p, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load payment")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, p)
}

// Refund refunds a completed payment and cancels the subscription it paid for
// @Summary Refund payment
// @Tags Payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} payment.Payment
// @Failure 402 {object} utils.ErrorResponse "Refund declined"
// @Failure 409 {object} utils.ErrorResponse "Payment is not refundable"
// @Security BearerAuth
// @Router /payments/{id}/refund [post]
func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	p, err := h.service.Refund(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to refund payment")
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Refund processed", p)
}

// Receipt returns the PDF receipt of a payment
// @Summary Payment receipt
// @Tags Payments
// @Produce application/pdf
// @Param id path string true "Payment ID"
// @Success 200 {file} file
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /payments/{id}/receipt [get]
func (h *PaymentHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	pdf, err := h.service.Receipt(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load receipt")
		return
	}
	utils.WriteBytes(w, http.StatusOK, "application/pdf", "receipt-"+id+".pdf", pdf)
}
