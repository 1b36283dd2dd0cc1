package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/report"
	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/service"
)

// orderPlacer places checkout orders
type orderPlacer interface {
	PlaceOrder(ctx context.Context, req models.OrderRequest) (*models.Receipt, error)
}

// CheckoutHandler handles checkout HTTP requests
type CheckoutHandler struct {
	checkout orderPlacer
	log      *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkout orderPlacer, log *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		log:      log,
	}
}

// Checkout handles POST /api/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode checkout request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	receipt, err := h.checkout.PlaceOrder(r.Context(), req)
	if err != nil {
		h.log.Error("checkout failed", "customer_id", req.CustomerID, "error", err)

		status, message := checkoutErrorResponse(err)
		WriteError(w, status, message, h.log)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "text/plain") {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if err := report.Write(w, receipt); err != nil {
			h.log.Error("failed to write receipt", "receipt_id", receipt.ID, "error", err)
		}
		return
	}

	WriteJSON(w, http.StatusOK, receipt, h.log)
	h.log.Info("checkout succeeded", "receipt_id", receipt.ID, "items_count", len(receipt.Lines))
}

// checkoutErrorResponse maps checkout failures to a status code and client message
func checkoutErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		return http.StatusBadRequest, "Cart must contain at least one item"
	case errors.Is(err, models.ErrInvalidQuantity):
		return http.StatusBadRequest, "Quantity must be positive"
	case errors.Is(err, repository.ErrProductNotFound):
		return http.StatusBadRequest, "Invalid product"
	case errors.Is(err, repository.ErrCustomerNotFound):
		return http.StatusNotFound, "Customer not found"
	case errors.Is(err, models.ErrInsufficientStock), errors.Is(err, models.ErrOutOfStock):
		return http.StatusConflict, "Not enough stock"
	case errors.Is(err, service.ErrExpiredProduct):
		return http.StatusUnprocessableEntity, "Product is expired"
	case errors.Is(err, models.ErrInsufficientBalance):
		return http.StatusPaymentRequired, "Insufficient balance"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "Request cancelled"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
