package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/woiya/marketplace/internal/api/metrics"
	"github.com/woiya/marketplace/internal/core/domain"
	"github.com/woiya/marketplace/internal/core/ports"
)

// PaymentHandler handles the escrow payment endpoints.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// Create handles POST /api/payments/create.
//
// @Summary      Start an escrow payment for a selected bid
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPaymentRequest  true  "Payment details"
// @Success      200   {object}  createPaymentResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /payments/create [post]
func (h *PaymentHandler) Create(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req createPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.CreatePayment(c.Request().Context(), ports.CreatePaymentInput{
		JobID:   req.JobID,
		BidID:   req.BidID,
		PayerID: caller.UserID,
		Method:  domain.PaymentMethod(req.PaymentMethod),
		Amount:  req.Amount,
	})
	if err != nil {
		return err
	}

	metrics.PaymentTransitionsTotal.WithLabelValues(string(p.Status)).Inc()
	return c.JSON(http.StatusOK, createPaymentResponse{
		Message:       "Payment created successfully",
		PaymentID:     p.ID,
		GatewayURL:    p.GatewayURL,
		PaymentMethod: string(p.Method),
	})
}

// Confirm handles POST /api/payments/:id/confirm. It is the gateway's
// return hook, so it carries no bearer token.
//
// @Summary      Confirm a payment and hold it in escrow
// @Tags         payments
// @Produce      json
// @Param        id   path      string  true  "Payment ID"
// @Success      200  {object}  paymentStatusResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /payments/{id}/confirm [post]
func (h *PaymentHandler) Confirm(c echo.Context) error {
	p, moved, err := h.service.ConfirmPayment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	if moved {
		metrics.PaymentTransitionsTotal.WithLabelValues(string(p.Status)).Inc()
	}
	return c.JSON(http.StatusOK, paymentStatusResponse{
		Message: "Payment confirmed and held in escrow",
		Status:  string(p.Status),
	})
}

// Release handles POST /api/payments/:id/release.
//
// @Summary      Release an escrowed payment to the provider
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Payment ID"
// @Success      200  {object}  paymentStatusResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /payments/{id}/release [post]
func (h *PaymentHandler) Release(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	p, err := h.service.ReleasePayment(c.Request().Context(), c.Param("id"), caller.UserID)
	if err != nil {
		return err
	}

	metrics.PaymentTransitionsTotal.WithLabelValues(string(p.Status)).Inc()
	return c.JSON(http.StatusOK, paymentStatusResponse{
		Message: "Payment released successfully",
		Status:  string(p.Status),
	})
}
