package handlers

import (
	"io"
	"net/http"

	"servicefinder/middleware"
	"servicefinder/models"
	"servicefinder/services/booking"
	"servicefinder/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxWebhookBody bounds webhook payloads.
const maxWebhookBody = 64 << 10

// PaymentHandler serves checkout and payment confirmation.
type PaymentHandler struct {
	BookingSvc    booking.BookingService
	WebhookSecret string
	Logger        *zap.Logger
}

func NewPaymentHandler(svc booking.BookingService, webhookSecret string, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{BookingSvc: svc, WebhookSecret: webhookSecret, Logger: logger}
}

// CreateOrder handles POST /api/payments/create-order.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	order, err := h.BookingSvc.CreatePaymentOrder(c.Request.Context(), middleware.Identity(c).ID, req.BookingID)
	if err != nil {
		respondError(c, h.Logger, "CreateOrder", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// VerifyPayment handles POST /api/payments/verify-payment.
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req models.PaymentVerification
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.BookingSvc.VerifyPayment(c.Request.Context(), middleware.Identity(c).ID, req)
	if err != nil {
		respondError(c, h.Logger, "VerifyPayment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment verified", "booking": b})
}

// Webhook handles POST /api/payments/webhook from Stripe.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		badRequest(c, err)
		return
	}

	outcome, err := payment.ParseWebhook(body, c.GetHeader("Stripe-Signature"), h.WebhookSecret)
	if err != nil {
		respondError(c, h.Logger, "Webhook", err)
		return
	}
	if outcome != nil {
		if err := h.BookingSvc.ApplyPaymentOutcome(c.Request.Context(), *outcome); err != nil {
			respondError(c, h.Logger, "Webhook", err)
			return
		}
		h.Logger.Info("payment webhook applied",
			zap.String("bookingId", outcome.BookingID), zap.Bool("paid", outcome.Paid))
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
