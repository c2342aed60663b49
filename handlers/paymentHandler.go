package handlers

import (
	"FamCare/models"
	"FamCare/services"
	"crypto/subtle"
	"os"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service *services.PaymentService
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreatePayment records a payment placeholder. Non-admins can only pay for
// themselves.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	var payment models.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if actorRole != models.RoleAdmin {
		payment.UserID = actorID
	}

	if err := h.service.Create(c.Request.Context(), &payment); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, payment)
}

func (h *PaymentHandler) GetPaymentByID(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := parseUintParam(c, "payment_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid payment ID"})
		return
	}

	payment, err := h.service.GetByID(c.Request.Context(), id, actorID, actorRole)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	if payment == nil {
		c.JSON(404, gin.H{"error": "Payment not found"})
		return
	}
	c.JSON(200, payment)
}

// GetMyPayments lists the authenticated user's payments.
func (h *PaymentHandler) GetMyPayments(c *gin.Context) {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	payments, err := h.service.GetByUser(c.Request.Context(), actorID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, payments)
}

// ListPayments lists payments, optionally filtered by status (admin only).
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	payments, err := h.service.GetAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, payments)
}

// ProviderCallback records the result reported by the external payment
// provider for a transaction code. The provider authenticates with the shared
// secret from PAYMENT_CALLBACK_SECRET; the transaction code alone is not
// proof of origin, since the payer receives it at creation.
func (h *PaymentHandler) ProviderCallback(c *gin.Context) {
	if secret := os.Getenv("PAYMENT_CALLBACK_SECRET"); secret != "" {
		token := c.GetHeader("X-Callback-Token")
		if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			c.JSON(401, gin.H{"error": "Invalid callback token"})
			return
		}
	}

	var data struct {
		TransactionCode string `json:"transaction_code" binding:"required"`
		Status          string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.service.HandleProviderResult(c.Request.Context(), data.TransactionCode, data.Status)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, payment)
}

// UpdatePaymentStatus sets a payment's status directly (admin bookkeeping).
func (h *PaymentHandler) UpdatePaymentStatus(c *gin.Context) {
	id, err := parseUintParam(c, "payment_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid payment ID"})
		return
	}

	var data struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, data.Status); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(200)
}

func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	id, err := parseUintParam(c, "payment_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid payment ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(204, gin.H{"message": "Payment deleted"})
}
