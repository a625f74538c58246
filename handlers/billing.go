package handlers

import (
	"io"
	"net/http"

	"github.com/theaitel/loginaitel-sub003/services/billing"
	"github.com/theaitel/loginaitel-sub003/services/privacy"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BillingHandler exposes credit purchase, seat upgrade and webhook endpoints.
type BillingHandler struct {
	Svc    billing.BillingService
	Filter *privacy.Filter
}

func NewBillingHandler(svc billing.BillingService, filter *privacy.Filter) *BillingHandler {
	return &BillingHandler{Svc: svc, Filter: filter}
}

// Plans returns the published seat tiers.
func (h *BillingHandler) Plans(c *gin.Context) {
	c.JSON(http.StatusOK, billing.Plans())
}

func (h *BillingHandler) CreateCreditOrder(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Credits int64 `json:"credits" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	order, err := h.Svc.CreateCreditOrder(tenantID(c), req.Credits)
	if err != nil {
		logger.Error("credit order creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, h.Filter.ClientOrderResponse(order, true))
}

func (h *BillingHandler) CreateSeatUpgrade(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		PlanCode string `json:"plan_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	order, err := h.Svc.CreateSeatUpgradeOrder(tenantID(c), req.PlanCode)
	if err != nil {
		logger.Error("seat upgrade order failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if order == nil {
		// Downgrade applied, or nothing to charge.
		c.JSON(http.StatusOK, gin.H{"message": "Plan change applied, no payment required"})
		return
	}
	c.JSON(http.StatusCreated, h.Filter.ClientOrderResponse(order, true))
}

// Webhook receives Razorpay payment events. The raw body is needed for
// signature verification, so it bypasses JSON binding.
func (h *BillingHandler) Webhook(c *gin.Context) {
	logger := getLogger(c)

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable body"})
		return
	}

	signature := c.GetHeader("X-Razorpay-Signature")
	if err := h.Svc.HandleWebhook(body, signature); err != nil {
		logger.Warn("webhook rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook rejected"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *BillingHandler) ListOrders(c *gin.Context) {
	orders, err := h.Svc.GetOrders(tenantID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}
	resp := make([]map[string]interface{}, 0, len(orders))
	for i := range orders {
		resp = append(resp, h.Filter.ClientOrderResponse(&orders[i], false))
	}
	c.JSON(http.StatusOK, resp)
}
