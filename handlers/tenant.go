package handlers

import (
	"errors"
	"net/http"

	"github.com/theaitel/loginaitel-sub003/services/privacy"
	"github.com/theaitel/loginaitel-sub003/services/tenant"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TenantHandler exposes a client's own-account endpoints.
type TenantHandler struct {
	Svc    tenant.TenantService
	Filter *privacy.Filter
}

func NewTenantHandler(svc tenant.TenantService, filter *privacy.Filter) *TenantHandler {
	return &TenantHandler{Svc: svc, Filter: filter}
}

// GetAccount returns the requester's own tenant record.
func (h *TenantHandler) GetAccount(c *gin.Context) {
	client, err := h.Svc.GetClient(tenantID(c))
	if err != nil {
		getLogger(c).Error("account fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account"})
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *TenantHandler) InviteSubUser(c *gin.Context) {
	logger := getLogger(c)

	var req tenant.InviteSubUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	su, err := h.Svc.InviteSubUser(tenantID(c), req)
	if err != nil {
		if errors.Is(err, tenant.ErrSeatsExhausted) {
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
			return
		}
		logger.Error("sub-user invite failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, su)
}

func (h *TenantHandler) ListSubUsers(c *gin.Context) {
	subUsers, err := h.Svc.ListSubUsers(tenantID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list team"})
		return
	}

	sanitized, err := h.Filter.Sanitize(toGeneric(subUsers), privacyRole(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list team"})
		return
	}
	c.JSON(http.StatusOK, sanitized)
}

func (h *TenantHandler) DeactivateSubUser(c *gin.Context) {
	if err := h.Svc.DeactivateSubUser(tenantID(c), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sub-user deactivated"})
}

// RegisterDevice stores the caller's FCM token for push delivery.
func (h *TenantHandler) RegisterDevice(c *gin.Context) {
	var req struct {
		FCMToken string `json:"fcm_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Svc.RegisterDevice(c.GetString("actorID"), req.FCMToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device registered"})
}

// ListAgents returns the tenant's assigned agents with provider internals
// stripped.
func (h *TenantHandler) ListAgents(c *gin.Context) {
	agents, err := h.Svc.ListAgents(tenantID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list agents"})
		return
	}

	out := make([]map[string]interface{}, 0, len(agents))
	for i := range agents {
		out = append(out, h.Filter.ClientAgentResponse(&agents[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *TenantHandler) ListNumbers(c *gin.Context) {
	numbers, err := h.Svc.ListNumbers(tenantID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list numbers"})
		return
	}

	sanitized, err := h.Filter.Sanitize(toGeneric(numbers), privacyRole(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list numbers"})
		return
	}
	c.JSON(http.StatusOK, sanitized)
}
