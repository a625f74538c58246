package handlers

import (
	"net/http"

	"github.com/theaitel/loginaitel-sub003/models"
	"github.com/theaitel/loginaitel-sub003/services/admin"
	"github.com/theaitel/loginaitel-sub003/services/privacy"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes platform-operator endpoints.
type AdminHandler struct {
	Svc    admin.AdminService
	Filter *privacy.Filter
}

func NewAdminHandler(svc admin.AdminService, filter *privacy.Filter) *AdminHandler {
	return &AdminHandler{Svc: svc, Filter: filter}
}

func (h *AdminHandler) CreateClient(c *gin.Context) {
	logger := getLogger(c)

	var req admin.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	client, err := h.Svc.CreateClient(req)
	if err != nil {
		logger.Error("client creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, client)
}

// ListClients returns all tenants, passed through the privacy filter with the
// requester's role.
func (h *AdminHandler) ListClients(c *gin.Context) {
	logger := getLogger(c)

	clients, err := h.Svc.ListClients()
	if err != nil {
		logger.Error("client listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clients"})
		return
	}

	sanitized, err := h.Filter.Sanitize(toGeneric(clients), privacyRole(c))
	if err != nil {
		logger.Error("client list sanitization failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clients"})
		return
	}
	c.JSON(http.StatusOK, sanitized)
}

func (h *AdminHandler) SuspendClient(c *gin.Context) {
	if err := h.Svc.SuspendClient(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client suspended"})
}

func (h *AdminHandler) ReactivateClient(c *gin.Context) {
	if err := h.Svc.ReactivateClient(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client reactivated"})
}

func (h *AdminHandler) CreateAgent(c *gin.Context) {
	var agent models.Agent
	if err := c.ShouldBindJSON(&agent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Svc.CreateAgent(&agent); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, agent)
}

func (h *AdminHandler) UpdateAgent(c *gin.Context) {
	var agent models.Agent
	if err := c.ShouldBindJSON(&agent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	agent.ID = c.Param("id")
	if err := h.Svc.UpdateAgent(&agent); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, agent)
}

func (h *AdminHandler) AssignAgent(c *gin.Context) {
	var req struct {
		ClientID string `json:"client_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Svc.AssignAgent(c.Param("id"), req.ClientID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Agent assigned"})
}

func (h *AdminHandler) UnassignAgent(c *gin.Context) {
	if err := h.Svc.UnassignAgent(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Agent unassigned"})
}

func (h *AdminHandler) ListUnassignedAgents(c *gin.Context) {
	agents, err := h.Svc.ListUnassignedAgents()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list agents"})
		return
	}
	c.JSON(http.StatusOK, agents)
}

func (h *AdminHandler) CreateNumber(c *gin.Context) {
	var number models.PhoneNumber
	if err := c.ShouldBindJSON(&number); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Svc.CreateNumber(&number); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, number)
}

func (h *AdminHandler) AssignNumber(c *gin.Context) {
	var req struct {
		ClientID string `json:"client_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Svc.AssignNumber(c.Param("id"), req.ClientID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Number assigned"})
}

func (h *AdminHandler) UnassignNumber(c *gin.Context) {
	if err := h.Svc.UnassignNumber(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Number unassigned"})
}

func (h *AdminHandler) ListUnassignedNumbers(c *gin.Context) {
	numbers, err := h.Svc.ListUnassignedNumbers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list numbers"})
		return
	}
	c.JSON(http.StatusOK, numbers)
}
