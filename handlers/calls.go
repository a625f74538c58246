package handlers

import (
	"errors"
	"net/http"

	clientRepoPkg "github.com/theaitel/loginaitel-sub003/database/repository/client"
	"github.com/theaitel/loginaitel-sub003/services/calls"
	"github.com/theaitel/loginaitel-sub003/services/privacy"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CallHandler exposes call placement and call history endpoints.
type CallHandler struct {
	Svc    calls.CallService
	Filter *privacy.Filter
}

func NewCallHandler(svc calls.CallService, filter *privacy.Filter) *CallHandler {
	return &CallHandler{Svc: svc, Filter: filter}
}

func callStatus(err error) int {
	switch {
	case errors.Is(err, calls.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, clientRepoPkg.ErrInsufficientCredits):
		return http.StatusPaymentRequired
	}
	return http.StatusInternalServerError
}

// PlaceCall dials a lead through the campaign's agent and caller number.
func (h *CallHandler) PlaceCall(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		CampaignID string `json:"campaign_id" binding:"required"`
		LeadID     string `json:"lead_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	call, err := h.Svc.PlaceCall(c.Request.Context(), tenantID(c), req.CampaignID, req.LeadID)
	if err != nil {
		logger.Error("call placement failed", zap.Error(err))
		c.JSON(callStatus(err), gin.H{"error": err.Error()})
		return
	}

	resp, err := h.Filter.ClientCallResponse(call)
	if err != nil {
		logger.Error("call response build failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to shape response"})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CallHandler) Get(c *gin.Context) {
	call, err := h.Svc.Get(tenantID(c), c.Param("id"))
	if err != nil {
		c.JSON(callStatus(err), gin.H{"error": err.Error()})
		return
	}

	if privacyRole(c).Privileged() {
		sanitized, err := h.Filter.Sanitize(toGeneric(call), privacyRole(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to shape response"})
			return
		}
		c.JSON(http.StatusOK, sanitized)
		return
	}

	resp, err := h.Filter.ClientCallResponse(call)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to shape response"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CallHandler) ListByCampaign(c *gin.Context) {
	callList, err := h.Svc.ListByCampaign(tenantID(c), c.Param("id"))
	if err != nil {
		c.JSON(callStatus(err), gin.H{"error": err.Error()})
		return
	}

	out := make([]map[string]interface{}, 0, len(callList))
	for i := range callList {
		resp, err := h.Filter.ClientCallResponse(&callList[i])
		if err != nil {
			getLogger(c).Error("call response build failed", zap.Error(err))
			continue
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, out)
}

func (h *CallHandler) ListByClient(c *gin.Context) {
	callList, err := h.Svc.ListByClient(tenantID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list calls"})
		return
	}

	out := make([]map[string]interface{}, 0, len(callList))
	for i := range callList {
		resp, err := h.Filter.ClientCallResponse(&callList[i])
		if err != nil {
			getLogger(c).Error("call response build failed", zap.Error(err))
			continue
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, out)
}

// RecordingURL returns a short-lived signed link to the archived recording.
func (h *CallHandler) RecordingURL(c *gin.Context) {
	url, err := h.Svc.RecordingURL(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		c.JSON(callStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
