package handlers

import (
	"errors"
	"net/http"

	"github.com/theaitel/loginaitel-sub003/models"
	"github.com/theaitel/loginaitel-sub003/services/campaign"
	"github.com/theaitel/loginaitel-sub003/services/privacy"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CampaignHandler exposes campaign and lead endpoints for tenants.
type CampaignHandler struct {
	Svc    campaign.CampaignService
	Filter *privacy.Filter
}

func NewCampaignHandler(svc campaign.CampaignService, filter *privacy.Filter) *CampaignHandler {
	return &CampaignHandler{Svc: svc, Filter: filter}
}

// campaignStatus maps service errors onto HTTP statuses.
func campaignStatus(err error) int {
	if errors.Is(err, campaign.ErrNotOwner) {
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

func (h *CampaignHandler) Create(c *gin.Context) {
	var req models.Campaign
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	created, err := h.Svc.Create(tenantID(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Get returns one campaign. Owners get the full record; anyone else gets the
// forbidden stub from the response builder.
func (h *CampaignHandler) Get(c *gin.Context) {
	cmp, err := h.Svc.Get(tenantID(c), c.Param("id"))
	if errors.Is(err, campaign.ErrNotOwner) {
		c.JSON(http.StatusForbidden, h.Filter.ClientCampaignResponse(nil, false))
		return
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}
	c.JSON(http.StatusOK, h.Filter.ClientCampaignResponse(cmp, true))
}

func (h *CampaignHandler) List(c *gin.Context) {
	campaigns, err := h.Svc.List(tenantID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list campaigns"})
		return
	}

	out := make([]map[string]interface{}, 0, len(campaigns))
	for i := range campaigns {
		out = append(out, h.Filter.ClientCampaignResponse(&campaigns[i], true))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CampaignHandler) Update(c *gin.Context) {
	var req models.Campaign
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.ID = c.Param("id")

	if err := h.Svc.Update(tenantID(c), &req); err != nil {
		c.JSON(campaignStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign updated"})
}

func (h *CampaignHandler) SetStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Svc.SetStatus(tenantID(c), c.Param("id"), req.Status); err != nil {
		c.JSON(campaignStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

func (h *CampaignHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(tenantID(c), c.Param("id")); err != nil {
		c.JSON(campaignStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted"})
}

// UploadLeads bulk-inserts a JSON array of leads into the campaign.
func (h *CampaignHandler) UploadLeads(c *gin.Context) {
	logger := getLogger(c)

	var leads []models.Lead
	if err := c.ShouldBindJSON(&leads); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	inserted, err := h.Svc.UploadLeads(tenantID(c), c.Param("id"), leads)
	if err != nil {
		logger.Error("lead upload failed", zap.Error(err))
		c.JSON(campaignStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"inserted": inserted})
}

// ListLeads returns a campaign's leads through the per-lead response builder.
// Telecallers only see full details for leads assigned to them.
func (h *CampaignHandler) ListLeads(c *gin.Context) {
	leads, err := h.Svc.ListLeads(tenantID(c), c.Param("id"))
	if err != nil {
		c.JSON(campaignStatus(err), gin.H{"error": err.Error()})
		return
	}

	role := c.GetString("role")
	actorID := c.GetString("actorID")

	out := make([]map[string]interface{}, 0, len(leads))
	for i := range leads {
		isOwner := role != models.RoleTelecaller || leads[i].AssignedTo == actorID
		resp, err := h.Filter.ClientLeadResponse(&leads[i], isOwner)
		if err != nil {
			getLogger(c).Error("lead response build failed", zap.Error(err))
			continue
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, out)
}

func (h *CampaignHandler) AssignLead(c *gin.Context) {
	var req struct {
		SubUserID string `json:"sub_user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Svc.AssignLead(c.Request.Context(), tenantID(c), c.Param("leadId"), req.SubUserID); err != nil {
		c.JSON(campaignStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lead assigned"})
}

func (h *CampaignHandler) SetLeadStage(c *gin.Context) {
	var req struct {
		Stage string `json:"stage" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Svc.SetLeadStage(tenantID(c), c.Param("leadId"), req.Stage); err != nil {
		c.JSON(campaignStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stage updated"})
}

func (h *CampaignHandler) SetLeadNotes(c *gin.Context) {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Svc.SetLeadNotes(tenantID(c), c.Param("leadId"), req.Notes); err != nil {
		c.JSON(campaignStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notes saved"})
}
