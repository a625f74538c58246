package campaign

import (
	"context"
	"fmt"

	campaignRepo "github.com/theaitel/loginaitel-sub003/database/repository/campaign"
	leadRepo "github.com/theaitel/loginaitel-sub003/database/repository/lead"
	subuserRepo "github.com/theaitel/loginaitel-sub003/database/repository/subuser"
	"github.com/theaitel/loginaitel-sub003/models"
	"github.com/theaitel/loginaitel-sub003/services/notify"
	"github.com/theaitel/loginaitel-sub003/services/privacy"
	"github.com/theaitel/loginaitel-sub003/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotOwner is returned when an actor touches a campaign or lead belonging
// to another tenant.
var ErrNotOwner = fmt.Errorf("resource belongs to another client")

// CampaignService manages campaigns and their leads for a tenant.
type CampaignService interface {
	Create(clientID string, campaign *models.Campaign) (*models.Campaign, error)
	Get(clientID, campaignID string) (*models.Campaign, error)
	List(clientID string) ([]models.Campaign, error)
	Update(clientID string, campaign *models.Campaign) error
	SetStatus(clientID, campaignID, status string) error
	Delete(clientID, campaignID string) error

	// UploadLeads bulk-inserts leads into a campaign. Leads missing a phone
	// number are dropped; the count of inserted leads is returned.
	UploadLeads(clientID, campaignID string, leads []models.Lead) (int, error)
	ListLeads(clientID, campaignID string) ([]models.Lead, error)
	// AssignLead hands a lead to a sub-user and pushes an FCM notification.
	AssignLead(ctx context.Context, clientID, leadID, subUserID string) error
	SetLeadStage(clientID, leadID, stage string) error
	// SetLeadNotes encrypts the notes with the tenant cipher before storage.
	SetLeadNotes(clientID, leadID, notes string) error
}

// DefaultCampaignService is the production implementation of CampaignService.
type DefaultCampaignService struct {
	CampaignRepo campaignRepo.CampaignRepository
	LeadRepo     leadRepo.LeadRepository
	SubUserRepo  subuserRepo.SubUserRepository
	Notifier     notify.NotificationService
	Cipher       *privacy.Cipher
}

var validStages = map[string]bool{
	models.LeadNew:        true,
	models.LeadContacted:  true,
	models.LeadInterested: true,
	models.LeadCallback:   true,
	models.LeadConverted:  true,
	models.LeadDropped:    true,
}

var validStatuses = map[string]bool{
	models.CampaignDraft:     true,
	models.CampaignActive:    true,
	models.CampaignPaused:    true,
	models.CampaignCompleted: true,
}

func (s *DefaultCampaignService) Create(clientID string, campaign *models.Campaign) (*models.Campaign, error) {
	campaign.ID = uuid.New().String()
	campaign.ClientID = clientID
	campaign.Status = models.CampaignDraft
	campaign.LeadCount = 0
	campaign.CallsPlaced = 0

	if campaign.Name == "" {
		return nil, fmt.Errorf("campaign name is required")
	}
	if campaign.AgentID == "" || campaign.NumberID == "" {
		return nil, fmt.Errorf("campaign needs an agent and a caller number")
	}
	if err := s.CampaignRepo.Create(campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	return campaign, nil
}

// ownedCampaign fetches a campaign and enforces tenant ownership.
func (s *DefaultCampaignService) ownedCampaign(clientID, campaignID string) (*models.Campaign, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign not found: %w", err)
	}
	if campaign.ClientID != clientID {
		return nil, ErrNotOwner
	}
	return campaign, nil
}

func (s *DefaultCampaignService) ownedLead(clientID, leadID string) (*models.Lead, error) {
	lead, err := s.LeadRepo.GetByID(leadID)
	if err != nil {
		return nil, fmt.Errorf("lead not found: %w", err)
	}
	if lead.ClientID != clientID {
		return nil, ErrNotOwner
	}
	return lead, nil
}

func (s *DefaultCampaignService) Get(clientID, campaignID string) (*models.Campaign, error) {
	return s.ownedCampaign(clientID, campaignID)
}

func (s *DefaultCampaignService) List(clientID string) ([]models.Campaign, error) {
	return s.CampaignRepo.GetByClient(clientID)
}

func (s *DefaultCampaignService) Update(clientID string, campaign *models.Campaign) error {
	existing, err := s.ownedCampaign(clientID, campaign.ID)
	if err != nil {
		return err
	}
	// Counters and ownership are server-managed.
	campaign.ClientID = existing.ClientID
	campaign.LeadCount = existing.LeadCount
	campaign.CallsPlaced = existing.CallsPlaced
	campaign.Status = existing.Status
	return s.CampaignRepo.Update(campaign)
}

func (s *DefaultCampaignService) SetStatus(clientID, campaignID, status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("invalid campaign status %q", status)
	}
	if _, err := s.ownedCampaign(clientID, campaignID); err != nil {
		return err
	}
	return s.CampaignRepo.SetStatus(campaignID, status)
}

func (s *DefaultCampaignService) Delete(clientID, campaignID string) error {
	if _, err := s.ownedCampaign(clientID, campaignID); err != nil {
		return err
	}
	return s.CampaignRepo.Delete(campaignID)
}

func (s *DefaultCampaignService) UploadLeads(clientID, campaignID string, leads []models.Lead) (int, error) {
	if _, err := s.ownedCampaign(clientID, campaignID); err != nil {
		return 0, err
	}

	valid := make([]models.Lead, 0, len(leads))
	for _, lead := range leads {
		if lead.Phone == "" {
			continue
		}
		lead.ID = uuid.New().String()
		lead.ClientID = clientID
		lead.CampaignID = campaignID
		lead.Stage = models.LeadNew
		lead.AssignedTo = ""
		lead.Notes = nil
		valid = append(valid, lead)
	}
	if len(valid) == 0 {
		return 0, fmt.Errorf("no usable leads in upload")
	}

	if err := s.LeadRepo.CreateMany(valid); err != nil {
		return 0, fmt.Errorf("failed to insert leads: %w", err)
	}
	if err := s.CampaignRepo.IncrementLeadCount(campaignID, len(valid)); err != nil {
		utils.GetLogger().Warn("lead count update failed", zap.String("campaign_id", campaignID), zap.Error(err))
	}
	return len(valid), nil
}

func (s *DefaultCampaignService) ListLeads(clientID, campaignID string) ([]models.Lead, error) {
	if _, err := s.ownedCampaign(clientID, campaignID); err != nil {
		return nil, err
	}
	return s.LeadRepo.GetByCampaign(campaignID)
}

func (s *DefaultCampaignService) AssignLead(ctx context.Context, clientID, leadID, subUserID string) error {
	lead, err := s.ownedLead(clientID, leadID)
	if err != nil {
		return err
	}
	subUser, err := s.SubUserRepo.GetByID(subUserID)
	if err != nil {
		return fmt.Errorf("sub-user not found: %w", err)
	}
	if subUser == nil || subUser.ClientID != clientID {
		return ErrNotOwner
	}
	if subUser.Role == models.RoleMonitor {
		return fmt.Errorf("monitors cannot work leads")
	}

	if err := s.LeadRepo.Assign(leadID, subUserID); err != nil {
		return fmt.Errorf("failed to assign lead: %w", err)
	}
	if err := s.SubUserRepo.AddCampaign(subUserID, lead.CampaignID); err != nil {
		return fmt.Errorf("failed to grant campaign access: %w", err)
	}

	if err := s.Notifier.NotifyLeadAssigned(ctx, subUserID, lead); err != nil {
		// Push delivery is best-effort; the assignment itself stands.
		utils.GetLogger().Warn("lead assignment push failed",
			zap.String("lead_id", leadID), zap.Error(err))
	}
	return nil
}

func (s *DefaultCampaignService) SetLeadStage(clientID, leadID, stage string) error {
	if !validStages[stage] {
		return fmt.Errorf("invalid lead stage %q", stage)
	}
	if _, err := s.ownedLead(clientID, leadID); err != nil {
		return err
	}
	return s.LeadRepo.SetStage(leadID, stage)
}

func (s *DefaultCampaignService) SetLeadNotes(clientID, leadID, notes string) error {
	if _, err := s.ownedLead(clientID, leadID); err != nil {
		return err
	}
	payload, err := s.Cipher.Encrypt(notes)
	if err != nil {
		return fmt.Errorf("failed to encrypt notes: %w", err)
	}
	return s.LeadRepo.SetNotes(leadID, payload)
}
