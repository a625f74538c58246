package calls

import (
	"context"
	"fmt"
	"os"
	"time"

	agentRepo "github.com/theaitel/loginaitel-sub003/database/repository/agent"
	callRepo "github.com/theaitel/loginaitel-sub003/database/repository/call"
	campaignRepo "github.com/theaitel/loginaitel-sub003/database/repository/campaign"
	clientRepo "github.com/theaitel/loginaitel-sub003/database/repository/client"
	leadRepo "github.com/theaitel/loginaitel-sub003/database/repository/lead"
	numberRepo "github.com/theaitel/loginaitel-sub003/database/repository/number"
	"github.com/theaitel/loginaitel-sub003/models"
	"github.com/theaitel/loginaitel-sub003/services/privacy"
	"github.com/theaitel/loginaitel-sub003/services/storage"
	"github.com/theaitel/loginaitel-sub003/services/voice"
	"github.com/theaitel/loginaitel-sub003/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// pollInterval is how long the worker waits between provider status checks.
const pollInterval = 20 * time.Second

// ErrNotOwner is returned when an actor touches a call belonging to another
// tenant.
var ErrNotOwner = fmt.Errorf("call belongs to another client")

// PollEnqueuer schedules a deferred status poll for a placed call. The cron
// worker implements it with asynq.
type PollEnqueuer interface {
	EnqueuePoll(callID string, delay time.Duration) error
}

// CallService orchestrates outbound calls against the voice provider.
type CallService interface {
	// PlaceCall reserves a credit, asks the provider to dial the lead, and
	// records the call. The credit is refunded if the provider rejects it.
	PlaceCall(ctx context.Context, clientID, campaignID, leadID string) (*models.Call, error)
	Get(clientID, callID string) (*models.Call, error)
	ListByCampaign(clientID, campaignID string) ([]models.Call, error)
	ListByClient(clientID string) ([]models.Call, error)
	// RecordingURL returns a short-lived signed URL for an archived recording.
	RecordingURL(ctx context.Context, clientID, callID string) (string, error)
	// Poll syncs one call with the provider. Returns true when the call has
	// reached a terminal state and needs no further polling.
	Poll(ctx context.Context, callID string) (bool, error)
}

// DefaultCallService is the production implementation of CallService.
type DefaultCallService struct {
	CallRepo     callRepo.CallRepository
	CampaignRepo campaignRepo.CampaignRepository
	LeadRepo     leadRepo.LeadRepository
	AgentRepo    agentRepo.AgentRepository
	NumberRepo   numberRepo.NumberRepository
	ClientRepo   clientRepo.ClientRepository
	Provider     *voice.ProviderClient
	Storage      storage.StorageService
	Summarizer   voice.Summarizer
	Transcriber  voice.Transcriber
	Cipher       *privacy.Cipher
	Enqueuer     PollEnqueuer
}

func (s *DefaultCallService) PlaceCall(ctx context.Context, clientID, campaignID, leadID string) (*models.Call, error) {
	logger := utils.GetLogger().With(zap.String("component", "calls"))

	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign not found: %w", err)
	}
	if campaign.ClientID != clientID {
		return nil, ErrNotOwner
	}
	if campaign.Status != models.CampaignActive {
		return nil, fmt.Errorf("campaign is not active")
	}

	lead, err := s.LeadRepo.GetByID(leadID)
	if err != nil {
		return nil, fmt.Errorf("lead not found: %w", err)
	}
	if lead.ClientID != clientID || lead.CampaignID != campaignID {
		return nil, ErrNotOwner
	}

	agent, err := s.AgentRepo.GetByID(campaign.AgentID)
	if err != nil {
		return nil, fmt.Errorf("agent not found: %w", err)
	}
	number, err := s.NumberRepo.GetByID(campaign.NumberID)
	if err != nil {
		return nil, fmt.Errorf("caller number not found: %w", err)
	}
	if agent.ClientID != clientID || number.ClientID != clientID {
		return nil, fmt.Errorf("campaign references unassigned inventory")
	}

	if err := s.ClientRepo.DebitCredit(clientID); err != nil {
		return nil, err
	}

	providerCall, err := s.Provider.PlaceCall(ctx, voice.PlaceCallRequest{
		AgentID:    agent.ProviderAgentID,
		FromNumber: number.Number,
		ToNumber:   lead.Phone,
		Metadata: map[string]string{
			"campaign_id": campaignID,
			"lead_id":     leadID,
		},
	})
	if err != nil {
		// Provider rejected the call: give the credit back.
		if refundErr := s.ClientRepo.AddCredits(clientID, 1); refundErr != nil {
			logger.Error("credit refund failed",
				zap.String("client_id", clientID), zap.Error(refundErr))
		}
		return nil, fmt.Errorf("provider rejected call: %w", err)
	}

	call := &models.Call{
		ID:             uuid.New().String(),
		ClientID:       clientID,
		CampaignID:     campaignID,
		LeadID:         leadID,
		AgentID:        agent.ID,
		FromNumber:     number.Number,
		CustomerPhone:  lead.Phone,
		ExternalCallID: providerCall.ID,
		Status:         models.CallQueued,
	}
	if err := s.CallRepo.Create(call); err != nil {
		return nil, fmt.Errorf("failed to persist call: %w", err)
	}

	if err := s.CampaignRepo.IncrementCallsPlaced(campaignID); err != nil {
		logger.Warn("calls placed counter update failed", zap.Error(err))
	}
	if lead.Stage == models.LeadNew {
		if err := s.LeadRepo.SetStage(leadID, models.LeadContacted); err != nil {
			logger.Warn("lead stage update failed", zap.Error(err))
		}
	}

	if err := s.Enqueuer.EnqueuePoll(call.ID, pollInterval); err != nil {
		logger.Error("failed to enqueue call poll",
			zap.String("call_id", call.ID), zap.Error(err))
	}

	logger.Info("call placed",
		zap.String("call_id", call.ID),
		zap.String("campaign_id", campaignID))
	return call, nil
}

func (s *DefaultCallService) ownedCall(clientID, callID string) (*models.Call, error) {
	call, err := s.CallRepo.GetByID(callID)
	if err != nil {
		return nil, fmt.Errorf("call not found: %w", err)
	}
	if call.ClientID != clientID {
		return nil, ErrNotOwner
	}
	return call, nil
}

func (s *DefaultCallService) Get(clientID, callID string) (*models.Call, error) {
	return s.ownedCall(clientID, callID)
}

func (s *DefaultCallService) ListByCampaign(clientID, campaignID string) ([]models.Call, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign not found: %w", err)
	}
	if campaign.ClientID != clientID {
		return nil, ErrNotOwner
	}
	return s.CallRepo.GetByCampaign(campaignID)
}

func (s *DefaultCallService) ListByClient(clientID string) ([]models.Call, error) {
	return s.CallRepo.GetByClient(clientID)
}

func (s *DefaultCallService) RecordingURL(ctx context.Context, clientID, callID string) (string, error) {
	call, err := s.ownedCall(clientID, callID)
	if err != nil {
		return "", err
	}
	if call.RecordingID == "" {
		return "", fmt.Errorf("call has no recording")
	}
	return s.Storage.GetSecureDownloadURL(ctx, call.RecordingID, 15*time.Minute)
}

// Poll syncs the call with the provider, encrypting any new transcript
// content at rest and running post-call processing on terminal states.
func (s *DefaultCallService) Poll(ctx context.Context, callID string) (bool, error) {
	logger := utils.GetLogger().With(zap.String("call_id", callID))

	call, err := s.CallRepo.GetByID(callID)
	if err != nil {
		return false, fmt.Errorf("call not found: %w", err)
	}

	providerCall, err := s.Provider.GetCall(ctx, call.ExternalCallID)
	if err != nil {
		return false, err
	}

	fields := bson.M{"status": normalizeStatus(providerCall.Status)}

	transcript := providerCall.Transcript
	if transcript != "" {
		prev, err := s.decryptStored(call.Transcript)
		if err != nil {
			logger.Warn("stored transcript unreadable, replacing", zap.Error(err))
			prev = ""
		}
		if appended := voice.DiffTranscripts(prev, transcript); len(appended) > 0 {
			payload, err := s.Cipher.Encrypt(transcript)
			if err != nil {
				return false, fmt.Errorf("failed to encrypt transcript: %w", err)
			}
			fields["transcript"] = payload
			logger.Debug("transcript grew", zap.Int("new_turns", len(appended)))
		}
	}

	terminal := isTerminal(providerCall.Status)
	if terminal {
		fields["outcome"] = providerCall.Outcome
		fields["duration_seconds"] = providerCall.Duration
		fields["provider_cost"] = providerCall.Cost
		if t, err := time.Parse(time.RFC3339, providerCall.StartedAt); err == nil {
			fields["started_at"] = t
		}
		if t, err := time.Parse(time.RFC3339, providerCall.EndedAt); err == nil {
			fields["ended_at"] = t
		}

		transcript = s.processRecording(ctx, call, providerCall, transcript, fields, logger)

		if transcript != "" && s.Summarizer != nil {
			summary, err := s.Summarizer.Summarize(ctx, transcript)
			if err != nil {
				logger.Warn("summary generation failed", zap.Error(err))
			} else if summary != "" {
				payload, err := s.Cipher.Encrypt(summary)
				if err != nil {
					return false, fmt.Errorf("failed to encrypt summary: %w", err)
				}
				fields["summary"] = payload
			}
		}
	}

	if err := s.CallRepo.SetFields(callID, fields); err != nil {
		return false, fmt.Errorf("failed to update call: %w", err)
	}
	return terminal, nil
}

// processRecording archives the provider recording and, when the provider
// returned audio but no transcript, falls back to speech-to-text. Returns the
// best transcript available.
func (s *DefaultCallService) processRecording(
	ctx context.Context,
	call *models.Call,
	providerCall *voice.ProviderCall,
	transcript string,
	fields bson.M,
	logger *zap.Logger,
) string {
	if providerCall.RecordingURL == "" || call.RecordingID != "" {
		return transcript
	}

	recordingID, err := s.Storage.ArchiveRecording(ctx, providerCall.RecordingURL, call.ID)
	if err != nil {
		logger.Warn("recording archive failed", zap.Error(err))
		return transcript
	}
	fields["recording_id"] = recordingID

	if transcript != "" || s.Transcriber == nil {
		return transcript
	}

	signedURL, err := s.Storage.GetSecureDownloadURL(ctx, recordingID, 5*time.Minute)
	if err != nil {
		logger.Warn("recording url for transcription failed", zap.Error(err))
		return transcript
	}
	tempPath, err := s.Storage.DownloadToTemp(ctx, signedURL, call.ID)
	if err != nil {
		logger.Warn("recording download for transcription failed", zap.Error(err))
		return transcript
	}
	defer removeTemp(tempPath, logger)

	text, err := s.Transcriber.TranscribeRecording(ctx, tempPath)
	if err != nil {
		logger.Warn("fallback transcription failed", zap.Error(err))
		return transcript
	}
	if text == "" {
		return transcript
	}

	payload, err := s.Cipher.Encrypt(text)
	if err != nil {
		logger.Error("failed to encrypt fallback transcript", zap.Error(err))
		return transcript
	}
	fields["transcript"] = payload
	return text
}

// decryptStored recovers the plaintext of a transcript previously written by
// Poll. BSON round-trips the payload as a generic document, so the value is
// normalized back into an EncryptedPayload first.
func (s *DefaultCallService) decryptStored(stored interface{}) (string, error) {
	if stored == nil {
		return "", nil
	}
	payload, ok := privacy.StoredPayload(stored)
	if !ok {
		return "", fmt.Errorf("stored value is not an encrypted document")
	}
	return s.Cipher.Decrypt(payload)
}

func removeTemp(path string, logger *zap.Logger) {
	if err := os.Remove(path); err != nil {
		logger.Warn("temp file cleanup failed", zap.Error(err))
	}
}

// normalizeStatus maps provider statuses onto our call lifecycle; unknown
// statuses pass through for visibility.
func normalizeStatus(status string) string {
	switch status {
	case "queued", "pending":
		return models.CallQueued
	case "ringing":
		return models.CallRinging
	case "in_progress", "ongoing":
		return models.CallInProgress
	case "completed", "ended":
		return models.CallCompleted
	case "failed", "busy", "error":
		return models.CallFailed
	case "no_answer", "no-answer":
		return models.CallNoAnswer
	default:
		return status
	}
}

func isTerminal(status string) bool {
	switch normalizeStatus(status) {
	case models.CallCompleted, models.CallFailed, models.CallNoAnswer:
		return true
	}
	return false
}
