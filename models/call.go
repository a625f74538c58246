// models/call.go
package models

import "time"

// Call statuses, mirroring the voice provider's lifecycle.
const (
	CallQueued     = "queued"
	CallRinging    = "ringing"
	CallInProgress = "in_progress"
	CallCompleted  = "completed"
	CallFailed     = "failed"
	CallNoAnswer   = "no_answer"
)

// Call is one outbound AI voice call. Transcript and Summary hold
// privacy.EncryptedPayload documents, never plaintext.
type Call struct {
	ID              string      `bson:"id" json:"id"`
	ClientID        string      `bson:"client_id" json:"client_id"`
	CampaignID      string      `bson:"campaign_id" json:"campaign_id"`
	LeadID          string      `bson:"lead_id" json:"lead_id"`
	AgentID         string      `bson:"agent_id" json:"agent_id"`
	FromNumber      string      `bson:"from_number" json:"from_number"`
	CustomerPhone   string      `bson:"customer_phone" json:"customer_phone"`
	ExternalCallID  string      `bson:"external_call_id" json:"external_call_id"`
	Status          string      `bson:"status" json:"status"`
	Outcome         string      `bson:"outcome,omitempty" json:"outcome,omitempty"`
	DurationSeconds int         `bson:"duration_seconds" json:"duration_seconds"`
	Transcript      interface{} `bson:"transcript,omitempty" json:"transcript,omitempty"`
	Summary         interface{} `bson:"summary,omitempty" json:"summary,omitempty"`
	RecordingID     string      `bson:"recording_id,omitempty" json:"recording_id,omitempty"`
	ProviderCost    float64     `bson:"provider_cost,omitempty" json:"provider_cost,omitempty"`
	StartedAt       *time.Time  `bson:"started_at,omitempty" json:"started_at,omitempty"`
	EndedAt         *time.Time  `bson:"ended_at,omitempty" json:"ended_at,omitempty"`
	CreatedAt       time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `bson:"updated_at" json:"updated_at"`
}
