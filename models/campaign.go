// models/campaign.go
package models

import "time"

// Campaign statuses.
const (
	CampaignDraft     = "draft"
	CampaignActive    = "active"
	CampaignPaused    = "paused"
	CampaignCompleted = "completed"
)

// Campaign groups leads dialed by one agent from one caller number.
type Campaign struct {
	ID           string    `bson:"id" json:"id"`
	ClientID     string    `bson:"client_id" json:"client_id"`
	Name         string    `bson:"name" json:"name"`
	Description  string    `bson:"description" json:"description"`
	AgentID      string    `bson:"agent_id" json:"agent_id"`
	NumberID     string    `bson:"number_id" json:"number_id"`
	Status       string    `bson:"status" json:"status"`
	LeadCount    int       `bson:"lead_count" json:"lead_count"`
	CallsPlaced  int       `bson:"calls_placed" json:"calls_placed"`
	InternalNote string    `bson:"internal_note,omitempty" json:"internal_note,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
