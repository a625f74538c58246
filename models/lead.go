// models/lead.go
package models

import "time"

// Lead stages.
const (
	LeadNew        = "new"
	LeadContacted  = "contacted"
	LeadInterested = "interested"
	LeadCallback   = "callback"
	LeadConverted  = "converted"
	LeadDropped    = "dropped"
)

// Lead is a single contact worked inside a campaign. Notes are stored
// encrypted at rest (privacy.EncryptedPayload).
type Lead struct {
	ID         string      `bson:"id" json:"id"`
	ClientID   string      `bson:"client_id" json:"client_id"`
	CampaignID string      `bson:"campaign_id" json:"campaign_id"`
	FullName   string      `bson:"full_name" json:"full_name"`
	Phone      string      `bson:"phone" json:"phone"`
	Email      string      `bson:"email,omitempty" json:"email,omitempty"`
	Stage      string      `bson:"stage" json:"stage"`
	AssignedTo string      `bson:"assigned_to,omitempty" json:"assigned_to,omitempty"`
	Notes      interface{} `bson:"notes,omitempty" json:"notes,omitempty"`
	CallbackAt *time.Time  `bson:"callback_at,omitempty" json:"callback_at,omitempty"`
	CreatedAt  time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time   `bson:"updated_at" json:"updated_at"`
}
