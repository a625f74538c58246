// models/subuser.go
package models

import "time"

// Sub-user roles within a tenant.
const (
	RoleTelecaller  = "telecaller"
	RoleLeadManager = "lead_manager"
	RoleMonitor     = "monitor"
)

// SubUser is a seat-consuming team member under a client account.
type SubUser struct {
	ID          string    `bson:"id" json:"id"`
	ClientID    string    `bson:"client_id" json:"client_id"`
	FullName    string    `bson:"full_name" json:"full_name"`
	Phone       string    `bson:"phone" json:"phone"`
	Email       string    `bson:"email" json:"email"`
	Role        string    `bson:"role" json:"role"`
	Active      bool      `bson:"active" json:"active"`
	FCMToken    string    `bson:"fcm_token,omitempty" json:"fcm_token,omitempty"`
	CampaignIDs []string  `bson:"campaign_ids,omitempty" json:"campaign_ids,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
