package subuserRepo

import "github.com/theaitel/loginaitel-sub003/models"

// SubUserRepository defines methods for team-member data access.
type SubUserRepository interface {
	// GetByID retrieves a sub-user by its unique ID.
	GetByID(id string) (*models.SubUser, error)
	// GetByPhone retrieves a sub-user by phone number.
	GetByPhone(phone string) (*models.SubUser, error)
	// GetByClient retrieves all sub-users under a client.
	GetByClient(clientID string) ([]models.SubUser, error)
	// CountActiveByClient counts active seats in use.
	CountActiveByClient(clientID string) (int64, error)
	// Create inserts a new sub-user record.
	Create(su *models.SubUser) error
	// Update modifies an existing sub-user record.
	Update(su *models.SubUser) error
	// Delete removes a sub-user record by its ID.
	Delete(id string) error
	// SetFCMToken stores the device push token.
	SetFCMToken(id, token string) error
	// AddCampaign grants the sub-user access to a campaign.
	AddCampaign(id, campaignID string) error
}
