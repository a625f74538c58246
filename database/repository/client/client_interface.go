package clientRepo

import (
	"github.com/theaitel/loginaitel-sub003/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ClientRepository defines methods for tenant data access.
type ClientRepository interface {
	// GetByID retrieves a client by its unique ID.
	GetByID(id string) (*models.Client, error)
	// GetByPhone retrieves a client by its registered phone number.
	GetByPhone(phone string) (*models.Client, error)
	// GetAll retrieves all clients.
	GetAll() ([]models.Client, error)
	// Create inserts a new client record.
	Create(client *models.Client) error
	// Update modifies an existing client record.
	Update(client *models.Client) error
	// Delete removes a client record by its ID.
	Delete(id string) error
	// GetByIDWithProjection retrieves a client by its unique ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.Client, error)
	// AddCredits atomically increments the client's credit balance.
	AddCredits(id string, delta int64) error
	// DebitCredit atomically reserves one call credit. Returns
	// ErrInsufficientCredits when the balance is already zero.
	DebitCredit(id string) error
	// SetPlan updates the seat plan after a paid upgrade.
	SetPlan(id, planCode string, seats int) error
}
