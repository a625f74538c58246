package tenant

import (
	"fmt"

	agentRepo "github.com/theaitel/loginaitel-sub003/database/repository/agent"
	clientRepo "github.com/theaitel/loginaitel-sub003/database/repository/client"
	numberRepo "github.com/theaitel/loginaitel-sub003/database/repository/number"
	subuserRepo "github.com/theaitel/loginaitel-sub003/database/repository/subuser"
	"github.com/theaitel/loginaitel-sub003/models"

	"github.com/google/uuid"
)

// ErrSeatsExhausted is returned when adding a sub-user would exceed the
// client's seat plan.
var ErrSeatsExhausted = fmt.Errorf("no seats left on the current plan")

// TenantService covers a client's own-account workflows: team management and
// listing assigned inventory.
type TenantService interface {
	GetClient(clientID string) (*models.Client, error)
	// InviteSubUser adds a team member, consuming a seat.
	InviteSubUser(clientID string, req InviteSubUserRequest) (*models.SubUser, error)
	ListSubUsers(clientID string) ([]models.SubUser, error)
	DeactivateSubUser(clientID, subUserID string) error
	RegisterDevice(subUserID, fcmToken string) error
	ListAgents(clientID string) ([]models.Agent, error)
	ListNumbers(clientID string) ([]models.PhoneNumber, error)
}

// InviteSubUserRequest carries the fields for adding a team member.
type InviteSubUserRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email"`
	Role     string `json:"role" binding:"required"`
}

// DefaultTenantService is the production implementation of TenantService.
type DefaultTenantService struct {
	ClientRepo  clientRepo.ClientRepository
	SubUserRepo subuserRepo.SubUserRepository
	AgentRepo   agentRepo.AgentRepository
	NumberRepo  numberRepo.NumberRepository
}

var validRoles = map[string]bool{
	models.RoleTelecaller:  true,
	models.RoleLeadManager: true,
	models.RoleMonitor:     true,
}

func (s *DefaultTenantService) GetClient(clientID string) (*models.Client, error) {
	return s.ClientRepo.GetByID(clientID)
}

func (s *DefaultTenantService) InviteSubUser(clientID string, req InviteSubUserRequest) (*models.SubUser, error) {
	if !validRoles[req.Role] {
		return nil, fmt.Errorf("invalid role %q", req.Role)
	}
	client, err := s.ClientRepo.GetByID(clientID)
	if err != nil {
		return nil, fmt.Errorf("client not found: %w", err)
	}

	inUse, err := s.SubUserRepo.CountActiveByClient(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to count seats: %w", err)
	}
	if inUse >= int64(client.Seats) {
		return nil, ErrSeatsExhausted
	}

	if existing, err := s.SubUserRepo.GetByPhone(req.Phone); err == nil && existing != nil {
		return nil, fmt.Errorf("phone %s is already registered", req.Phone)
	}

	su := &models.SubUser{
		ID:       uuid.New().String(),
		ClientID: clientID,
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		Role:     req.Role,
		Active:   true,
	}
	if err := s.SubUserRepo.Create(su); err != nil {
		return nil, fmt.Errorf("failed to create sub-user: %w", err)
	}
	return su, nil
}

func (s *DefaultTenantService) ListSubUsers(clientID string) ([]models.SubUser, error) {
	return s.SubUserRepo.GetByClient(clientID)
}

func (s *DefaultTenantService) DeactivateSubUser(clientID, subUserID string) error {
	su, err := s.SubUserRepo.GetByID(subUserID)
	if err != nil {
		return fmt.Errorf("sub-user not found: %w", err)
	}
	if su.ClientID != clientID {
		return fmt.Errorf("sub-user belongs to another client")
	}
	su.Active = false
	return s.SubUserRepo.Update(su)
}

func (s *DefaultTenantService) RegisterDevice(subUserID, fcmToken string) error {
	if fcmToken == "" {
		return fmt.Errorf("fcm token is required")
	}
	return s.SubUserRepo.SetFCMToken(subUserID, fcmToken)
}

func (s *DefaultTenantService) ListAgents(clientID string) ([]models.Agent, error) {
	return s.AgentRepo.GetByClient(clientID)
}

func (s *DefaultTenantService) ListNumbers(clientID string) ([]models.PhoneNumber, error) {
	return s.NumberRepo.GetByClient(clientID)
}
