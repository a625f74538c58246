package admin

import (
	"fmt"
	"time"

	agentRepo "github.com/theaitel/loginaitel-sub003/database/repository/agent"
	clientRepo "github.com/theaitel/loginaitel-sub003/database/repository/client"
	numberRepo "github.com/theaitel/loginaitel-sub003/database/repository/number"
	"github.com/theaitel/loginaitel-sub003/models"
	"github.com/theaitel/loginaitel-sub003/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminService covers platform-operator workflows: tenant provisioning and
// inventory (agent/number) management.
type AdminService interface {
	CreateClient(req CreateClientRequest) (*models.Client, error)
	SuspendClient(id string) error
	ReactivateClient(id string) error
	ListClients() ([]models.Client, error)

	CreateAgent(agent *models.Agent) error
	UpdateAgent(agent *models.Agent) error
	AssignAgent(agentID, clientID string) error
	UnassignAgent(agentID string) error
	ListUnassignedAgents() ([]models.Agent, error)

	CreateNumber(number *models.PhoneNumber) error
	AssignNumber(numberID, clientID string) error
	UnassignNumber(numberID string) error
	ListUnassignedNumbers() ([]models.PhoneNumber, error)
}

// CreateClientRequest carries the fields an operator supplies when
// provisioning a tenant.
type CreateClientRequest struct {
	CompanyName    string `json:"company_name" binding:"required"`
	ContactName    string `json:"contact_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"required"`
	PlanCode       string `json:"plan_code"`
	InitialCredits int64  `json:"initial_credits"`
}

// DefaultAdminService is the production implementation of AdminService.
type DefaultAdminService struct {
	ClientRepo clientRepo.ClientRepository
	AgentRepo  agentRepo.AgentRepository
	NumberRepo numberRepo.NumberRepository
}

func (s *DefaultAdminService) CreateClient(req CreateClientRequest) (*models.Client, error) {
	if existing, err := s.ClientRepo.GetByPhone(req.Phone); err == nil && existing != nil {
		return nil, fmt.Errorf("a client with phone %s already exists", req.Phone)
	}

	planCode := req.PlanCode
	if planCode == "" {
		planCode = "solo"
	}

	client := &models.Client{
		ID:           uuid.New().String(),
		CompanyName:  req.CompanyName,
		ContactName:  req.ContactName,
		Email:        req.Email,
		Phone:        req.Phone,
		Status:       "active",
		PlanCode:     planCode,
		Seats:        1,
		CreditsLeft:  req.InitialCredits,
		CycleStartAt: time.Now(),
	}
	if err := s.ClientRepo.Create(client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	utils.GetLogger().Info("client provisioned",
		zap.String("client_id", client.ID),
		zap.String("plan", client.PlanCode))
	return client, nil
}

func (s *DefaultAdminService) SuspendClient(id string) error {
	return s.setClientStatus(id, "suspended")
}

func (s *DefaultAdminService) ReactivateClient(id string) error {
	return s.setClientStatus(id, "active")
}

func (s *DefaultAdminService) setClientStatus(id, status string) error {
	client, err := s.ClientRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("client not found: %w", err)
	}
	client.Status = status
	if err := s.ClientRepo.Update(client); err != nil {
		return fmt.Errorf("failed to update client status: %w", err)
	}
	return nil
}

func (s *DefaultAdminService) ListClients() ([]models.Client, error) {
	return s.ClientRepo.GetAll()
}

func (s *DefaultAdminService) CreateAgent(agent *models.Agent) error {
	if agent.ID == "" {
		agent.ID = uuid.New().String()
	}
	if agent.ProviderAgentID == "" {
		return fmt.Errorf("agent must reference a provider agent id")
	}
	return s.AgentRepo.Create(agent)
}

func (s *DefaultAdminService) UpdateAgent(agent *models.Agent) error {
	return s.AgentRepo.Update(agent)
}

func (s *DefaultAdminService) AssignAgent(agentID, clientID string) error {
	if _, err := s.ClientRepo.GetByID(clientID); err != nil {
		return fmt.Errorf("client not found: %w", err)
	}
	return s.AgentRepo.AssignToClient(agentID, clientID)
}

func (s *DefaultAdminService) UnassignAgent(agentID string) error {
	return s.AgentRepo.AssignToClient(agentID, "")
}

func (s *DefaultAdminService) ListUnassignedAgents() ([]models.Agent, error) {
	return s.AgentRepo.GetUnassigned()
}

func (s *DefaultAdminService) CreateNumber(number *models.PhoneNumber) error {
	if number.ID == "" {
		number.ID = uuid.New().String()
	}
	if number.Number == "" || number.ProviderNumberID == "" {
		return fmt.Errorf("number and provider number id are required")
	}
	return s.NumberRepo.Create(number)
}

func (s *DefaultAdminService) AssignNumber(numberID, clientID string) error {
	if _, err := s.ClientRepo.GetByID(clientID); err != nil {
		return fmt.Errorf("client not found: %w", err)
	}
	return s.NumberRepo.AssignToClient(numberID, clientID)
}

func (s *DefaultAdminService) UnassignNumber(numberID string) error {
	return s.NumberRepo.AssignToClient(numberID, "")
}

func (s *DefaultAdminService) ListUnassignedNumbers() ([]models.PhoneNumber, error) {
	return s.NumberRepo.GetUnassigned()
}
