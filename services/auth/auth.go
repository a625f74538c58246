package auth

import (
	"context"
	"fmt"
	"time"

	adminRepo "github.com/theaitel/loginaitel-sub003/database/repository/admin"
	clientRepo "github.com/theaitel/loginaitel-sub003/database/repository/client"
	subuserRepo "github.com/theaitel/loginaitel-sub003/database/repository/subuser"
	"github.com/theaitel/loginaitel-sub003/services/voice"
	"github.com/theaitel/loginaitel-sub003/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// sessionDuration is how long issued tokens stay valid.
const sessionDuration = 24 * time.Hour

// Session is the result of a successful login.
type Session struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	ActorID  string `json:"actor_id"`
	ClientID string `json:"client_id,omitempty"`
}

// AuthService handles OTP phone login for clients and sub-users, and
// password login for platform operators.
type AuthService interface {
	// RequestOTP generates an OTP for the phone number and delivers it by SMS.
	RequestOTP(ctx context.Context, phone string) error
	// VerifyOTP checks the OTP and issues a session for the matching client or
	// sub-user account. Phones not registered on any account are rejected.
	VerifyOTP(ctx context.Context, phone, otp string) (*Session, error)
	// AdminLogin authenticates a platform operator by email and password.
	AdminLogin(email, password string) (*Session, error)
	// Logout revokes the session token.
	Logout(token string) error
}

// DefaultAuthService is the production implementation of AuthService.
type DefaultAuthService struct {
	ClientRepo  clientRepo.ClientRepository
	SubUserRepo subuserRepo.SubUserRepository
	AdminRepo   adminRepo.AdminRepository
	SMS         *voice.ProviderClient
}

func (s *DefaultAuthService) RequestOTP(ctx context.Context, phone string) error {
	logger := utils.GetLogger().With(zap.String("component", "auth"))

	// Only phones registered on an account get an OTP; respond identically
	// either way so the endpoint does not leak which phones exist.
	if !s.phoneRegistered(phone) {
		logger.Info("otp requested for unknown phone")
		return nil
	}

	otp, err := utils.GenerateSecureOTP(6)
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}
	if err := utils.StoreOTP(phone, otp); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	msg := fmt.Sprintf("Your login code is %s. It expires in 5 minutes.", otp)
	if err := s.SMS.SendSMS(ctx, phone, msg); err != nil {
		return fmt.Errorf("failed to deliver otp: %w", err)
	}
	logger.Info("otp sent", zap.String("phone", utils.HashToken(phone)[:12]))
	return nil
}

func (s *DefaultAuthService) VerifyOTP(ctx context.Context, phone, otp string) (*Session, error) {
	if err := utils.VerifyOTPRecord(phone, otp); err != nil {
		return nil, err
	}

	if client, err := s.ClientRepo.GetByPhone(phone); err == nil && client != nil {
		if client.Status != "active" {
			return nil, fmt.Errorf("account suspended")
		}
		return s.issueSession(client.ID, "client", client.ID)
	}

	subUser, err := s.SubUserRepo.GetByPhone(phone)
	if err != nil || subUser == nil {
		return nil, fmt.Errorf("no account registered for this phone")
	}
	if !subUser.Active {
		return nil, fmt.Errorf("account suspended")
	}
	return s.issueSession(subUser.ID, subUser.Role, subUser.ClientID)
}

func (s *DefaultAuthService) AdminLogin(email, password string) (*Session, error) {
	admin, err := s.AdminRepo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return s.issueSession(admin.ID, admin.Role, "")
}

// issueSession mints a JWT and registers its hash in the auth cache so
// middleware can check revocation without hitting the database.
func (s *DefaultAuthService) issueSession(actorID, role, clientID string) (*Session, error) {
	token, err := utils.GenerateToken(actorID, role, clientID, sessionDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	cacheKey := utils.AuthCachePrefix + utils.HashToken(token)
	cacheClient := utils.GetAuthCacheClient()
	if err := cacheClient.Set(context.Background(), cacheKey, actorID, sessionDuration).Err(); err != nil {
		return nil, fmt.Errorf("failed to register session: %w", err)
	}

	return &Session{Token: token, Role: role, ActorID: actorID, ClientID: clientID}, nil
}

func (s *DefaultAuthService) Logout(token string) error {
	cacheKey := utils.AuthCachePrefix + utils.HashToken(token)
	if err := utils.GetAuthCacheClient().Del(context.Background(), cacheKey).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *DefaultAuthService) phoneRegistered(phone string) bool {
	if client, err := s.ClientRepo.GetByPhone(phone); err == nil && client != nil {
		return true
	}
	if sub, err := s.SubUserRepo.GetByPhone(phone); err == nil && sub != nil {
		return true
	}
	return false
}
