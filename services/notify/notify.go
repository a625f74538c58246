package notify

import (
	"context"
	"fmt"

	subuserRepo "github.com/theaitel/loginaitel-sub003/database/repository/subuser"
	"github.com/theaitel/loginaitel-sub003/models"
	"github.com/theaitel/loginaitel-sub003/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService defines methods for sending FCM pushes to sub-users.
type NotificationService interface {
	SendPush(ctx context.Context, subUserID, title, body string, data map[string]string) error
	NotifyLeadAssigned(ctx context.Context, subUserID string, lead *models.Lead) error
	NotifyCampaignAssigned(ctx context.Context, subUserID, campaignName string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	SubUserRepo subuserRepo.SubUserRepository
}

func NewDefaultNotificationService(repo subuserRepo.SubUserRepository) (*DefaultNotificationService, error) {
	if repo == nil {
		return nil, fmt.Errorf("notification service initialization error: sub-user repository is nil")
	}
	return &DefaultNotificationService{SubUserRepo: repo}, nil
}

// SendPush looks up a sub-user's FCM token and sends a push. Sub-users with no
// registered device are skipped silently; pushes are best-effort.
func (s *DefaultNotificationService) SendPush(
	ctx context.Context,
	subUserID, title, body string,
	data map[string]string,
) error {
	su, err := s.SubUserRepo.GetByID(subUserID)
	if err != nil {
		return fmt.Errorf("SendPush: could not find sub-user %s: %w", subUserID, err)
	}
	if su.FCMToken == "" {
		utils.GetLogger().Debug("push skipped, no fcm token", zap.String("sub_user_id", subUserID))
		return nil
	}

	msg := &messaging.Message{
		Token: su.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendPush: failed to send FCM message: %w", err)
	}
	return nil
}

func (s *DefaultNotificationService) NotifyLeadAssigned(ctx context.Context, subUserID string, lead *models.Lead) error {
	return s.SendPush(ctx, subUserID,
		"New lead assigned",
		fmt.Sprintf("%s has been assigned to you", lead.FullName),
		map[string]string{
			"type":    "lead_assigned",
			"lead_id": lead.ID,
		})
}

func (s *DefaultNotificationService) NotifyCampaignAssigned(ctx context.Context, subUserID, campaignName string) error {
	return s.SendPush(ctx, subUserID,
		"Added to campaign",
		fmt.Sprintf("You are now working %s", campaignName),
		map[string]string{
			"type": "campaign_assigned",
		})
}
