package billing

import (
	"encoding/json"
	"fmt"
	"time"

	clientRepo "github.com/theaitel/loginaitel-sub003/database/repository/client"
	orderRepo "github.com/theaitel/loginaitel-sub003/database/repository/order"
	"github.com/theaitel/loginaitel-sub003/models"
	"github.com/theaitel/loginaitel-sub003/utils"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	rputils "github.com/razorpay/razorpay-go/utils"
	"go.uber.org/zap"
)

// cycleDays is the billing cycle length used for seat proration.
const cycleDays = 30

// seatPlans is the fixed tier table. Upgrades move down this list, never up.
var seatPlans = []models.SeatPlan{
	{Code: "solo", Seats: 1, MonthlyPaise: 0},
	{Code: "starter", Seats: 5, MonthlyPaise: 499900},
	{Code: "growth", Seats: 15, MonthlyPaise: 1199900},
	{Code: "scale", Seats: 50, MonthlyPaise: 3499900},
}

// PlanByCode looks up a seat plan by its code.
func PlanByCode(code string) (models.SeatPlan, bool) {
	for _, p := range seatPlans {
		if p.Code == code {
			return p, true
		}
	}
	return models.SeatPlan{}, false
}

// Plans returns the published seat tiers.
func Plans() []models.SeatPlan {
	return seatPlans
}

// BillingService manages credit purchases and seat upgrades via Razorpay.
type BillingService interface {
	// CreateCreditOrder creates a pending Razorpay order for the given number
	// of call credits and returns the order the frontend checks out with.
	CreateCreditOrder(clientID string, credits int64) (*models.CreditOrder, error)
	// CreateSeatUpgradeOrder creates a pending order for the prorated cost of
	// moving to the target plan. Downgrades apply immediately at zero cost.
	CreateSeatUpgradeOrder(clientID, targetPlanCode string) (*models.CreditOrder, error)
	// HandleWebhook verifies the Razorpay signature and applies the payment
	// exactly once. Replayed events are acknowledged without re-crediting.
	HandleWebhook(body []byte, signature string) error
	GetOrders(clientID string) ([]models.CreditOrder, error)
}

// DefaultBillingService is the production implementation of BillingService.
type DefaultBillingService struct {
	OrderRepo        orderRepo.OrderRepository
	ClientRepo       clientRepo.ClientRepository
	Razorpay         *razorpay.Client
	WebhookSecret    string
	CreditPricePaise int64
}

func (s *DefaultBillingService) CreateCreditOrder(clientID string, credits int64) (*models.CreditOrder, error) {
	if credits <= 0 {
		return nil, fmt.Errorf("credit quantity must be positive")
	}
	client, err := s.ClientRepo.GetByID(clientID)
	if err != nil {
		return nil, fmt.Errorf("client not found: %w", err)
	}

	amount := credits * s.CreditPricePaise
	order := &models.CreditOrder{
		ID:          uuid.New().String(),
		ClientID:    client.ID,
		Kind:        "credits",
		Credits:     credits,
		AmountPaise: amount,
		Currency:    "INR",
		Status:      "pending",
	}
	if err := s.createRazorpayOrder(order); err != nil {
		return nil, err
	}
	if err := s.OrderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	return order, nil
}

func (s *DefaultBillingService) CreateSeatUpgradeOrder(clientID, targetPlanCode string) (*models.CreditOrder, error) {
	client, err := s.ClientRepo.GetByID(clientID)
	if err != nil {
		return nil, fmt.Errorf("client not found: %w", err)
	}
	target, ok := PlanByCode(targetPlanCode)
	if !ok {
		return nil, fmt.Errorf("unknown plan %q", targetPlanCode)
	}
	current, ok := PlanByCode(client.PlanCode)
	if !ok {
		current = seatPlans[0]
	}

	amount := ProrateSeatUpgrade(current, target, remainingCycleDays(client.CycleStartAt), cycleDays)
	if amount == 0 {
		// Downgrade or lateral move: record intent, no payment needed.
		if target.MonthlyPaise < current.MonthlyPaise {
			if err := s.ClientRepo.SetPlan(client.ID, target.Code, target.Seats); err != nil {
				return nil, fmt.Errorf("failed to apply downgrade: %w", err)
			}
		}
		return nil, nil
	}

	order := &models.CreditOrder{
		ID:             uuid.New().String(),
		ClientID:       client.ID,
		Kind:           "seats",
		TargetPlanCode: target.Code,
		AmountPaise:    amount,
		Currency:       "INR",
		Status:         "pending",
	}
	if err := s.createRazorpayOrder(order); err != nil {
		return nil, err
	}
	if err := s.OrderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	return order, nil
}

// createRazorpayOrder registers the order with Razorpay and fills in the
// provider order id.
func (s *DefaultBillingService) createRazorpayOrder(order *models.CreditOrder) error {
	data := map[string]interface{}{
		"amount":   order.AmountPaise,
		"currency": order.Currency,
		"receipt":  order.ID,
		"notes": map[string]interface{}{
			"client_id": order.ClientID,
			"kind":      order.Kind,
		},
	}
	resp, err := s.Razorpay.Order.Create(data, nil)
	if err != nil {
		return fmt.Errorf("razorpay order creation failed: %w", err)
	}
	rzpID, ok := resp["id"].(string)
	if !ok || rzpID == "" {
		return fmt.Errorf("razorpay order response missing id")
	}
	order.RazorpayOrderID = rzpID
	return nil
}

// webhookEvent is the subset of the Razorpay webhook payload we act on.
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Status  string `json:"status"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

func (s *DefaultBillingService) HandleWebhook(body []byte, signature string) error {
	logger := utils.GetLogger().With(zap.String("component", "billing"))

	if !rputils.VerifyWebhookSignature(string(body), signature, s.WebhookSecret) {
		return fmt.Errorf("invalid webhook signature")
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("malformed webhook payload: %w", err)
	}

	payment := event.Payload.Payment.Entity
	switch event.Event {
	case "payment.captured":
		return s.applyPayment(payment.OrderID, payment.ID, logger)
	case "payment.failed":
		if err := s.OrderRepo.MarkFailed(payment.OrderID); err != nil {
			return err
		}
		logger.Info("payment failed", zap.String("razorpay_order_id", payment.OrderID))
		return nil
	default:
		// Unsubscribed events are acknowledged so Razorpay stops retrying.
		return nil
	}
}

// applyPayment credits the wallet or applies the seat upgrade. MarkPaid is the
// idempotency gate: only the caller that flips pending->paid applies effects.
func (s *DefaultBillingService) applyPayment(razorpayOrderID, paymentID string, logger *zap.Logger) error {
	flipped, err := s.OrderRepo.MarkPaid(razorpayOrderID, paymentID)
	if err != nil {
		return err
	}
	if !flipped {
		logger.Info("webhook replay ignored", zap.String("razorpay_order_id", razorpayOrderID))
		return nil
	}

	order, err := s.OrderRepo.GetByRazorpayOrderID(razorpayOrderID)
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("paid order %s not found", razorpayOrderID)
	}

	switch order.Kind {
	case "credits":
		if err := s.ClientRepo.AddCredits(order.ClientID, order.Credits); err != nil {
			return fmt.Errorf("failed to credit wallet: %w", err)
		}
		logger.Info("wallet credited",
			zap.String("client_id", order.ClientID),
			zap.Int64("credits", order.Credits))
	case "seats":
		plan, ok := PlanByCode(order.TargetPlanCode)
		if !ok {
			return fmt.Errorf("paid order %s references unknown plan %q", order.ID, order.TargetPlanCode)
		}
		if err := s.ClientRepo.SetPlan(order.ClientID, plan.Code, plan.Seats); err != nil {
			return fmt.Errorf("failed to apply seat upgrade: %w", err)
		}
		logger.Info("seat plan upgraded",
			zap.String("client_id", order.ClientID),
			zap.String("plan", plan.Code))
	}
	return nil
}

func (s *DefaultBillingService) GetOrders(clientID string) ([]models.CreditOrder, error) {
	return s.OrderRepo.GetByClient(clientID)
}

// remainingCycleDays counts whole days left in the current 30-day cycle.
func remainingCycleDays(cycleStart time.Time) int {
	elapsed := int(time.Since(cycleStart).Hours() / 24)
	if elapsed < 0 {
		elapsed = 0
	}
	elapsed = elapsed % cycleDays
	return cycleDays - elapsed
}
