// models/billing.go
package models

import "time"

// CreditOrder tracks a Razorpay order purchasing call credits or a seat
// upgrade. Webhook processing flips Status exactly once per order.
type CreditOrder struct {
	ID              string    `bson:"id" json:"id"`
	ClientID        string    `bson:"client_id" json:"client_id"`
	Kind            string    `bson:"kind" json:"kind"` // credits | seats
	Credits         int64     `bson:"credits,omitempty" json:"credits,omitempty"`
	TargetPlanCode  string    `bson:"target_plan_code,omitempty" json:"target_plan_code,omitempty"`
	AmountPaise     int64     `bson:"amount_paise" json:"amount_paise"`
	Currency        string    `bson:"currency" json:"currency"`
	RazorpayOrderID string    `bson:"razorpay_order_id" json:"razorpay_order_id"`
	PaymentID       string    `bson:"payment_id,omitempty" json:"payment_id,omitempty"`
	Status          string    `bson:"status" json:"status"` // pending | paid | failed
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// SeatPlan is a fixed team-size tier.
type SeatPlan struct {
	Code         string `bson:"code" json:"code"`
	Seats        int    `bson:"seats" json:"seats"`
	MonthlyPaise int64  `bson:"monthly_paise" json:"monthly_paise"`
}
