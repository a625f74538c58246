// models/client.go
package models

import "time"

// Client represents a tenant account on the platform.
type Client struct {
	ID           string    `bson:"id" json:"id"`
	CompanyName  string    `bson:"company_name" json:"company_name"`
	ContactName  string    `bson:"contact_name" json:"contact_name"`
	Email        string    `bson:"email" json:"email"`
	Phone        string    `bson:"phone" json:"phone"`
	Status       string    `bson:"status" json:"status"` // active | suspended
	PlanCode     string    `bson:"plan_code" json:"plan_code"`
	Seats        int       `bson:"seats" json:"seats"`
	CreditsLeft  int64     `bson:"credits_left" json:"credits_left"`
	CycleStartAt time.Time `bson:"cycle_start_at" json:"cycle_start_at"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// Admin represents a platform operator. Engineers share the same record shape
// with a different role.
type Admin struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"` // admin | engineer
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
