// models/number.go
package models

import "time"

// PhoneNumber is a provisioned caller ID assignable to a client.
type PhoneNumber struct {
	ID               string    `bson:"id" json:"id"`
	Number           string    `bson:"number" json:"number"` // E.164
	Region           string    `bson:"region" json:"region"`
	ProviderNumberID string    `bson:"provider_number_id" json:"provider_number_id"`
	ClientID         string    `bson:"client_id,omitempty" json:"client_id,omitempty"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updated_at"`
}
