// models/agent.go
package models

import "time"

// Agent is a voice AI agent configuration assignable to a client.
type Agent struct {
	ID              string    `bson:"id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	Description     string    `bson:"description" json:"description"`
	Language        string    `bson:"language" json:"language"`
	Voice           string    `bson:"voice" json:"voice"`
	SystemPrompt    string    `bson:"system_prompt" json:"system_prompt"`
	ProviderAgentID string    `bson:"provider_agent_id" json:"provider_agent_id"`
	ClientID        string    `bson:"client_id,omitempty" json:"client_id,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}
