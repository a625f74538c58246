package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/theaitel/loginaitel-sub003/config"
	"github.com/theaitel/loginaitel-sub003/database"
	"github.com/theaitel/loginaitel-sub003/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a local database with one operator, one tenant, inventory, a campaign
// and a batch of leads for manual testing.
func main() {
	config.LoadConfig()
	database.InitDB()
	db := database.MongoClient.Database(database.DBName)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	for _, coll := range []string{"admins", "clients", "subusers", "agents", "numbers", "campaigns", "leads"} {
		if _, err := db.Collection(coll).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", coll, err)
		}
	}

	now := time.Now()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	admin := models.Admin{
		ID:           uuid.New().String(),
		Name:         "Platform Admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         "admin",
		CreatedAt:    now,
	}
	if _, err := db.Collection("admins").InsertOne(ctx, admin); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	client := models.Client{
		ID:           uuid.New().String(),
		CompanyName:  "Acme Outreach",
		ContactName:  "Priya Sharma",
		Email:        "priya@acme.example",
		Phone:        "+919800000001",
		Status:       "active",
		PlanCode:     "starter",
		Seats:        5,
		CreditsLeft:  200,
		CycleStartAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := db.Collection("clients").InsertOne(ctx, client); err != nil {
		log.Fatalf("Failed to seed client: %v", err)
	}

	telecaller := models.SubUser{
		ID:        uuid.New().String(),
		ClientID:  client.ID,
		FullName:  "Rahul Verma",
		Phone:     "+919800000002",
		Email:     "rahul@acme.example",
		Role:      models.RoleTelecaller,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.Collection("subusers").InsertOne(ctx, telecaller); err != nil {
		log.Fatalf("Failed to seed sub-user: %v", err)
	}

	agent := models.Agent{
		ID:              uuid.New().String(),
		Name:            "Hindi Sales Agent",
		Description:     "Outbound sales agent, Hindi + English",
		Language:        "hi-IN",
		Voice:           "female-1",
		SystemPrompt:    "You are a polite sales agent calling on behalf of Acme.",
		ProviderAgentID: "agt_demo_001",
		ClientID:        client.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := db.Collection("agents").InsertOne(ctx, agent); err != nil {
		log.Fatalf("Failed to seed agent: %v", err)
	}

	number := models.PhoneNumber{
		ID:               uuid.New().String(),
		Number:           "+918044000001",
		Region:           "IN-KA",
		ProviderNumberID: "num_demo_001",
		ClientID:         client.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := db.Collection("numbers").InsertOne(ctx, number); err != nil {
		log.Fatalf("Failed to seed number: %v", err)
	}

	campaign := models.Campaign{
		ID:        uuid.New().String(),
		ClientID:  client.ID,
		Name:      "August Outreach",
		AgentID:   agent.ID,
		NumberID:  number.ID,
		Status:    models.CampaignActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	stages := []string{models.LeadNew, models.LeadContacted, models.LeadInterested}
	var leads []interface{}
	for i := 0; i < 30; i++ {
		lead := models.Lead{
			ID:         uuid.New().String(),
			ClientID:   client.ID,
			CampaignID: campaign.ID,
			FullName:   fmt.Sprintf("Lead %02d", i+1),
			Phone:      fmt.Sprintf("+9197000000%02d", i+1),
			Stage:      stages[rand.Intn(len(stages))],
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if i%3 == 0 {
			lead.AssignedTo = telecaller.ID
		}
		leads = append(leads, lead)
	}
	campaign.LeadCount = len(leads)

	if _, err := db.Collection("campaigns").InsertOne(ctx, campaign); err != nil {
		log.Fatalf("Failed to seed campaign: %v", err)
	}
	if _, err := db.Collection("leads").InsertMany(ctx, leads); err != nil {
		log.Fatalf("Failed to seed leads: %v", err)
	}

	fmt.Printf("Seeded admin %s, client %s, campaign %s with %d leads\n",
		admin.Email, client.CompanyName, campaign.Name, len(leads))
}
