package campaignRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/theaitel/loginaitel-sub003/database"
	"github.com/theaitel/loginaitel-sub003/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CampaignRepository defines methods for campaign data access.
type CampaignRepository interface {
	GetByID(id string) (*models.Campaign, error)
	GetByClient(clientID string) ([]models.Campaign, error)
	Create(campaign *models.Campaign) error
	Update(campaign *models.Campaign) error
	Delete(id string) error
	SetStatus(id, status string) error
	IncrementLeadCount(id string, delta int) error
	IncrementCallsPlaced(id string) error
}

// MongoCampaignRepo implements CampaignRepository using MongoDB.
type MongoCampaignRepo struct {
	coll *mongo.Collection
}

// NewMongoCampaignRepo creates a new instance of CampaignRepository using MongoDB.
func NewMongoCampaignRepo() CampaignRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("campaigns")
	repo := &MongoCampaignRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCampaignRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoCampaignRepo) GetByID(id string) (*models.Campaign, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var cp models.Campaign
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&cp); err != nil {
		return nil, fmt.Errorf("failed to fetch campaign with id %s: %w", id, err)
	}
	return &cp, nil
}

func (r *MongoCampaignRepo) GetByClient(clientID string) ([]models.Campaign, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"client_id": clientID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve campaigns: %w", err)
	}
	defer cursor.Close(ctx)

	var campaigns []models.Campaign
	for cursor.Next(ctx) {
		var cp models.Campaign
		if err := cursor.Decode(&cp); err != nil {
			return nil, fmt.Errorf("failed to decode campaign: %w", err)
		}
		campaigns = append(campaigns, cp)
	}
	return campaigns, nil
}

func (r *MongoCampaignRepo) Create(campaign *models.Campaign) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, campaign); err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}

func (r *MongoCampaignRepo) Update(campaign *models.Campaign) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	campaign.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": campaign.ID}, bson.M{"$set": campaign})
	if err != nil {
		return fmt.Errorf("failed to update campaign with id %s: %w", campaign.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("campaign with id %s not found", campaign.ID)
	}
	return nil
}

func (r *MongoCampaignRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete campaign with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("campaign with id %s not found", id)
	}
	return nil
}

func (r *MongoCampaignRepo) SetStatus(id, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set status for campaign %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("campaign with id %s not found", id)
	}
	return nil
}

func (r *MongoCampaignRepo) IncrementLeadCount(id string, delta int) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"lead_count": delta},
		"$set": bson.M{"updated_at": time.Now()},
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("failed to bump lead count for campaign %s: %w", id, err)
	}
	return nil
}

func (r *MongoCampaignRepo) IncrementCallsPlaced(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"calls_placed": 1},
		"$set": bson.M{"updated_at": time.Now()},
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("failed to bump calls placed for campaign %s: %w", id, err)
	}
	return nil
}
