package leadRepo

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

// LeadRepository defines methods for lead data access.
type LeadRepository interface {
	GetByID(id string) (*models.Lead, error)
	GetByCampaign(campaignID string) ([]models.Lead, error)
	GetAssigned(subUserID string) ([]models.Lead, error)
	Create(lead *models.Lead) error
	CreateMany(leads []models.Lead) error
	Update(lead *models.Lead) error
	Delete(id string) error
	SetStage(id, stage string) error
	SetNotes(id string, notes interface{}) error
	Assign(id, subUserID string) error
}

// MongoLeadRepo implements LeadRepository using MongoDB.
type MongoLeadRepo struct {
	coll *mongo.Collection
}

// NewMongoLeadRepo creates a new instance of LeadRepository using MongoDB.
func NewMongoLeadRepo() LeadRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("leads")
	repo := &MongoLeadRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoLeadRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "campaign_id", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_to", Value: 1}}},
		{Keys: bson.D{{Key: "stage", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoLeadRepo) GetByID(id string) (*models.Lead, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var lead models.Lead
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&lead); err != nil {
		return nil, fmt.Errorf("failed to fetch lead with id %s: %w", id, err)
	}
	return &lead, nil
}

func (r *MongoLeadRepo) find(filter bson.M) ([]models.Lead, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve leads: %w", err)
	}
	defer cursor.Close(ctx)

	var leads []models.Lead
	for cursor.Next(ctx) {
		var l models.Lead
		if err := cursor.Decode(&l); err != nil {
			return nil, fmt.Errorf("failed to decode lead: %w", err)
		}
		leads = append(leads, l)
	}
	return leads, nil
}

func (r *MongoLeadRepo) GetByCampaign(campaignID string) ([]models.Lead, error) {
	return r.find(bson.M{"campaign_id": campaignID})
}

func (r *MongoLeadRepo) GetAssigned(subUserID string) ([]models.Lead, error) {
	return r.find(bson.M{"assigned_to": subUserID})
}

func (r *MongoLeadRepo) Create(lead *models.Lead) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, lead); err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return nil
}

// CreateMany inserts a batch of leads in one round trip (bulk upload path).
func (r *MongoLeadRepo) CreateMany(leads []models.Lead) error {
	if len(leads) == 0 {
		return nil
	}
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	now := time.Now()
	docs := make([]interface{}, 0, len(leads))
	for i := range leads {
		leads[i].CreatedAt = now
		leads[i].UpdatedAt = now
		docs = append(docs, leads[i])
	}

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to create leads: %w", err)
	}
	return nil
}

func (r *MongoLeadRepo) Update(lead *models.Lead) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	lead.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": lead.ID}, bson.M{"$set": lead})
	if err != nil {
		return fmt.Errorf("failed to update lead with id %s: %w", lead.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("lead with id %s not found", lead.ID)
	}
	return nil
}

func (r *MongoLeadRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete lead with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("lead with id %s not found", id)
	}
	return nil
}

func (r *MongoLeadRepo) setField(id string, fields bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fields["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update lead %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("lead with id %s not found", id)
	}
	return nil
}

func (r *MongoLeadRepo) SetStage(id, stage string) error {
	return r.setField(id, bson.M{"stage": stage})
}

func (r *MongoLeadRepo) SetNotes(id string, notes interface{}) error {
	return r.setField(id, bson.M{"notes": notes})
}

func (r *MongoLeadRepo) Assign(id, subUserID string) error {
	return r.setField(id, bson.M{"assigned_to": subUserID})
}
