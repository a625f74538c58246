package callRepo

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

// CallRepository defines methods for call data access.
type CallRepository interface {
	GetByID(id string) (*models.Call, error)
	GetByExternalID(externalID string) (*models.Call, error)
	GetByCampaign(campaignID string) ([]models.Call, error)
	GetByClient(clientID string) ([]models.Call, error)
	Create(call *models.Call) error
	Update(call *models.Call) error
	// SetFields applies a partial update with $set semantics.
	SetFields(id string, fields bson.M) error
}

// MongoCallRepo implements CallRepository using MongoDB.
type MongoCallRepo struct {
	coll *mongo.Collection
}

// NewMongoCallRepo creates a new instance of CallRepository using MongoDB.
func NewMongoCallRepo() CallRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("calls")
	repo := &MongoCallRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCallRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "external_call_id", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "campaign_id", Value: 1}}},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoCallRepo) GetByID(id string) (*models.Call, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var call models.Call
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&call); err != nil {
		return nil, fmt.Errorf("failed to fetch call with id %s: %w", id, err)
	}
	return &call, nil
}

func (r *MongoCallRepo) GetByExternalID(externalID string) (*models.Call, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var call models.Call
	if err := r.coll.FindOne(ctx, bson.M{"external_call_id": externalID}).Decode(&call); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch call with external id %s: %w", externalID, err)
	}
	return &call, nil
}

func (r *MongoCallRepo) find(filter bson.M) ([]models.Call, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve calls: %w", err)
	}
	defer cursor.Close(ctx)

	var calls []models.Call
	for cursor.Next(ctx) {
		var c models.Call
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode call: %w", err)
		}
		calls = append(calls, c)
	}
	return calls, nil
}

func (r *MongoCallRepo) GetByCampaign(campaignID string) ([]models.Call, error) {
	return r.find(bson.M{"campaign_id": campaignID})
}

func (r *MongoCallRepo) GetByClient(clientID string) ([]models.Call, error) {
	return r.find(bson.M{"client_id": clientID})
}

func (r *MongoCallRepo) Create(call *models.Call) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	call.CreatedAt = now
	call.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, call); err != nil {
		return fmt.Errorf("failed to create call: %w", err)
	}
	return nil
}

func (r *MongoCallRepo) Update(call *models.Call) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	call.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": call.ID}, bson.M{"$set": call})
	if err != nil {
		return fmt.Errorf("failed to update call with id %s: %w", call.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("call with id %s not found", call.ID)
	}
	return nil
}

func (r *MongoCallRepo) SetFields(id string, fields bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fields["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update call %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("call with id %s not found", id)
	}
	return nil
}
