package subuserRepo

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

// MongoSubUserRepo implements SubUserRepository using MongoDB.
type MongoSubUserRepo struct {
	coll *mongo.Collection
}

// NewMongoSubUserRepo creates a new instance of SubUserRepository using MongoDB.
func NewMongoSubUserRepo() SubUserRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("subusers")
	repo := &MongoSubUserRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoSubUserRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a sub-user by its unique ID.
func (r *MongoSubUserRepo) GetByID(id string) (*models.SubUser, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var su models.SubUser
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&su); err != nil {
		return nil, fmt.Errorf("failed to fetch sub-user with id %s: %w", id, err)
	}
	return &su, nil
}

// GetByPhone retrieves a sub-user by phone number.
func (r *MongoSubUserRepo) GetByPhone(phone string) (*models.SubUser, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var su models.SubUser
	if err := r.coll.FindOne(ctx, bson.M{"phone": phone}).Decode(&su); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch sub-user with phone %s: %w", phone, err)
	}
	return &su, nil
}

// GetByClient retrieves all sub-users under a client.
func (r *MongoSubUserRepo) GetByClient(clientID string) ([]models.SubUser, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"client_id": clientID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve sub-users: %w", err)
	}
	defer cursor.Close(ctx)

	var subusers []models.SubUser
	for cursor.Next(ctx) {
		var su models.SubUser
		if err := cursor.Decode(&su); err != nil {
			return nil, fmt.Errorf("failed to decode sub-user: %w", err)
		}
		subusers = append(subusers, su)
	}
	return subusers, nil
}

// CountActiveByClient counts active seats in use.
func (r *MongoSubUserRepo) CountActiveByClient(clientID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"client_id": clientID, "active": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count sub-users: %w", err)
	}
	return n, nil
}

// Create inserts a new sub-user document.
func (r *MongoSubUserRepo) Create(su *models.SubUser) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	su.CreatedAt = now
	su.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, su); err != nil {
		return fmt.Errorf("failed to create sub-user: %w", err)
	}
	return nil
}

// Update modifies an existing sub-user document.
func (r *MongoSubUserRepo) Update(su *models.SubUser) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	su.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": su.ID}, bson.M{"$set": su})
	if err != nil {
		return fmt.Errorf("failed to update sub-user with id %s: %w", su.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("sub-user with id %s not found", su.ID)
	}
	return nil
}

// Delete removes a sub-user document by its ID.
func (r *MongoSubUserRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete sub-user with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("sub-user with id %s not found", id)
	}
	return nil
}

// SetFCMToken stores the device push token.
func (r *MongoSubUserRepo) SetFCMToken(id, token string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"fcm_token": token, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set FCM token for sub-user %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("sub-user with id %s not found", id)
	}
	return nil
}

// AddCampaign grants the sub-user access to a campaign.
func (r *MongoSubUserRepo) AddCampaign(id, campaignID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$addToSet": bson.M{"campaign_ids": campaignID},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to add campaign for sub-user %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("sub-user with id %s not found", id)
	}
	return nil
}
