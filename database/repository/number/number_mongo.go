package numberRepo

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

// NumberRepository defines methods for phone number data access.
type NumberRepository interface {
	GetByID(id string) (*models.PhoneNumber, error)
	GetByClient(clientID string) ([]models.PhoneNumber, error)
	GetUnassigned() ([]models.PhoneNumber, error)
	Create(number *models.PhoneNumber) error
	Delete(id string) error
	// AssignToClient binds a number to a tenant. An empty clientID unassigns.
	AssignToClient(id, clientID string) error
}

// MongoNumberRepo implements NumberRepository using MongoDB.
type MongoNumberRepo struct {
	coll *mongo.Collection
}

// NewMongoNumberRepo creates a new instance of NumberRepository using MongoDB.
func NewMongoNumberRepo() NumberRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("numbers")
	repo := &MongoNumberRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoNumberRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoNumberRepo) GetByID(id string) (*models.PhoneNumber, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var num models.PhoneNumber
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&num); err != nil {
		return nil, fmt.Errorf("failed to fetch number with id %s: %w", id, err)
	}
	return &num, nil
}

func (r *MongoNumberRepo) find(filter bson.M) ([]models.PhoneNumber, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve numbers: %w", err)
	}
	defer cursor.Close(ctx)

	var numbers []models.PhoneNumber
	for cursor.Next(ctx) {
		var n models.PhoneNumber
		if err := cursor.Decode(&n); err != nil {
			return nil, fmt.Errorf("failed to decode number: %w", err)
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}

func (r *MongoNumberRepo) GetByClient(clientID string) ([]models.PhoneNumber, error) {
	return r.find(bson.M{"client_id": clientID})
}

func (r *MongoNumberRepo) GetUnassigned() ([]models.PhoneNumber, error) {
	return r.find(bson.M{"$or": []bson.M{{"client_id": ""}, {"client_id": bson.M{"$exists": false}}}})
}

func (r *MongoNumberRepo) Create(number *models.PhoneNumber) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	number.CreatedAt = now
	number.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, number); err != nil {
		return fmt.Errorf("failed to create number: %w", err)
	}
	return nil
}

func (r *MongoNumberRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete number with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("number with id %s not found", id)
	}
	return nil
}

func (r *MongoNumberRepo) AssignToClient(id, clientID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"client_id": clientID, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to assign number %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("number with id %s not found", id)
	}
	return nil
}
