package agentRepo

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

// AgentRepository defines methods for voice agent data access.
type AgentRepository interface {
	GetByID(id string) (*models.Agent, error)
	GetByClient(clientID string) ([]models.Agent, error)
	GetUnassigned() ([]models.Agent, error)
	Create(agent *models.Agent) error
	Update(agent *models.Agent) error
	Delete(id string) error
	// AssignToClient binds an agent to a tenant. An empty clientID unassigns.
	AssignToClient(id, clientID string) error
}

// MongoAgentRepo implements AgentRepository using MongoDB.
type MongoAgentRepo struct {
	coll *mongo.Collection
}

// NewMongoAgentRepo creates a new instance of AgentRepository using MongoDB.
func NewMongoAgentRepo() AgentRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("agents")
	repo := &MongoAgentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAgentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoAgentRepo) GetByID(id string) (*models.Agent, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var agent models.Agent
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&agent); err != nil {
		return nil, fmt.Errorf("failed to fetch agent with id %s: %w", id, err)
	}
	return &agent, nil
}

func (r *MongoAgentRepo) find(filter bson.M) ([]models.Agent, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve agents: %w", err)
	}
	defer cursor.Close(ctx)

	var agents []models.Agent
	for cursor.Next(ctx) {
		var a models.Agent
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode agent: %w", err)
		}
		agents = append(agents, a)
	}
	return agents, nil
}

func (r *MongoAgentRepo) GetByClient(clientID string) ([]models.Agent, error) {
	return r.find(bson.M{"client_id": clientID})
}

func (r *MongoAgentRepo) GetUnassigned() ([]models.Agent, error) {
	return r.find(bson.M{"$or": []bson.M{{"client_id": ""}, {"client_id": bson.M{"$exists": false}}}})
}

func (r *MongoAgentRepo) Create(agent *models.Agent) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	agent.CreatedAt = now
	agent.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, agent); err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}
	return nil
}

func (r *MongoAgentRepo) Update(agent *models.Agent) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	agent.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": agent.ID}, bson.M{"$set": agent})
	if err != nil {
		return fmt.Errorf("failed to update agent with id %s: %w", agent.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("agent with id %s not found", agent.ID)
	}
	return nil
}

func (r *MongoAgentRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete agent with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("agent with id %s not found", id)
	}
	return nil
}

func (r *MongoAgentRepo) AssignToClient(id, clientID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"client_id": clientID, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to assign agent %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("agent with id %s not found", id)
	}
	return nil
}
