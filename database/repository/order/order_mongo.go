package orderRepo

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

// OrderRepository defines methods for credit order data access.
type OrderRepository interface {
	GetByID(id string) (*models.CreditOrder, error)
	GetByRazorpayOrderID(orderID string) (*models.CreditOrder, error)
	GetByClient(clientID string) ([]models.CreditOrder, error)
	Create(order *models.CreditOrder) error
	// MarkPaid flips a pending order to paid exactly once. Returns false when
	// the order was already processed, which makes webhook handling idempotent.
	MarkPaid(razorpayOrderID, paymentID string) (bool, error)
	MarkFailed(razorpayOrderID string) error
}

// MongoOrderRepo implements OrderRepository using MongoDB.
type MongoOrderRepo struct {
	coll *mongo.Collection
}

// NewMongoOrderRepo creates a new instance of OrderRepository using MongoDB.
func NewMongoOrderRepo() OrderRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("credit_orders")
	repo := &MongoOrderRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoOrderRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "razorpay_order_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoOrderRepo) GetByID(id string) (*models.CreditOrder, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var order models.CreditOrder
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to fetch order with id %s: %w", id, err)
	}
	return &order, nil
}

func (r *MongoOrderRepo) GetByRazorpayOrderID(orderID string) (*models.CreditOrder, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var order models.CreditOrder
	if err := r.coll.FindOne(ctx, bson.M{"razorpay_order_id": orderID}).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch order %s: %w", orderID, err)
	}
	return &order, nil
}

func (r *MongoOrderRepo) GetByClient(clientID string) ([]models.CreditOrder, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"client_id": clientID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.CreditOrder
	for cursor.Next(ctx) {
		var o models.CreditOrder
		if err := cursor.Decode(&o); err != nil {
			return nil, fmt.Errorf("failed to decode order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *MongoOrderRepo) Create(order *models.CreditOrder) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// MarkPaid performs a conditional update keyed on the pending status.
func (r *MongoOrderRepo) MarkPaid(razorpayOrderID, paymentID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"razorpay_order_id": razorpayOrderID, "status": "pending"}
	update := bson.M{"$set": bson.M{
		"status":     "paid",
		"payment_id": paymentID,
		"updated_at": time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to mark order %s paid: %w", razorpayOrderID, err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *MongoOrderRepo) MarkFailed(razorpayOrderID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"razorpay_order_id": razorpayOrderID, "status": "pending"}
	update := bson.M{"$set": bson.M{"status": "failed", "updated_at": time.Now()}}
	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to mark order %s failed: %w", razorpayOrderID, err)
	}
	return nil
}
