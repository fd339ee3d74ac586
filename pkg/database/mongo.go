package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dscnitrourkela/project-nutella/config"
)

// Collection names used across the repositories.
const (
	UsersCollection     = "users"
	QuizzesCollection   = "quizzes"
	QuestionsCollection = "questions"
)

type MongoClient struct {
	client *mongo.Client
	db     *mongo.Database
	config *config.MongoConfig
}

func NewMongoClient(cfg *config.MongoConfig) (*MongoClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(100).
		SetServerSelectionTimeout(10*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoClient{
		client: client,
		db:     client.Database(cfg.Database),
		config: cfg,
	}, nil
}

func (c *MongoClient) Close() error {
	if c.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return c.client.Disconnect(ctx)
	}
	return nil
}

func (c *MongoClient) Database() *mongo.Database {
	return c.db
}

func (c *MongoClient) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// EnsureIndexes creates the unique indexes the data model relies on.
// Uniqueness of email, phone number, roll number and uid is enforced here by
// the store, not by application logic.
func (c *MongoClient) EnsureIndexes(ctx context.Context) error {
	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phoneNo", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "rollNo", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "uid", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	if _, err := c.db.Collection(UsersCollection).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	quizIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "startTime", Value: 1}}},
		{Keys: bson.D{{Key: "active", Value: 1}}},
	}

	if _, err := c.db.Collection(QuizzesCollection).Indexes().CreateMany(ctx, quizIndexes); err != nil {
		return fmt.Errorf("failed to create quiz indexes: %w", err)
	}

	return nil
}
