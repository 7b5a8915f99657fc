package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersCollection    = "users"
	IncomesCollection  = "incomes"
	ExpensesCollection = "expenses"
)

// Collection is the subset of *mongo.Collection used by Storage.
type Collection interface {
	InsertOne(
		ctx context.Context,
		document interface{},
		opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	Find(
		ctx context.Context,
		filter interface{},
		opts ...*options.FindOptions) (*mongo.Cursor, error)
	FindOne(
		ctx context.Context,
		filter interface{},
		opts ...*options.FindOneOptions) *mongo.SingleResult
	DeleteOne(
		ctx context.Context,
		filter interface{},
		opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// CollectionProvider defines the interface for obtaining a collection.
type CollectionProvider interface {
	Collection(name string) Collection
}

// DatabaseProvider adapts *mongo.Database to CollectionProvider.
type DatabaseProvider struct {
	db *mongo.Database
}

func NewDatabaseProvider(client *mongo.Client, database string) *DatabaseProvider {
	return &DatabaseProvider{db: client.Database(database)}
}

func (p *DatabaseProvider) Collection(name string) Collection {
	return p.db.Collection(name)
}

// EnsureIndexes creates the unique email index and the per-user date indexes.
func (p *DatabaseProvider) EnsureIndexes(ctx context.Context) error {
	_, err := p.db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	for _, name := range []string{IncomesCollection, ExpensesCollection} {
		_, err := p.db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
		})
		if err != nil {
			return fmt.Errorf("failed to create %s index: %w", name, err)
		}
	}

	return nil
}

// Connect establishes a connection to MongoDB and pings it.
func Connect(ctx context.Context, uri string, log *slog.Logger) (*mongo.Client, error) {
	log.DebugContext(ctx, "Attempting to connect to MongoDB")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.InfoContext(ctx, "Successfully established connection to MongoDB")
	return client, nil
}
