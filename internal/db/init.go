// Package db initializes the MongoDB connection and the unique indexes
// the account model relies on.
package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// UserCollection holds account documents.
	UserCollection = "user"
	// ItemCollection holds catalog item documents.
	ItemCollection = "item"

	// IndexUsername and IndexEmail name the unique indexes enforcing
	// account uniqueness. The names are stable so duplicate-key errors
	// can be attributed to a field on servers that omit the key pattern.
	IndexUsername = "uniq_username"
	IndexEmail    = "uniq_email"

	connectTimeout = 10 * time.Second
)

// InitMongo connects to MongoDB at the given URI, verifies the connection
// with a ping, and returns a handle to the named database. The handle is
// injected into the repositories at wiring time; no package-level client
// is kept.
func InitMongo(ctx context.Context, uri, database string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client.Database(database), nil
}

// EnsureIndexes creates the unique indexes on username and email in the
// user collection. Creation is idempotent: re-running against an already
// provisioned database is a no-op.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	unique := true
	_, err := database.Collection(UserCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: &options.IndexOptions{Unique: &unique, Name: strPtr(IndexUsername)},
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: &options.IndexOptions{Unique: &unique, Name: strPtr(IndexEmail)},
		},
	})
	if err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

func strPtr(s string) *string { return &s }
