package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/atinyakov/profilekeeper/internal/db"
	"github.com/atinyakov/profilekeeper/internal/models"
)

// MongoItemRepository implements catalog item persistence against the
// item collection.
type MongoItemRepository struct {
	collection *mongo.Collection
}

// NewMongoItemRepository creates a repository bound to the item
// collection of the given database handle.
func NewMongoItemRepository(database *mongo.Database) *MongoItemRepository {
	return &MongoItemRepository{collection: database.Collection(db.ItemCollection)}
}

// Insert stores a new item and returns it with the assigned identifier.
func (r *MongoItemRepository) Insert(ctx context.Context, item *models.Item) (*models.Item, error) {
	res, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	item.ID = id
	return item, nil
}

// FindByID returns the item with the given hex id. Returns ErrInvalidID
// for a malformed id and ErrNotFound when no item matches.
func (r *MongoItemRepository) FindByID(ctx context.Context, id string) (*models.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var item models.Item
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find item by id: %w", err)
	}
	return &item, nil
}

// FindAll returns every catalog item.
func (r *MongoItemRepository) FindAll(ctx context.Context) ([]models.Item, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.Item
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}

// DeleteByID removes the item with the given hex id. Returns ErrInvalidID
// for a malformed id and ErrNotFound when no item matches.
func (r *MongoItemRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
