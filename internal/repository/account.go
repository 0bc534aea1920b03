package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/atinyakov/profilekeeper/internal/db"
	"github.com/atinyakov/profilekeeper/internal/models"
)

// noPassword strips the password hash from read results at the query
// level, so list and by-id reads can never carry it out of the database.
var noPassword = bson.M{"password": 0}

// MongoAccountRepository implements account persistence against the
// user collection.
type MongoAccountRepository struct {
	collection *mongo.Collection
}

// NewMongoAccountRepository creates a repository bound to the user
// collection of the given database handle.
func NewMongoAccountRepository(database *mongo.Database) *MongoAccountRepository {
	return &MongoAccountRepository{collection: database.Collection(db.UserCollection)}
}

// Insert stores a new account and returns its assigned identifier as a
// hex string. A unique-index violation is reported as *DuplicateKeyError
// naming the colliding field.
func (r *MongoAccountRepository) Insert(ctx context.Context, account *models.Account) (string, error) {
	res, err := r.collection.InsertOne(ctx, account)
	if err != nil {
		if dup, ok := classifyDuplicate(err); ok {
			return "", dup
		}
		return "", fmt.Errorf("insert account: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id.Hex(), nil
}

// FindByUsername returns the account with the given username, including
// the password hash for credential verification. Returns ErrNotFound when
// no account matches.
func (r *MongoAccountRepository) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find account by username: %w", err)
	}
	return &account, nil
}

// FindByEmail returns the account with the given email, without the
// password hash.
func (r *MongoAccountRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := r.collection.FindOne(ctx, bson.M{"email": email},
		options.FindOne().SetProjection(noPassword)).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	return &account, nil
}

// FindByID returns the account with the given hex id, without the
// password hash. A malformed id is reported as ErrInvalidID.
func (r *MongoAccountRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var account models.Account
	err = r.collection.FindOne(ctx, bson.M{"_id": oid},
		options.FindOne().SetProjection(noPassword)).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return &account, nil
}

// FindAll returns every account, without password hashes.
func (r *MongoAccountRepository) FindAll(ctx context.Context) ([]models.Account, error) {
	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetProjection(noPassword))
	if err != nil {
		return nil, fmt.Errorf("find accounts: %w", err)
	}
	defer cursor.Close(ctx)

	var accounts []models.Account
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	return accounts, nil
}

// UpdateByEmail applies profile changes to the account with the given
// email and returns the updated document without the password hash.
// Returns ErrNotFound when no account matches and *DuplicateKeyError when
// the change violates a unique index (e.g. changing email to a taken one).
func (r *MongoAccountRepository) UpdateByEmail(ctx context.Context, email string, changes models.ProfileChanges) (*models.Account, error) {
	set := bson.M{
		"firstname": changes.Firstname,
		"lastname":  changes.Lastname,
		"email":     changes.Email,
	}
	if changes.PasswordHash != "" {
		set["password"] = changes.PasswordHash
	}

	var updated models.Account
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{"$set": set},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(noPassword),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if dup, ok := classifyDuplicate(err); ok {
			return nil, dup
		}
		return nil, fmt.Errorf("update account: %w", err)
	}
	return &updated, nil
}

// SetImage records the profile image path on the account with the given
// email. A nil path clears the reference.
func (r *MongoAccountRepository) SetImage(ctx context.Context, email string, path *string) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"profileImage": path}},
	)
	if err != nil {
		return fmt.Errorf("set profile image: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID removes the account with the given hex id. Returns
// ErrInvalidID for a malformed id and ErrNotFound when no account
// matches.
func (r *MongoAccountRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
