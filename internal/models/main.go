// Package models defines the core data structures for accounts and catalog items.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// AccountStatus defines the set of valid account status values.
type AccountStatus string

const (
	// StatusActive is the only status an account can currently hold.
	// Accounts are created active and stay active until hard-deleted.
	StatusActive AccountStatus = "ACTIVE"
)

// Account represents an application user stored in the "user" collection.
type Account struct {
	// ID is the unique identifier assigned by the database at creation.
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// Username is the unique login name chosen by the user.
	Username string `bson:"username" json:"username"`
	// Email is the unique email address; it also identifies the
	// account inside session tokens.
	Email string `bson:"email" json:"email"`
	// PasswordHash is the bcrypt hash of the password. It is stored
	// under the legacy "password" field name and never JSON-encoded.
	PasswordHash string `bson:"password" json:"-"`
	// Firstname is the optional given name.
	Firstname string `bson:"firstname" json:"firstname"`
	// Lastname is the optional family name.
	Lastname string `bson:"lastname" json:"lastname"`
	// Status is the account status, always StatusActive.
	Status AccountStatus `bson:"status" json:"status"`
	// ProfileImage is the public path of the uploaded profile image,
	// nil when no image has been uploaded.
	ProfileImage *string `bson:"profileImage" json:"profileImage"`
}

// ProfileChanges carries the field values written by a profile update.
// Name and email values are written as given: a blank clears the stored
// field. PasswordHash is only written when non-empty.
type ProfileChanges struct {
	Firstname    string
	Lastname     string
	Email        string
	PasswordHash string
}

// Item represents a catalog item stored in the "item" collection.
// Items are independent of accounts.
type Item struct {
	// ID is the unique identifier assigned by the database at creation.
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// Name is the display name of the item.
	Name string `bson:"itemName" json:"name"`
	// Category groups items in the catalog.
	Category string `bson:"itemCategory" json:"category"`
	// Price is the numeric price of the item.
	Price float64 `bson:"itemPrice" json:"price"`
}
