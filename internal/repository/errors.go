// Package repository provides MongoDB-backed persistence for accounts
// and catalog items.
package repository

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/atinyakov/profilekeeper/internal/db"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

// ErrInvalidID is returned when an id is not a valid ObjectID hex string.
// Callers can tell a malformed id apart from a missing document.
var ErrInvalidID = errors.New("invalid object id")

// DuplicateKeyError reports a unique-index violation together with the
// field whose uniqueness was violated ("username" or "email"), so callers
// can tell the user exactly which value collided.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key on field %q", e.Field)
}

const duplicateKeyCode = 11000

// classifyDuplicate inspects a write error for a unique-index violation
// and, when found, returns a DuplicateKeyError naming the violated field.
// The second return value reports whether the error was a duplicate at all.
//
// The field is read from the structured keyPattern the server attaches to
// the write error. Older servers omit it, in which case the stable index
// names created by db.EnsureIndexes are matched in the error message.
func classifyDuplicate(err error) (*DuplicateKeyError, bool) {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return nil, false
	}

	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code != duplicateKeyCode {
				continue
			}
			if field, ok := keyPatternField(e.Details); ok {
				return &DuplicateKeyError{Field: field}, true
			}
			if field, ok := indexNameField(e.Message); ok {
				return &DuplicateKeyError{Field: field}, true
			}
		}
	}

	// findAndModify surfaces duplicates as a command error without details.
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == duplicateKeyCode {
		if field, ok := indexNameField(ce.Message); ok {
			return &DuplicateKeyError{Field: field}, true
		}
	}

	return &DuplicateKeyError{}, true
}

// keyPatternField extracts the first key of the keyPattern document from
// a write error's details, e.g. {"keyPattern": {"email": 1}} -> "email".
func keyPatternField(details bson.Raw) (string, bool) {
	if len(details) == 0 {
		return "", false
	}
	kp := details.Lookup("keyPattern")
	if kp.Type != bson.TypeEmbeddedDocument {
		return "", false
	}
	elems, err := kp.Document().Elements()
	if err != nil || len(elems) == 0 {
		return "", false
	}
	return elems[0].Key(), true
}

// indexNameField maps the stable unique index names to their fields.
func indexNameField(message string) (string, bool) {
	switch {
	case strings.Contains(message, db.IndexUsername):
		return "username", true
	case strings.Contains(message, db.IndexEmail):
		return "email", true
	}
	return "", false
}
