package service

import (
	"context"
	"errors"

	"github.com/atinyakov/profilekeeper/internal/models"
	"github.com/atinyakov/profilekeeper/internal/repository"
)

// ItemRepository defines the persistence operations required by the item
// service.
type ItemRepository interface {
	Insert(ctx context.Context, item *models.Item) (*models.Item, error)
	FindByID(ctx context.Context, id string) (*models.Item, error)
	FindAll(ctx context.Context) ([]models.Item, error)
	DeleteByID(ctx context.Context, id string) error
}

// ItemService implements catalog operations by delegating to an
// ItemRepository.
type ItemService struct {
	repo ItemRepository
}

// NewItemService constructs an ItemService using the provided repository.
func NewItemService(repo ItemRepository) *ItemService {
	return &ItemService{repo: repo}
}

// CreateItem stores a new catalog item and returns it with its assigned
// identifier.
func (s *ItemService) CreateItem(ctx context.Context, name, category string, price float64) (*models.Item, error) {
	if name == "" || category == "" {
		return nil, &ValidationError{Msg: "name and category are required"}
	}

	return s.repo.Insert(ctx, &models.Item{
		Name:     name,
		Category: category,
		Price:    price,
	})
}

// GetItem returns the item with the given identifier. A malformed
// identifier is a validation failure, not a missing item.
func (s *ItemService) GetItem(ctx context.Context, id string) (*models.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			return nil, &ValidationError{Msg: "invalid id"}
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// ListItems returns every catalog item.
func (s *ItemService) ListItems(ctx context.Context) ([]models.Item, error) {
	return s.repo.FindAll(ctx)
}

// DeleteItem removes the item with the given identifier.
func (s *ItemService) DeleteItem(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			return &ValidationError{Msg: "invalid id"}
		}
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
