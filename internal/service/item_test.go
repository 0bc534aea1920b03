package service

import (
	"context"
	"errors"
	"testing"

	"github.com/atinyakov/profilekeeper/internal/models"
	"github.com/atinyakov/profilekeeper/internal/repository"
)

type mockItemRepo struct {
	InsertFunc     func(ctx context.Context, item *models.Item) (*models.Item, error)
	FindByIDFunc   func(ctx context.Context, id string) (*models.Item, error)
	FindAllFunc    func(ctx context.Context) ([]models.Item, error)
	DeleteByIDFunc func(ctx context.Context, id string) error
}

func (m *mockItemRepo) Insert(ctx context.Context, item *models.Item) (*models.Item, error) {
	return m.InsertFunc(ctx, item)
}
func (m *mockItemRepo) FindByID(ctx context.Context, id string) (*models.Item, error) {
	return m.FindByIDFunc(ctx, id)
}
func (m *mockItemRepo) FindAll(ctx context.Context) ([]models.Item, error) {
	return m.FindAllFunc(ctx)
}
func (m *mockItemRepo) DeleteByID(ctx context.Context, id string) error {
	return m.DeleteByIDFunc(ctx, id)
}

func TestCreateItem_Validation(t *testing.T) {
	svc := NewItemService(&mockItemRepo{})

	for _, c := range [][2]string{{"", "fruit"}, {"apple", ""}, {"", ""}} {
		_, err := svc.CreateItem(context.Background(), c[0], c[1], 1.50)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("CreateItem(%q, %q) error = %v; want ValidationError", c[0], c[1], err)
		}
	}
}

func TestCreateItem_Success(t *testing.T) {
	repo := &mockItemRepo{
		InsertFunc: func(ctx context.Context, item *models.Item) (*models.Item, error) {
			if item.Name != "apple" || item.Category != "fruit" || item.Price != 1.50 {
				t.Errorf("unexpected item %+v", item)
			}
			return item, nil
		},
	}
	svc := NewItemService(repo)

	if _, err := svc.CreateItem(context.Background(), "apple", "fruit", 1.50); err != nil {
		t.Fatalf("CreateItem returned error: %v", err)
	}
}

func TestGetItem_NotFound(t *testing.T) {
	repo := &mockItemRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*models.Item, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewItemService(repo)

	if _, err := svc.GetItem(context.Background(), "deadbeef"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteItem_NotFound(t *testing.T) {
	repo := &mockItemRepo{
		DeleteByIDFunc: func(ctx context.Context, id string) error {
			return repository.ErrNotFound
		},
	}
	svc := NewItemService(repo)

	if err := svc.DeleteItem(context.Background(), "deadbeef"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetItem_InvalidID(t *testing.T) {
	repo := &mockItemRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*models.Item, error) {
			return nil, repository.ErrInvalidID
		},
	}
	svc := NewItemService(repo)

	_, err := svc.GetItem(context.Background(), "not-a-hex-id")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestDeleteItem_InvalidID(t *testing.T) {
	repo := &mockItemRepo{
		DeleteByIDFunc: func(ctx context.Context, id string) error {
			return repository.ErrInvalidID
		},
	}
	svc := NewItemService(repo)

	err := svc.DeleteItem(context.Background(), "not-a-hex-id")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
