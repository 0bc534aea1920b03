package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/profilekeeper/internal/models"
)

// ItemService defines the catalog operations required by the HTTP handlers.
type ItemService interface {
	CreateItem(ctx context.Context, name, category string, price float64) (*models.Item, error)
	GetItem(ctx context.Context, id string) (*models.Item, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

// ItemHandler handles HTTP requests for the item catalog.
type ItemHandler struct {
	// ItemService performs the underlying catalog operations.
	ItemService ItemService
	// Logger receives unclassified failures.
	Logger *zap.Logger
}

// CreateItemRequest represents the JSON payload for item creation.
// Price is a pointer so an absent price can be told apart from zero.
type CreateItemRequest struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Price    *float64 `json:"price"`
}

// Create handles POST /api/item requests.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Price == nil {
		writeMessage(w, http.StatusBadRequest, "name, category and price are required")
		return
	}

	item, err := h.ItemService.CreateItem(r.Context(), req.Name, req.Category, *req.Price)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// List handles GET /api/item requests.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.ItemService.ListItems(r.Context())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GetByID handles GET /api/item/{id} requests.
func (h *ItemHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	item, err := h.ItemService.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteByID handles DELETE /api/item/{id} requests.
func (h *ItemHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	if err := h.ItemService.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deletedCount": 1})
}
