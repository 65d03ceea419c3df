package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sawantaditi24/RoomSync/internal/model"
	"github.com/sawantaditi24/RoomSync/internal/store"
)

// MarketplaceHandler handles dorm-marketplace listing endpoints.
type MarketplaceHandler struct {
	DB  *sql.DB
	Log *zap.SugaredLogger
}

type createMarketplaceItemRequest struct {
	UserID      int64    `json:"user_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	Condition   string   `json:"condition"`
	ImageURL    string   `json:"image_url"`
	Status      string   `json:"status"`
}

// Create handles POST /api/marketplace.
func (h *MarketplaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMarketplaceItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch {
	case req.UserID <= 0:
		jsonError(w, http.StatusBadRequest, "user_id required")
		return
	case req.Title == "":
		jsonError(w, http.StatusBadRequest, "title required")
		return
	case req.Category == "":
		jsonError(w, http.StatusBadRequest, "category required")
		return
	case req.Price == nil || *req.Price < 0:
		jsonError(w, http.StatusBadRequest, "price required and must not be negative")
		return
	}
	if req.Status != "" && !model.ValidItemStatus(req.Status) {
		jsonError(w, http.StatusBadRequest, "invalid status")
		return
	}

	item, err := store.CreateMarketplaceItem(r.Context(), h.DB, &model.MarketplaceItem{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       *req.Price,
		Condition:   req.Condition,
		ImageURL:    req.ImageURL,
		Status:      req.Status,
	})
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create marketplace item")
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// List handles GET /api/marketplace. Orphaned records are swept before the
// read. Without an explicit status parameter only available items are shown.
func (h *MarketplaceHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orphanedPosts, orphanedItems, err := store.DeleteOrphans(ctx, h.DB)
	if err != nil {
		h.Log.Errorw("orphan sweep failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list marketplace items")
		return
	}
	if orphanedPosts > 0 || orphanedItems > 0 {
		h.Log.Infow("removed orphaned records",
			"availabilities", orphanedPosts, "marketplace_items", orphanedItems)
	}

	var f store.MarketplaceFilter
	q := r.URL.Query()
	if v := q.Get("category"); v != "" {
		f.Category = &v
	}
	if v := q.Get("price_max"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid price_max")
			return
		}
		f.PriceMax = &price
	}
	status := q.Get("status")
	if status == "" {
		status = model.ItemStatusAvailable
	}
	f.Status = &status

	items, err := store.ListMarketplaceItems(ctx, h.DB, f)
	if err != nil {
		h.Log.Errorw("listing marketplace items failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list marketplace items")
		return
	}
	if items == nil {
		items = []model.MarketplaceItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /api/marketplace/{id}.
func (h *MarketplaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetMarketplaceItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get marketplace item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "marketplace item not found")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// UpdateStatus handles PUT /api/marketplace/{id}/status.
func (h *MarketplaceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !model.ValidItemStatus(req.Status) {
		jsonError(w, http.StatusBadRequest, "status must be available or sold")
		return
	}

	err = store.SetMarketplaceItemStatus(r.Context(), h.DB, id, req.Status)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "marketplace item not found")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update status")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "status updated"})
}
