package item

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stockroom/stockroom-backend/internal/view"
)

// Handler exposes item HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/item", func(r chi.Router) {
		r.Get("/", h.listItems)
		r.Get("/summaries", h.itemSummaries) // ?q=...
		r.Get("/{id}", h.getItem)
		r.Post("/", h.createItem)
		r.Put("/{id}", h.updateItem)
		r.Delete("/{id}", h.deleteItem)
		r.Delete("/", h.deleteAllItems)
	})
}

func isDuplicateKey(err error) bool {
	return strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "duplicate key")
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if items == nil {
		items = []*Item{}
	}
	respond(w, http.StatusOK, items)
}

// summaryResponse is one row of the item overview. TotalQuantity is null when
// no summary is available for the item, never a misleading zero.
type summaryResponse struct {
	Item          view.Item      `json:"item"`
	TotalQuantity *int           `json:"totalQuantity"`
	Warehouses    map[string]int `json:"warehouses,omitempty"`
}

func (h *Handler) itemSummaries(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ItemSummaries(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	out := make([]summaryResponse, 0, len(rows))
	for _, row := range rows {
		resp := summaryResponse{Item: row.Item, Warehouses: row.PerWarehouse}
		if row.State == view.QuantityLoaded {
			total := row.Quantity
			resp.TotalQuantity = &total
		}
		out = append(out, resp)
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	it, err := h.service.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, it)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	it, err := h.service.CreateItem(r.Context(), req)
	if err != nil {
		if isDuplicateKey(err) {
			respond(w, http.StatusConflict, map[string]string{"error": "an item with this name or sku already exists"})
			return
		}
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, it)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	it, err := h.service.UpdateItem(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		case isDuplicateKey(err):
			respond(w, http.StatusConflict, map[string]string{"error": "an item with this name or sku already exists"})
		default:
			respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return
	}
	respond(w, http.StatusOK, it)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteAllItems(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAllItems(r.Context()); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
