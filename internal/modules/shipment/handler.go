package shipment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes shipment and line item HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/shipments", func(r chi.Router) {
		r.Get("/", h.listShipments)
		r.Get("/warehouse/{warehouseId}", h.listByWarehouse)
		r.Get("/shop/{shopId}", h.listByShop)
		r.Get("/{id}", h.getShipment)
		r.Post("/", h.createShipment)
		r.Patch("/{id}", h.updateShipment)
		r.Patch("/{id}/status", h.updateStatus)
		r.Delete("/{id}", h.deleteShipment)
	})
	r.Route("/api/shipmentLineItems", func(r chi.Router) {
		r.Get("/byShipmentId/{shipmentId}", h.listLineItems)
		r.Post("/", h.createLineItem)
		r.Patch("/{id}", h.updateLineItem)
		r.Delete("/{id}", h.deleteLineItem)
	})
}

// respondError maps service errors to status codes. A locked shipment maps to
// 423 so clients can distinguish it from validation failures.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrLineItemNotFound):
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrLocked):
		respond(w, http.StatusLocked, map[string]string{"error": err.Error()})
	default:
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
}

func (h *Handler) listShipments(w http.ResponseWriter, r *http.Request) {
	shipments, err := h.service.ListShipments(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if shipments == nil {
		shipments = []*Shipment{}
	}
	respond(w, http.StatusOK, shipments)
}

func (h *Handler) listByWarehouse(w http.ResponseWriter, r *http.Request) {
	shipments, err := h.service.ListShipmentsByWarehouse(r.Context(), chi.URLParam(r, "warehouseId"))
	if err != nil {
		respondError(w, err)
		return
	}
	if shipments == nil {
		shipments = []*Shipment{}
	}
	respond(w, http.StatusOK, shipments)
}

func (h *Handler) listByShop(w http.ResponseWriter, r *http.Request) {
	shipments, err := h.service.ListShipmentsByShop(r.Context(), chi.URLParam(r, "shopId"))
	if err != nil {
		respondError(w, err)
		return
	}
	if shipments == nil {
		shipments = []*Shipment{}
	}
	respond(w, http.StatusOK, shipments)
}

func (h *Handler) getShipment(w http.ResponseWriter, r *http.Request) {
	sh, err := h.service.GetShipment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, sh)
}

func (h *Handler) createShipment(w http.ResponseWriter, r *http.Request) {
	var req CreateShipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sh, err := h.service.CreateShipment(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, sh)
}

func (h *Handler) updateShipment(w http.ResponseWriter, r *http.Request) {
	var req UpdateShipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sh, err := h.service.UpdateShipment(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, sh)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sh, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, sh)
}

func (h *Handler) deleteShipment(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteShipment(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listLineItems(w http.ResponseWriter, r *http.Request) {
	lineItems, err := h.service.ListLineItems(r.Context(), chi.URLParam(r, "shipmentId"))
	if err != nil {
		respondError(w, err)
		return
	}
	if lineItems == nil {
		lineItems = []*LineItem{}
	}
	respond(w, http.StatusOK, lineItems)
}

func (h *Handler) createLineItem(w http.ResponseWriter, r *http.Request) {
	var req CreateLineItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	li, err := h.service.CreateLineItem(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, li)
}

func (h *Handler) updateLineItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateLineItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	li, err := h.service.UpdateLineItem(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, li)
}

func (h *Handler) deleteLineItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteLineItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
