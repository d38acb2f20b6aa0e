package photo

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// maxUploadBytes caps a single photo upload at 10 MiB.
const maxUploadBytes = 10 << 20

// Handler exposes photo HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/photos", func(r chi.Router) {
		r.Get("/{ownerType}/{ownerId}", h.listByOwner)
		r.Post("/{ownerType}/{ownerId}", h.upload)
		r.Get("/{id}", h.serve)
		r.Delete("/{id}", h.deletePhoto)
	})
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	p, err := h.service.Upload(r.Context(),
		chi.URLParam(r, "ownerType"), chi.URLParam(r, "ownerId"),
		header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) listByOwner(w http.ResponseWriter, r *http.Request) {
	photos, err := h.service.ListByOwner(r.Context(),
		chi.URLParam(r, "ownerType"), chi.URLParam(r, "ownerId"))
	if err != nil {
		if errors.Is(err, ErrUnknownOwner) {
			respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if photos == nil {
		photos = []*Photo{}
	}
	respond(w, http.StatusOK, photos)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request) {
	p, rc, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	defer rc.Close()

	if p.ContentType != "" {
		w.Header().Set("Content-Type", p.ContentType)
	}
	w.Header().Set("Content-Length", strconv.FormatInt(p.SizeBytes, 10))
	_, _ = io.Copy(w, rc)
}

func (h *Handler) deletePhoto(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
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
