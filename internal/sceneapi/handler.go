package sceneapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/thurbridi/rudolph/internal/auth"
	"github.com/thurbridi/rudolph/internal/typeid"
	"github.com/thurbridi/rudolph/internal/wavefront"
)

const maxImportSize = 4 << 20 // scene files are small; 4 MiB is generous

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Name string `json:"name"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	info, err := h.service.Create(r.Context(), req.Name, userID)
	if err != nil {
		slog.Error("create scene failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, info)
}

// sceneIDFromRequest extracts and validates the scene ID path variable.
// Malformed IDs get a 404 without a store round trip.
func sceneIDFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["sceneId"]
	if err := typeid.Validate(id, typeid.PrefixScene); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "scene not found"})
		return "", false
	}
	return id, true
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	sceneID, ok := sceneIDFromRequest(w, r)
	if !ok {
		return
	}

	info, err := h.service.Get(r.Context(), sceneID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	infos, err := h.service.List(r.Context(), userID)
	if err != nil {
		slog.Error("list scenes failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, infos)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	sceneID, ok := sceneIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), sceneID, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Restore replaces the scene document with its latest saved snapshot.
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	sceneID, ok := sceneIDFromRequest(w, r)
	if !ok {
		return
	}

	info, err := h.service.Restore(r.Context(), sceneID, userID)
	if err != nil {
		if errors.Is(err, ErrNoSnapshot) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "scene has no snapshot"})
			return
		}
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

// Import replaces the scene document with an uploaded scene file.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	sceneID, ok := sceneIDFromRequest(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable request body"})
		return
	}

	info, err := h.service.Import(r.Context(), sceneID, userID, string(body))
	if err != nil {
		var parseErr *wavefront.ParseError
		if errors.As(err, &parseErr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": parseErr.Error()})
			return
		}
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

// Export serves the scene document as a downloadable scene file.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	sceneID, ok := sceneIDFromRequest(w, r)
	if !ok {
		return
	}

	document, err := h.service.Export(r.Context(), sceneID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+sceneID+`.obj"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(document))
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "scene not found"})
	case errors.Is(err, ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	default:
		slog.Error("scene request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
