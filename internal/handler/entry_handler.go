package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prn-tf/chronicle/internal/auth"
	"github.com/prn-tf/chronicle/internal/domain"
	"github.com/prn-tf/chronicle/internal/service"
)

// EntryHandler serves the entry lifecycle endpoints.
type EntryHandler struct {
	entries *service.EntryService
	logger  zerolog.Logger
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entries *service.EntryService, logger zerolog.Logger) *EntryHandler {
	return &EntryHandler{
		entries: entries,
		logger:  logger.With().Str("handler", "entry").Logger(),
	}
}

// Create handles POST /entries.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.FromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := domain.ParseDay(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	entry, err := h.entries.CreateEntry(r.Context(), service.CreateEntryInput{
		UserID:     identity.UserID,
		Title:      req.Title,
		Content:    req.Content,
		Date:       date,
		Images:     req.Images,
		Covers:     domain.CoverSet(req.Covers),
		IsFavorite: req.IsFavorite,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEntryResponse(entry))
}

// List handles GET /entries.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.FromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	entries := h.entries.ListEntries(r.Context(), identity.UserID)
	writeJSON(w, http.StatusOK, toEntryResponses(entries))
}

// Get handles GET /entries/{id}.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, entryID, ok := h.identityAndID(w, r)
	if !ok {
		return
	}

	entry, err := h.entries.GetEntry(r.Context(), identity.UserID, entryID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// GetOnDay handles GET /entries/on-day?date=YYYY-MM-DD.
func (h *EntryHandler) GetOnDay(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.FromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	day, err := domain.ParseDay(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	entry, err := h.entries.GetEntryOnDay(r.Context(), identity.UserID, day)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// Update handles PUT /entries/{id}.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, entryID, ok := h.identityAndID(w, r)
	if !ok {
		return
	}

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := service.UpdateEntryInput{
		ID:         entryID,
		UserID:     identity.UserID,
		Title:      req.Title,
		Content:    req.Content,
		Images:     req.Images,
		Covers:     domain.CoverSet(req.Covers),
		IsFavorite: req.IsFavorite,
	}
	if req.Date != "" {
		date, err := domain.ParseDay(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		input.Date = date
	}

	entry, err := h.entries.UpdateEntry(r.Context(), input)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// Delete handles DELETE /entries/{id}.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, entryID, ok := h.identityAndID(w, r)
	if !ok {
		return
	}

	if err := h.entries.DeleteEntry(r.Context(), identity.UserID, entryID); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// lockRequest carries the credential for lock/unlock operations. The
// credential is obtained interactively from the user and never stored.
type lockRequest struct {
	Credential string `json:"credential"`
	Persist    bool   `json:"persist"`
}

// Lock handles POST /entries/{id}/lock.
func (h *EntryHandler) Lock(w http.ResponseWriter, r *http.Request) {
	identity, entryID, ok := h.identityAndID(w, r)
	if !ok {
		return
	}

	var req lockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Credential == "" {
		writeError(w, http.StatusBadRequest, "credential is required")
		return
	}

	entry, err := h.entries.LockEntry(r.Context(), service.LockEntryInput{
		ID:         entryID,
		UserID:     identity.UserID,
		Credential: req.Credential,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// Unlock handles POST /entries/{id}/unlock. On a decryption failure the
// entry is returned with empty title and content and status 422, so the
// client can distinguish an undecryptable entry from an empty one.
func (h *EntryHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	identity, entryID, ok := h.identityAndID(w, r)
	if !ok {
		return
	}

	var req lockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Credential == "" {
		writeError(w, http.StatusBadRequest, "credential is required")
		return
	}

	entry, err := h.entries.UnlockEntry(r.Context(), service.UnlockEntryInput{
		ID:         entryID,
		UserID:     identity.UserID,
		Credential: req.Credential,
		Persist:    req.Persist,
	})
	if errors.Is(err, domain.ErrUndecryptable) {
		// The blanked entry still goes to the client; the status code is
		// what distinguishes it from a legitimately empty entry.
		writeJSON(w, http.StatusUnprocessableEntity, toEntryResponse(entry))
		return
	}
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

func (h *EntryHandler) identityAndID(w http.ResponseWriter, r *http.Request) (auth.Identity, uuid.UUID, bool) {
	identity, err := auth.FromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return auth.Identity{}, uuid.Nil, false
	}

	entryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return auth.Identity{}, uuid.Nil, false
	}

	return identity, entryID, true
}
