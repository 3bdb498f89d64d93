// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/gizitrack/gizitrack/internal/domain"
	"github.com/gizitrack/gizitrack/internal/models"
)

type FoodLogHandler struct {
	store *models.FoodLogStore
}

func NewFoodLogHandler(store *models.FoodLogStore) *FoodLogHandler {
	return &FoodLogHandler{store: store}
}

func (h *FoodLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	var entry domain.FoodLog
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry.ProfileID = id

	created, err := h.store.Create(r.Context(), &entry)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFoodLog) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Int("profileId", id).Msg("failed to create food log")
		respondError(w, http.StatusInternalServerError, "failed to create food log")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// List returns the profile's entries for the trailing N days (default 7).
func (h *FoodLogHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "invalid days parameter")
			return
		}
		days = parsed
	}

	to := time.Now()
	from := to.AddDate(0, 0, -days)
	logs, err := h.store.ListByProfileBetween(r.Context(), id, from, to)
	if err != nil {
		log.Error().Err(err).Int("profileId", id).Msg("failed to list food logs")
		respondError(w, http.StatusInternalServerError, "failed to list food logs")
		return
	}
	respondJSON(w, http.StatusOK, logs)
}

func (h *FoodLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "logID"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid log id")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrFoodLogNotFound) {
			respondError(w, http.StatusNotFound, "food log not found")
			return
		}
		log.Error().Err(err).Int("logId", id).Msg("failed to delete food log")
		respondError(w, http.StatusInternalServerError, "failed to delete food log")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
