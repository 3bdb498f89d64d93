// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/gizitrack/gizitrack/internal/domain"
	"github.com/gizitrack/gizitrack/internal/models"
)

type ProfileHandler struct {
	store *models.ProfileStore
}

func NewProfileHandler(store *models.ProfileStore) *ProfileHandler {
	return &ProfileHandler{store: store}
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.store.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list profiles")
		respondError(w, http.StatusInternalServerError, "failed to list profiles")
		return
	}
	respondJSON(w, http.StatusOK, profiles)
}

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var profile domain.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.store.Create(r.Context(), &profile)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidProfile) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Msg("failed to create profile")
		respondError(w, http.StatusInternalServerError, "failed to create profile")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	profile, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrProfileNotFound) {
			respondError(w, http.StatusNotFound, "profile not found")
			return
		}
		log.Error().Err(err).Int("profileId", id).Msg("failed to get profile")
		respondError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"profile":            profile,
		"bmi":                profile.BMI(),
		"bmiCategory":        profile.BMICategory(),
		"dailyCalorieTarget": profile.DailyCalorieTarget(),
	})
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	var profile domain.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	profile.ID = id

	if err := h.store.Update(r.Context(), &profile); err != nil {
		switch {
		case errors.Is(err, models.ErrProfileNotFound):
			respondError(w, http.StatusNotFound, "profile not found")
		case errors.Is(err, domain.ErrInvalidProfile):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Int("profileId", id).Msg("failed to update profile")
			respondError(w, http.StatusInternalServerError, "failed to update profile")
		}
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrProfileNotFound) {
			respondError(w, http.StatusNotFound, "profile not found")
			return
		}
		log.Error().Err(err).Int("profileId", id).Msg("failed to delete profile")
		respondError(w, http.StatusInternalServerError, "failed to delete profile")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func profileID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "profileID"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid profile id")
		return 0, false
	}
	return id, true
}
