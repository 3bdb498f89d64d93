// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gizitrack/gizitrack/internal/models"
	"github.com/gizitrack/gizitrack/internal/nutrition"
)

type AnalysisHandler struct {
	profiles *models.ProfileStore
	analyzer *nutrition.Analyzer
}

func NewAnalysisHandler(profiles *models.ProfileStore, analyzer *nutrition.Analyzer) *AnalysisHandler {
	return &AnalysisHandler{profiles: profiles, analyzer: analyzer}
}

// Analyze summarizes the profile's nutrition over the trailing N days
// (default 7) and returns the rule-based alerts.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 365 {
			respondError(w, http.StatusBadRequest, "invalid days parameter")
			return
		}
		days = parsed
	}

	profile, err := h.profiles.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrProfileNotFound) {
			respondError(w, http.StatusNotFound, "profile not found")
			return
		}
		log.Error().Err(err).Int("profileId", id).Msg("failed to load profile for analysis")
		respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	to := time.Now()
	summary, err := h.analyzer.Analyze(r.Context(), profile, to.AddDate(0, 0, -days), to)
	if err != nil {
		log.Error().Err(err).Int("profileId", id).Msg("nutrition analysis failed")
		respondError(w, http.StatusInternalServerError, "analysis failed")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
