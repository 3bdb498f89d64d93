// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package nutrition aggregates food logs into period summaries and emits
// rule-based coaching alerts.
package nutrition

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gizitrack/gizitrack/internal/domain"
)

// WHO-derived daily limits used by the alert rules.
const (
	maxDailySodiumMG = 2000
	maxDailySugarG   = 50
	minProteinPerKG  = 0.8
)

// LogSource is the analyzer's one designated lookup into the food log
// store. *models.FoodLogStore satisfies it.
type LogSource interface {
	ListByProfileBetween(ctx context.Context, profileID int, from, to time.Time) ([]*domain.FoodLog, error)
}

// Analyzer computes nutrition summaries for profiles.
type Analyzer struct {
	logs LogSource
}

func NewAnalyzer(logs LogSource) *Analyzer {
	return &Analyzer{logs: logs}
}

// Analyze aggregates the profile's food logs over [from, to) and applies
// the alert rules against the profile's daily targets. The period is
// rounded up to whole days, minimum one.
func (a *Analyzer) Analyze(ctx context.Context, profile *domain.Profile, from, to time.Time) (*domain.NutritionSummary, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("analysis period end %s is not after start %s", to.Format(time.RFC3339), from.Format(time.RFC3339))
	}

	logs, err := a.logs.ListByProfileBetween(ctx, profile.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load food logs for profile %d: %w", profile.ID, err)
	}

	days := int(to.Sub(from).Hours() / 24)
	if to.Sub(from)%(24*time.Hour) != 0 || days == 0 {
		days++
	}

	s := &domain.NutritionSummary{
		ProfileID:      profile.ID,
		From:           from,
		To:             to,
		Days:           days,
		TargetDailyCal: profile.DailyCalorieTarget(),
	}
	for _, f := range logs {
		s.TotalCalories += f.Calories
		s.TotalProteinG += f.ProteinG
		s.TotalFatG += f.FatG
		s.TotalCarbsG += f.CarbsG
		s.AvgDailySodium += f.SodiumMG
		s.AvgDailySugar += f.SugarG
	}
	s.AvgDailyCal = s.TotalCalories / float64(days)
	s.AvgDailyProtein = s.TotalProteinG / float64(days)
	s.AvgDailySodium /= float64(days)
	s.AvgDailySugar /= float64(days)

	s.Alerts = applyRules(profile, s, len(logs))

	log.Debug().
		Int("profileId", profile.ID).
		Int("entries", len(logs)).
		Int("alerts", len(s.Alerts)).
		Msg("nutrition analysis complete")
	return s, nil
}

func applyRules(profile *domain.Profile, s *domain.NutritionSummary, entries int) []domain.Alert {
	alerts := []domain.Alert{}
	if entries == 0 {
		alerts = append(alerts, domain.Alert{
			Code:     "no_entries",
			Severity: domain.AlertInfo,
			Message:  "no food logged in this period",
		})
		return alerts
	}

	if s.TargetDailyCal > 0 {
		ratio := s.AvgDailyCal / s.TargetDailyCal
		switch {
		case ratio > 1.2:
			alerts = append(alerts, domain.Alert{
				Code:     "calorie_excess",
				Severity: domain.AlertWarning,
				Message:  fmt.Sprintf("average intake %.0f kcal/day exceeds the %.0f kcal target by more than 20%%", s.AvgDailyCal, s.TargetDailyCal),
			})
		case ratio < 0.7:
			alerts = append(alerts, domain.Alert{
				Code:     "calorie_deficit",
				Severity: domain.AlertWarning,
				Message:  fmt.Sprintf("average intake %.0f kcal/day is below 70%% of the %.0f kcal target", s.AvgDailyCal, s.TargetDailyCal),
			})
		}
	}

	if s.AvgDailySodium > maxDailySodiumMG {
		alerts = append(alerts, domain.Alert{
			Code:     "sodium_high",
			Severity: domain.AlertDanger,
			Message:  fmt.Sprintf("average sodium %.0f mg/day exceeds the %d mg limit", s.AvgDailySodium, maxDailySodiumMG),
		})
	}
	if s.AvgDailySugar > maxDailySugarG {
		alerts = append(alerts, domain.Alert{
			Code:     "sugar_high",
			Severity: domain.AlertWarning,
			Message:  fmt.Sprintf("average sugar %.0f g/day exceeds the %d g limit", s.AvgDailySugar, maxDailySugarG),
		})
	}

	if minProtein := minProteinPerKG * profile.WeightKG; s.AvgDailyProtein < minProtein {
		alerts = append(alerts, domain.Alert{
			Code:     "protein_low",
			Severity: domain.AlertInfo,
			Message:  fmt.Sprintf("average protein %.0f g/day is below the %.0f g recommendation", s.AvgDailyProtein, minProtein),
		})
	}

	return alerts
}
