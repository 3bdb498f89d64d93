// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package nutrition

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gizitrack/gizitrack/internal/domain"
)

type stubLogSource struct {
	logs []*domain.FoodLog
	err  error
}

func (s *stubLogSource) ListByProfileBetween(_ context.Context, _ int, _, _ time.Time) ([]*domain.FoodLog, error) {
	return s.logs, s.err
}

var testProfile = &domain.Profile{
	ID: 1, Name: "Budi", Sex: "male", Age: 35,
	HeightCM: 170, WeightKG: 72, ActivityLevel: domain.ActivitySedentary,
}

func alertCodes(alerts []domain.Alert) []string {
	codes := make([]string, 0, len(alerts))
	for _, a := range alerts {
		codes = append(codes, a.Code)
	}
	return codes
}

func week() (time.Time, time.Time) {
	to := time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC)
	return to.AddDate(0, 0, -7), to
}

func dailyLogs(days int, each domain.FoodLog) []*domain.FoodLog {
	from, _ := week()
	logs := make([]*domain.FoodLog, 0, days)
	for i := 0; i < days; i++ {
		l := each
		l.LoggedAt = from.AddDate(0, 0, i)
		logs = append(logs, &l)
	}
	return logs
}

func TestAnalyzeAggregatesTotals(t *testing.T) {
	from, to := week()
	src := &stubLogSource{logs: dailyLogs(7, domain.FoodLog{
		ProfileID: 1, Name: "meal", Calories: 2000, ProteinG: 80, FatG: 60, CarbsG: 250, SodiumMG: 1500, SugarG: 30,
	})}

	summary, err := NewAnalyzer(src).Analyze(context.Background(), testProfile, from, to)
	require.NoError(t, err)

	assert.Equal(t, 7, summary.Days)
	assert.InDelta(t, 14000, summary.TotalCalories, 0.001)
	assert.InDelta(t, 2000, summary.AvgDailyCal, 0.001)
	assert.InDelta(t, 1500, summary.AvgDailySodium, 0.001)
	assert.InDelta(t, testProfile.DailyCalorieTarget(), summary.TargetDailyCal, 0.001)
	// 2000 kcal against a 1935 kcal target: within limits, protein fine.
	assert.Empty(t, alertCodes(summary.Alerts))
}

func TestAnalyzeCalorieExcessAlert(t *testing.T) {
	from, to := week()
	src := &stubLogSource{logs: dailyLogs(7, domain.FoodLog{
		ProfileID: 1, Name: "feast", Calories: 3500, ProteinG: 100,
	})}

	summary, err := NewAnalyzer(src).Analyze(context.Background(), testProfile, from, to)
	require.NoError(t, err)
	assert.Contains(t, alertCodes(summary.Alerts), "calorie_excess")
}

func TestAnalyzeCalorieDeficitAlert(t *testing.T) {
	from, to := week()
	src := &stubLogSource{logs: dailyLogs(7, domain.FoodLog{
		ProfileID: 1, Name: "snack", Calories: 900, ProteinG: 100,
	})}

	summary, err := NewAnalyzer(src).Analyze(context.Background(), testProfile, from, to)
	require.NoError(t, err)
	assert.Contains(t, alertCodes(summary.Alerts), "calorie_deficit")
}

func TestAnalyzeSodiumAndSugarAlerts(t *testing.T) {
	from, to := week()
	src := &stubLogSource{logs: dailyLogs(7, domain.FoodLog{
		ProfileID: 1, Name: "instant noodles", Calories: 2000, ProteinG: 100, SodiumMG: 3200, SugarG: 80,
	})}

	summary, err := NewAnalyzer(src).Analyze(context.Background(), testProfile, from, to)
	require.NoError(t, err)

	codes := alertCodes(summary.Alerts)
	assert.Contains(t, codes, "sodium_high")
	assert.Contains(t, codes, "sugar_high")

	for _, a := range summary.Alerts {
		if a.Code == "sodium_high" {
			assert.Equal(t, domain.AlertDanger, a.Severity)
		}
	}
}

func TestAnalyzeProteinLowAlert(t *testing.T) {
	from, to := week()
	// 0.8 g/kg * 72 kg = 57.6 g/day minimum.
	src := &stubLogSource{logs: dailyLogs(7, domain.FoodLog{
		ProfileID: 1, Name: "rice only", Calories: 2000, ProteinG: 30,
	})}

	summary, err := NewAnalyzer(src).Analyze(context.Background(), testProfile, from, to)
	require.NoError(t, err)
	assert.Contains(t, alertCodes(summary.Alerts), "protein_low")
}

func TestAnalyzeEmptyPeriod(t *testing.T) {
	from, to := week()
	summary, err := NewAnalyzer(&stubLogSource{}).Analyze(context.Background(), testProfile, from, to)
	require.NoError(t, err)

	require.Len(t, summary.Alerts, 1)
	assert.Equal(t, "no_entries", summary.Alerts[0].Code)
	assert.Equal(t, domain.AlertInfo, summary.Alerts[0].Severity)
}

func TestAnalyzeRejectsBadPeriod(t *testing.T) {
	from, _ := week()
	_, err := NewAnalyzer(&stubLogSource{}).Analyze(context.Background(), testProfile, from, from)
	assert.Error(t, err)
}

func TestAnalyzePropagatesSourceError(t *testing.T) {
	from, to := week()
	boom := errors.New("store down")
	_, err := NewAnalyzer(&stubLogSource{err: boom}).Analyze(context.Background(), testProfile, from, to)
	assert.ErrorIs(t, err, boom)
}

func TestAnalyzePartialDayRoundsUp(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(36 * time.Hour)

	summary, err := NewAnalyzer(&stubLogSource{logs: []*domain.FoodLog{
		{ProfileID: 1, Name: "meal", Calories: 1000, LoggedAt: from},
	}}).Analyze(context.Background(), testProfile, from, to)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Days)
	assert.InDelta(t, 500, summary.AvgDailyCal, 0.001)
}
