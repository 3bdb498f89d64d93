// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package domain

import (
	"errors"
	"time"
)

var ErrInvalidFoodLog = errors.New("invalid food log")

// FoodLog is one logged food item.
type FoodLog struct {
	ID        int       `json:"id"`
	ProfileID int       `json:"profileId"`
	Name      string    `json:"name"`
	Calories  float64   `json:"calories"`
	ProteinG  float64   `json:"proteinG"`
	FatG      float64   `json:"fatG"`
	CarbsG    float64   `json:"carbsG"`
	SodiumMG  float64   `json:"sodiumMg"`
	SugarG    float64   `json:"sugarG"`
	LoggedAt  time.Time `json:"loggedAt"`
}

// Validate rejects entries the analyzer cannot aggregate meaningfully.
func (f *FoodLog) Validate() error {
	switch {
	case f.ProfileID <= 0:
		return errors.Join(ErrInvalidFoodLog, errors.New("profile id is required"))
	case f.Name == "":
		return errors.Join(ErrInvalidFoodLog, errors.New("name is required"))
	case f.Calories < 0 || f.ProteinG < 0 || f.FatG < 0 || f.CarbsG < 0 || f.SodiumMG < 0 || f.SugarG < 0:
		return errors.Join(ErrInvalidFoodLog, errors.New("nutrient values must not be negative"))
	}
	return nil
}

// AlertSeverity grades a nutrition alert.
type AlertSeverity string

const (
	AlertInfo    AlertSeverity = "info"
	AlertWarning AlertSeverity = "warning"
	AlertDanger  AlertSeverity = "danger"
)

// Alert is one rule-based nutrition finding.
type Alert struct {
	Code     string        `json:"code"`
	Severity AlertSeverity `json:"severity"`
	Message  string        `json:"message"`
}

// NutritionSummary aggregates a profile's food logs over a period.
type NutritionSummary struct {
	ProfileID       int       `json:"profileId"`
	From            time.Time `json:"from"`
	To              time.Time `json:"to"`
	Days            int       `json:"days"`
	TotalCalories   float64   `json:"totalCalories"`
	AvgDailyCal     float64   `json:"avgDailyCalories"`
	TargetDailyCal  float64   `json:"targetDailyCalories"`
	TotalProteinG   float64   `json:"totalProteinG"`
	TotalFatG       float64   `json:"totalFatG"`
	TotalCarbsG     float64   `json:"totalCarbsG"`
	AvgDailySodium  float64   `json:"avgDailySodiumMg"`
	AvgDailySugar   float64   `json:"avgDailySugarG"`
	AvgDailyProtein float64   `json:"avgDailyProteinG"`
	Alerts          []Alert   `json:"alerts"`
}
