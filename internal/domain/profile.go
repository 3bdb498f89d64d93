// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package domain

import (
	"errors"
	"time"
)

// ActivityLevel scales a profile's basal metabolic rate into a daily
// calorie target.
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityActive    ActivityLevel = "active"
	ActivityVeryHigh  ActivityLevel = "very_high"
)

var activityFactors = map[ActivityLevel]float64{
	ActivitySedentary: 1.2,
	ActivityLight:     1.375,
	ActivityModerate:  1.55,
	ActivityActive:    1.725,
	ActivityVeryHigh:  1.9,
}

// Factor returns the calorie multiplier for the level, defaulting to
// sedentary for unknown values.
func (a ActivityLevel) Factor() float64 {
	if f, ok := activityFactors[a]; ok {
		return f
	}
	return activityFactors[ActivitySedentary]
}

var ErrInvalidProfile = errors.New("invalid profile")

// Profile is one coached user.
type Profile struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	Sex           string        `json:"sex"`
	Age           int           `json:"age"`
	HeightCM      float64       `json:"heightCm"`
	WeightKG      float64       `json:"weightKg"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Validate checks the fields the arithmetic below depends on.
func (p *Profile) Validate() error {
	switch {
	case p.Name == "":
		return errors.Join(ErrInvalidProfile, errors.New("name is required"))
	case p.Sex != "male" && p.Sex != "female":
		return errors.Join(ErrInvalidProfile, errors.New("sex must be male or female"))
	case p.Age <= 0 || p.Age > 130:
		return errors.Join(ErrInvalidProfile, errors.New("age out of range"))
	case p.HeightCM <= 0 || p.WeightKG <= 0:
		return errors.Join(ErrInvalidProfile, errors.New("height and weight must be positive"))
	}
	return nil
}

// BMI returns the body mass index (kg/m²).
func (p *Profile) BMI() float64 {
	if p.HeightCM <= 0 {
		return 0
	}
	m := p.HeightCM / 100
	return p.WeightKG / (m * m)
}

// BMICategory classifies BMI using the WHO Asian-population cutoffs used
// for the Indonesian market.
func (p *Profile) BMICategory() string {
	bmi := p.BMI()
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 23:
		return "normal"
	case bmi < 27.5:
		return "overweight"
	default:
		return "obese"
	}
}

// BMR returns the basal metabolic rate in kcal/day (Mifflin-St Jeor).
func (p *Profile) BMR() float64 {
	base := 10*p.WeightKG + 6.25*p.HeightCM - 5*float64(p.Age)
	if p.Sex == "male" {
		return base + 5
	}
	return base - 161
}

// DailyCalorieTarget returns BMR scaled by the profile's activity level.
func (p *Profile) DailyCalorieTarget() float64 {
	return p.BMR() * p.ActivityLevel.Factor()
}
