// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package models

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gizitrack/gizitrack/internal/domain"
)

func seedProfile(t *testing.T, store *ProfileStore) *domain.Profile {
	t.Helper()

	p, err := store.Create(context.Background(), &domain.Profile{
		Name: "Budi", Sex: "male", Age: 35, HeightCM: 170, WeightKG: 72,
	})
	require.NoError(t, err)
	return p
}

func TestFoodLogStoreCreateAndListBetween(t *testing.T) {
	db := newMigratedDB(t)
	profiles := NewProfileStore(db)
	logs := NewFoodLogStore(db)
	ctx := context.Background()

	p := seedProfile(t, profiles)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i, name := range []string{"nasi uduk", "sate ayam", "es teh"} {
		_, err := logs.Create(ctx, &domain.FoodLog{
			ProfileID: p.ID,
			Name:      name,
			Calories:  float64(300 + i*100),
			SodiumMG:  500,
			LoggedAt:  base.AddDate(0, 0, i),
		})
		require.NoError(t, err)
	}

	// Half-open window: entries on day 0 and 1, not day 2.
	got, err := logs.ListByProfileBetween(ctx, p.ID, base, base.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "nasi uduk", got[0].Name)
	assert.Equal(t, "sate ayam", got[1].Name)
	assert.InDelta(t, 300.0, got[0].Calories, 0.001)
	assert.Equal(t, base, got[0].LoggedAt.UTC())

	// Other profiles' windows are empty.
	got, err = logs.ListByProfileBetween(ctx, p.ID+1, base, base.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFoodLogStoreDefaultsLoggedAt(t *testing.T) {
	db := newMigratedDB(t)
	profiles := NewProfileStore(db)
	logs := NewFoodLogStore(db)

	p := seedProfile(t, profiles)
	created, err := logs.Create(context.Background(), &domain.FoodLog{
		ProfileID: p.ID, Name: "bakso", Calories: 350,
	})
	require.NoError(t, err)
	assert.False(t, created.LoggedAt.IsZero())
}

func TestFoodLogStoreRejectsInvalidEntry(t *testing.T) {
	db := newMigratedDB(t)
	logs := NewFoodLogStore(db)

	_, err := logs.Create(context.Background(), &domain.FoodLog{ProfileID: 1, Name: "", Calories: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidFoodLog)

	_, err = logs.Create(context.Background(), &domain.FoodLog{ProfileID: 1, Name: "x", Calories: -10})
	assert.ErrorIs(t, err, domain.ErrInvalidFoodLog)
}

func TestFoodLogStoreDelete(t *testing.T) {
	db := newMigratedDB(t)
	profiles := NewProfileStore(db)
	logs := NewFoodLogStore(db)
	ctx := context.Background()

	p := seedProfile(t, profiles)
	created, err := logs.Create(ctx, &domain.FoodLog{ProfileID: p.ID, Name: "soto", Calories: 280})
	require.NoError(t, err)

	require.NoError(t, logs.Delete(ctx, created.ID))
	assert.ErrorIs(t, logs.Delete(ctx, created.ID), ErrFoodLogNotFound)
}
