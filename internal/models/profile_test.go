// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package models

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gizitrack/gizitrack/internal/domain"
)

func TestProfileStoreCRUD(t *testing.T) {
	db := newMigratedDB(t)
	store := NewProfileStore(db)
	ctx := context.Background()

	created, err := store.Create(ctx, &domain.Profile{
		Name:          "Budi",
		Sex:           "male",
		Age:           35,
		HeightCM:      170,
		WeightKG:      72,
		ActivityLevel: domain.ActivityModerate,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budi", got.Name)
	assert.Equal(t, domain.ActivityModerate, got.ActivityLevel)
	assert.InDelta(t, 170.0, got.HeightCM, 0.001)

	got.WeightKG = 70
	require.NoError(t, store.Update(ctx, got))

	updated, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.InDelta(t, 70.0, updated.WeightKG, 0.001)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, store.Delete(ctx, created.ID))

	_, err = store.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileStoreDefaultsActivityLevel(t *testing.T) {
	db := newMigratedDB(t)
	store := NewProfileStore(db)

	created, err := store.Create(context.Background(), &domain.Profile{
		Name:     "Sari",
		Sex:      "female",
		Age:      28,
		HeightCM: 158,
		WeightKG: 55,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ActivitySedentary, created.ActivityLevel)
}

func TestProfileStoreRejectsInvalidProfile(t *testing.T) {
	db := newMigratedDB(t)
	store := NewProfileStore(db)

	_, err := store.Create(context.Background(), &domain.Profile{Name: "", Sex: "male", Age: 30, HeightCM: 170, WeightKG: 70})
	assert.ErrorIs(t, err, domain.ErrInvalidProfile)
}

func TestProfileStoreUpdateMissing(t *testing.T) {
	db := newMigratedDB(t)
	store := NewProfileStore(db)

	err := store.Update(context.Background(), &domain.Profile{
		ID: 42, Name: "Nobody", Sex: "male", Age: 40, HeightCM: 165, WeightKG: 60,
	})
	assert.ErrorIs(t, err, ErrProfileNotFound)

	assert.ErrorIs(t, store.Delete(context.Background(), 42), ErrProfileNotFound)
}
