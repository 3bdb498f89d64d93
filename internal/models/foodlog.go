// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package models

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/gizitrack/gizitrack/internal/dbinterface"
	"github.com/gizitrack/gizitrack/internal/domain"
)

var ErrFoodLogNotFound = errors.New("food log not found")

// FoodLogStore persists food log entries.
type FoodLogStore struct {
	db dbinterface.Querier
}

func NewFoodLogStore(db dbinterface.Querier) *FoodLogStore {
	return &FoodLogStore{db: db}
}

func (s *FoodLogStore) Create(ctx context.Context, f *domain.FoodLog) (*domain.FoodLog, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if f.LoggedAt.IsZero() {
		f.LoggedAt = time.Now()
	}

	res, err := s.db.Exec(ctx, `
		INSERT INTO food_logs (profile_id, name, calories, protein_g, fat_g, carbs_g, sodium_mg, sugar_g, logged_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ProfileID, f.Name, f.Calories, f.ProteinG, f.FatG, f.CarbsG, f.SodiumMG, f.SugarG, f.LoggedAt.UnixMilli(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "insert food log")
	}

	f.ID = int(res.LastInsertID)
	return f, nil
}

func (s *FoodLogStore) Delete(ctx context.Context, id int) error {
	res, err := s.db.Exec(ctx, `DELETE FROM food_logs WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete food log")
	}
	if res.RowsAffected == 0 {
		return ErrFoodLogNotFound
	}
	return nil
}

// ListByProfileBetween returns a profile's entries with logged_at in
// [from, to), oldest first. This is the designated lookup the nutrition
// analyzer depends on.
func (s *FoodLogStore) ListByProfileBetween(ctx context.Context, profileID int, from, to time.Time) ([]*domain.FoodLog, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, profile_id, name, calories, protein_g, fat_g, carbs_g, sodium_mg, sugar_g, logged_at
		FROM food_logs
		WHERE profile_id = ? AND logged_at >= ? AND logged_at < ?
		ORDER BY logged_at`,
		profileID, from.UnixMilli(), to.UnixMilli(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "query food logs")
	}

	logs := make([]*domain.FoodLog, 0, rows.Len())
	for i := 0; i < rows.Len(); i++ {
		row := rows.Map(i)
		f := &domain.FoodLog{}

		id, ok := row["id"].(int64)
		if !ok {
			return nil, errors.New("scan food log: bad id column")
		}
		f.ID = int(id)
		if pid, ok := row["profile_id"].(int64); ok {
			f.ProfileID = int(pid)
		}
		f.Name, _ = row["name"].(string)
		f.Calories = asFloat(row["calories"])
		f.ProteinG = asFloat(row["protein_g"])
		f.FatG = asFloat(row["fat_g"])
		f.CarbsG = asFloat(row["carbs_g"])
		f.SodiumMG = asFloat(row["sodium_mg"])
		f.SugarG = asFloat(row["sugar_g"])
		if millis, ok := row["logged_at"].(int64); ok {
			f.LoggedAt = time.UnixMilli(millis)
		}
		logs = append(logs, f)
	}
	return logs, nil
}
