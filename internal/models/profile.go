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

var ErrProfileNotFound = errors.New("profile not found")

// ProfileStore persists user profiles.
type ProfileStore struct {
	db dbinterface.Querier
}

func NewProfileStore(db dbinterface.Querier) *ProfileStore {
	return &ProfileStore{db: db}
}

func (s *ProfileStore) Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.ActivityLevel == "" {
		p.ActivityLevel = domain.ActivitySedentary
	}

	now := time.Now()
	res, err := s.db.Exec(ctx, `
		INSERT INTO profiles (name, sex, age, height_cm, weight_kg, activity_level, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Sex, p.Age, p.HeightCM, p.WeightKG, string(p.ActivityLevel), now.UnixMilli(), now.UnixMilli(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "insert profile")
	}

	p.ID = int(res.LastInsertID)
	p.CreatedAt = now
	p.UpdatedAt = now
	return p, nil
}

func (s *ProfileStore) Get(ctx context.Context, id int) (*domain.Profile, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, sex, age, height_cm, weight_kg, activity_level, created_at, updated_at
		FROM profiles WHERE id = ?`, id)
	if err != nil {
		return nil, errors.Wrap(err, "query profile")
	}
	if rows.Len() == 0 {
		return nil, ErrProfileNotFound
	}
	return scanProfile(rows.Map(0))
}

func (s *ProfileStore) List(ctx context.Context) ([]*domain.Profile, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, sex, age, height_cm, weight_kg, activity_level, created_at, updated_at
		FROM profiles ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "query profiles")
	}

	profiles := make([]*domain.Profile, 0, rows.Len())
	for i := 0; i < rows.Len(); i++ {
		p, err := scanProfile(rows.Map(i))
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (s *ProfileStore) Update(ctx context.Context, p *domain.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	res, err := s.db.Exec(ctx, `
		UPDATE profiles
		SET name = ?, sex = ?, age = ?, height_cm = ?, weight_kg = ?, activity_level = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Sex, p.Age, p.HeightCM, p.WeightKG, string(p.ActivityLevel), time.Now().UnixMilli(), p.ID,
	)
	if err != nil {
		return errors.Wrap(err, "update profile")
	}
	if res.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (s *ProfileStore) Delete(ctx context.Context, id int) error {
	res, err := s.db.Exec(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete profile")
	}
	if res.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func scanProfile(row map[string]any) (*domain.Profile, error) {
	p := &domain.Profile{}

	id, ok := row["id"].(int64)
	if !ok {
		return nil, errors.New("scan profile: bad id column")
	}
	p.ID = int(id)
	p.Name, _ = row["name"].(string)
	p.Sex, _ = row["sex"].(string)
	if age, ok := row["age"].(int64); ok {
		p.Age = int(age)
	}
	p.HeightCM = asFloat(row["height_cm"])
	p.WeightKG = asFloat(row["weight_kg"])
	if level, ok := row["activity_level"].(string); ok {
		p.ActivityLevel = domain.ActivityLevel(level)
	}
	if millis, ok := row["created_at"].(int64); ok {
		p.CreatedAt = time.UnixMilli(millis)
	}
	if millis, ok := row["updated_at"].(int64); ok {
		p.UpdatedAt = time.UnixMilli(millis)
	}
	return p, nil
}

// asFloat tolerates SQLite reporting REAL columns as integers when the
// stored value has no fractional part.
func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	default:
		return 0
	}
}
