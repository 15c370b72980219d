package server

import (
	"context"
	"database/sql"
	"errors"

	"github.com/storypath/participant-api/internal/storypath"
)

// SQLiteStore persists the single local profile row.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Profile(ctx context.Context) (storypath.Profile, error) {
	var p storypath.Profile
	err := s.db.QueryRowContext(ctx, `
		SELECT username, image_uri, saved_at FROM profile WHERE id = 1
	`).Scan(&p.Username, &p.ImageURI, &p.SavedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storypath.Profile{}, ErrNoProfile
	}
	return p, err
}

func (s *SQLiteStore) SaveProfile(ctx context.Context, p storypath.Profile) (storypath.Profile, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO profile (id, username, image_uri)
		VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			username = excluded.username,
			image_uri = excluded.image_uri,
			saved_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
		RETURNING username, image_uri, saved_at
	`, p.Username, p.ImageURI).Scan(&p.Username, &p.ImageURI, &p.SavedAt)
	return p, err
}
