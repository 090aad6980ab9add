package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// PostgresStore persists session records in the sessions table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a Postgres-backed session store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Record, error) {
	var (
		raw       []byte
		createdAt time.Time
		updatedAt time.Time
		expiresAt time.Time
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT profile, created_at, updated_at, expires_at FROM sessions WHERE id = $1`,
		id,
	).Scan(&raw, &createdAt, &updatedAt, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	if time.Now().After(expiresAt) {
		return nil, ErrNotFound
	}

	var profile Profile
	wrapped := struct {
		Profile       *Profile `json:"profile"`
		UpstreamToken string   `json:"upstreamToken"`
	}{Profile: &profile}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode session record: %w", err)
	}

	return &Record{
		ID:            id,
		Profile:       profile,
		UpstreamToken: wrapped.UpstreamToken,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
		ExpiresAt:     expiresAt,
	}, nil
}

// Set writes the whole record in one statement; last write wins.
func (s *PostgresStore) Set(ctx context.Context, rec *Record) error {
	payload, err := json.Marshal(struct {
		Profile       Profile `json:"profile"`
		UpstreamToken string  `json:"upstreamToken,omitempty"`
	}{Profile: rec.Profile, UpstreamToken: rec.UpstreamToken})
	if err != nil {
		return fmt.Errorf("failed to encode session record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, profile, created_at, updated_at, expires_at)
		VALUES ($1, $2, now(), now(), $3)
		ON CONFLICT (id) DO UPDATE SET
			profile = EXCLUDED.profile,
			updated_at = now(),
			expires_at = EXCLUDED.expires_at`,
		rec.ID, payload, rec.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// CountExpired returns how many sessions are past their expiry.
func (s *PostgresStore) CountExpired(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE expires_at < now()`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count expired sessions: %w", err)
	}
	return count, nil
}

// PurgeExpired deletes sessions past their expiry and returns how many
// were removed. Used by the cleanup job.
func (s *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read purge result: %w", err)
	}
	return n, nil
}
