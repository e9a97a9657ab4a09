package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gestor-erp/gestor/internal/shared"
)

// Profile is the editable presentation data behind the settings page: display
// name and job title, one row per user.
type Profile struct {
	UserID    uuid.UUID `json:"user_id"`
	Nome      string    `json:"nome"`
	Cargo     string    `json:"cargo"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileStore persists per-user profiles.
type ProfileStore interface {
	ProfileByUser(ctx context.Context, userID uuid.UUID) (*Profile, error)
	SaveProfile(ctx context.Context, userID uuid.UUID, nome, cargo string) (*Profile, error)
}

// ProfileByUser fetches the profile row for userID, shared.ErrNotFound when
// none exists yet.
func (r *PGRepository) ProfileByUser(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT user_id, nome, cargo, updated_at FROM profiles WHERE user_id = $1",
		userID,
	)
	return scanProfile(row)
}

// SaveProfile writes nome and cargo for userID, creating the row on first
// save.
func (r *PGRepository) SaveProfile(ctx context.Context, userID uuid.UUID, nome, cargo string) (*Profile, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (user_id, nome, cargo, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id) DO UPDATE SET nome = $2, cargo = $3, updated_at = NOW()
		RETURNING user_id, nome, cargo, updated_at`,
		userID, nome, cargo,
	)
	return scanProfile(row)
}

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	var nome, cargo pgtype.Text
	var updatedAt pgtype.Timestamptz
	if err := row.Scan(&p.UserID, &nome, &cargo, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	p.Nome = nome.String
	p.Cargo = cargo.String
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time
	}
	return &p, nil
}

var _ ProfileStore = (*PGRepository)(nil)
