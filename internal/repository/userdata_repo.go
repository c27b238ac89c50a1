package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/NitishV2006/OneOrbit/internal/models"
)

// UserDataRepository persists one JSONB row per account holding the full
// UserData blob. Replace rewrites the row unconditionally, which keeps the
// whole-blob last-write-wins contract at the storage layer.
type UserDataRepository struct {
	db DBTX
}

func NewUserDataRepository(db DBTX) *UserDataRepository {
	return &UserDataRepository{db: db}
}

func (r *UserDataRepository) Get(ctx context.Context, userID string) (*models.UserData, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, `SELECT data FROM user_data WHERE user_id = $1`, userID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var data models.UserData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *UserDataRepository) Replace(ctx context.Context, userID string, data *models.UserData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO user_data (user_id, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`, userID, raw)
	return err
}
