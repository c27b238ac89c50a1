package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NitishV2006/OneOrbit/internal/models"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already exists")
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type AccountRepository struct {
	db   DBTX
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: pool, pool: pool}
}

func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, username, password_hash, avatar_url)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, account.ID, account.Username, account.PasswordHash, account.AvatarURL).
		Scan(&account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := `
		SELECT id, username, password_hash, avatar_url, created_at
		FROM accounts
		WHERE username = $1
	`
	var account models.Account
	err := r.db.QueryRow(ctx, query, username).
		Scan(&account.ID, &account.Username, &account.PasswordHash, &account.AvatarURL, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `
		SELECT id, username, password_hash, avatar_url, created_at
		FROM accounts
		WHERE id = $1
	`
	var account models.Account
	err := r.db.QueryRow(ctx, query, id).
		Scan(&account.ID, &account.Username, &account.PasswordHash, &account.AvatarURL, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) List(ctx context.Context) ([]models.Account, error) {
	query := `
		SELECT id, username, password_hash, avatar_url, created_at
		FROM accounts
		ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(&account.ID, &account.Username, &account.PasswordHash, &account.AvatarURL, &account.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// ReplaceAll overwrites the stored account list in a single transaction.
func (r *AccountRepository) ReplaceAll(ctx context.Context, accounts []models.Account) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM accounts`); err != nil {
		return err
	}
	for _, account := range accounts {
		_, err := tx.Exec(ctx, `
			INSERT INTO accounts (id, username, password_hash, avatar_url, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, account.ID, account.Username, account.PasswordHash, account.AvatarURL, account.CreatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *AccountRepository) UpdateAvatar(ctx context.Context, id, avatarURL string) error {
	tag, err := r.db.Exec(ctx, `UPDATE accounts SET avatar_url = $2 WHERE id = $1`, id, avatarURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
