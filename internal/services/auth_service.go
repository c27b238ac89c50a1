package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/NitishV2006/OneOrbit/internal/models"
	"github.com/NitishV2006/OneOrbit/internal/repository"
	"github.com/NitishV2006/OneOrbit/internal/seed"
	"github.com/NitishV2006/OneOrbit/pkg/utils"
)

var (
	// ErrInvalidCredentials is deliberately opaque: login failures never
	// say whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
)

type accountStore interface {
	Create(ctx context.Context, account *models.Account) error
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	ReplaceAll(ctx context.Context, accounts []models.Account) error
	UpdateAvatar(ctx context.Context, id, avatarURL string) error
}

type AuthService struct {
	accounts accountStore
	data     *UserDataService
	logger   *zap.Logger
}

func NewAuthService(accounts accountStore, data *UserDataService, logger *zap.Logger) *AuthService {
	return &AuthService{accounts: accounts, data: data, logger: logger}
}

// Login resolves credentials with a case-sensitive exact username match.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(password, account.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

// Signup creates the account and initializes a fresh data blob for it. A
// conflicting username leaves the stored account list untouched.
func (s *AuthService) Signup(ctx context.Context, candidate models.NewAccount) (*models.Account, error) {
	username := strings.TrimSpace(candidate.Username)
	if username == "" || candidate.Password == "" {
		return nil, ErrInvalidInput
	}

	passwordHash, err := utils.HashPassword(candidate.Password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		AvatarURL:    candidate.AvatarURL,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.data.Initialize(ctx, account.ID)
	return account, nil
}

// Resolve maps a session identity back to its account. A stale id (account
// gone) yields repository.ErrNotFound, which callers render as "no user".
func (s *AuthService) Resolve(ctx context.Context, userID string) (*models.Account, error) {
	return s.accounts.GetByID(ctx, userID)
}

func (s *AuthService) UpdateAvatar(ctx context.Context, userID, avatarURL string) (*models.Account, error) {
	if strings.TrimSpace(avatarURL) == "" {
		return nil, ErrInvalidInput
	}
	if err := s.accounts.UpdateAvatar(ctx, userID, avatarURL); err != nil {
		return nil, err
	}
	return s.accounts.GetByID(ctx, userID)
}

// SeedDemoAccounts installs the fixed demo account set when the store is
// empty, along with the demo user's starter blob.
func (s *AuthService) SeedDemoAccounts(ctx context.Context) error {
	existing, err := s.accounts.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	accounts, err := seed.DemoAccounts(utils.HashPassword)
	if err != nil {
		return err
	}
	if err := s.accounts.ReplaceAll(ctx, accounts); err != nil {
		return err
	}

	demoData := seed.DemoUserData()
	s.data.Replace(ctx, accounts[0].ID, &demoData)
	s.logger.Info("seeded demo accounts", zap.Int("count", len(accounts)))
	return nil
}
