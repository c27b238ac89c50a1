package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/NitishV2006/OneOrbit/internal/models"
)

// MemoryStore is a mutex-guarded in-memory implementation of the account and
// user-data stores. It backs development mode (no DB_URL) and unit tests.
// Blobs are deep-copied on the way in and out so callers never share state
// with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts []models.Account
	userData map[string]*models.UserData
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: []models.Account{},
		userData: make(map[string]*models.UserData),
	}
}

func (s *MemoryStore) Create(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.Username == account.Username {
			return ErrDuplicateUsername
		}
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	s.accounts = append(s.accounts, *account)
	return nil
}

func (s *MemoryStore) GetByUsername(_ context.Context, username string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, account := range s.accounts {
		if account.Username == username {
			found := account
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetByID(_ context.Context, id string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, account := range s.accounts {
		if account.ID == id {
			found := account
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) List(_ context.Context) ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]models.Account, len(s.accounts))
	copy(accounts, s.accounts)
	return accounts, nil
}

func (s *MemoryStore) ReplaceAll(_ context.Context, accounts []models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = make([]models.Account, len(accounts))
	copy(s.accounts, accounts)
	return nil
}

func (s *MemoryStore) UpdateAvatar(_ context.Context, id, avatarURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.accounts {
		if s.accounts[i].ID == id {
			s.accounts[i].AvatarURL = avatarURL
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) Get(_ context.Context, userID string) (*models.UserData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.userData[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUserData(data)
}

func (s *MemoryStore) Replace(_ context.Context, userID string, data *models.UserData) error {
	clone, err := cloneUserData(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.userData[userID] = clone
	return nil
}

func cloneUserData(data *models.UserData) (*models.UserData, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var clone models.UserData
	if err := json.Unmarshal(raw, &clone); err != nil {
		return nil, err
	}
	return &clone, nil
}
