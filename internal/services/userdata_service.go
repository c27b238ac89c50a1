package services

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/NitishV2006/OneOrbit/internal/models"
	"github.com/NitishV2006/OneOrbit/internal/repository"
	"github.com/NitishV2006/OneOrbit/internal/seed"
)

var ErrInvalidInput = errors.New("invalid input")

type dataStore interface {
	Get(ctx context.Context, userID string) (*models.UserData, error)
	Replace(ctx context.Context, userID string, data *models.UserData) error
}

// UserDataService owns the per-user blob. Every mutation goes through
// Update, which holds a per-user lock around load-modify-replace so
// deferred writers (simulated trio replies) always append to the latest
// state instead of clobbering it.
type UserDataService struct {
	store  dataStore
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewUserDataService(store dataStore, logger *zap.Logger) *UserDataService {
	return &UserDataService{
		store:  store,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Load returns the user's blob, seeding the template blob first if nothing
// is stored yet (initialize-on-read). Blobs written by older versions are
// migrated before being handed to the caller.
func (s *UserDataService) Load(ctx context.Context, userID string) (*models.UserData, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	data, err := s.store.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		template := seed.TemplateUserData()
		if err := s.store.Replace(ctx, userID, &template); err != nil {
			s.logger.Error("seed user data failed", zap.String("user_id", userID), zap.Error(err))
		}
		return &template, nil
	}
	if err != nil {
		// A transient read failure must never be mistaken for a fresh
		// account: seeding here would overwrite the stored blob.
		s.logger.Error("load user data failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	if MigrateUserData(data) {
		if err := s.store.Replace(ctx, userID, data); err != nil {
			s.logger.Error("persist migrated user data failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return data, nil
}

// Replace overwrites the stored blob unconditionally. Storage failures are
// logged and swallowed: the worst case is an unsaved state, never a failed
// request.
func (s *UserDataService) Replace(ctx context.Context, userID string, data *models.UserData) {
	data.SchemaVersion = models.UserDataSchemaVersion
	if err := s.store.Replace(ctx, userID, data); err != nil {
		s.logger.Error("replace user data failed", zap.String("user_id", userID), zap.Error(err))
	}
}

// Update applies mutate to the latest stored blob and persists the result.
// The returned blob reflects the mutation even when persistence failed.
func (s *UserDataService) Update(ctx context.Context, userID string, mutate func(*models.UserData) error) (*models.UserData, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	data, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := mutate(data); err != nil {
		return nil, err
	}

	s.Replace(ctx, userID, data)
	return data, nil
}

// Initialize writes a fresh template blob for a new account.
func (s *UserDataService) Initialize(ctx context.Context, userID string) {
	template := seed.TemplateUserData()
	s.Replace(ctx, userID, &template)
}

func (s *UserDataService) lockFor(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// MigrateUserData upgrades a blob written by an older schema version in
// place and reports whether anything changed. Version 1 blobs predate the
// social-accountability fields.
func MigrateUserData(data *models.UserData) bool {
	changed := false

	if data.SchemaVersion < models.UserDataSchemaVersion {
		if data.TrioMembers == nil {
			data.TrioMembers = []models.TrioMember{}
		}
		if data.CheckIns == nil {
			data.CheckIns = []models.CheckIn{}
		}
		data.SchemaVersion = models.UserDataSchemaVersion
		changed = true
	}

	if data.Tasks == nil {
		data.Tasks = []models.Task{}
		changed = true
	}
	if data.LearningItems == nil {
		data.LearningItems = []models.LearningItem{}
		changed = true
	}
	if data.StudySessions == nil {
		data.StudySessions = []models.StudySession{}
		changed = true
	}
	if data.Expenses == nil {
		data.Expenses = []models.Expense{}
		changed = true
	}
	if data.HealthLogs == nil {
		data.HealthLogs = map[string]models.HealthLog{}
		changed = true
	}
	if data.Reflections == nil {
		data.Reflections = []models.Reflection{}
		changed = true
	}
	if data.Profile.Skills == nil {
		data.Profile.Skills = []string{}
		changed = true
	}
	if data.Profile.Projects == nil {
		data.Profile.Projects = []models.Project{}
		changed = true
	}

	return changed
}
