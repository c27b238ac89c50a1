package services

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/NitishV2006/OneOrbit/internal/models"
	"github.com/NitishV2006/OneOrbit/internal/repository"
	"github.com/NitishV2006/OneOrbit/internal/seed"
)

func newTestAuthService() (*AuthService, *repository.MemoryStore) {
	store := repository.NewMemoryStore()
	data := NewUserDataService(store, zap.NewNop())
	return NewAuthService(store, data, zap.NewNop()), store
}

func TestSignupAndLogin(t *testing.T) {
	service, _ := newTestAuthService()
	ctx := context.Background()

	account, err := service.Signup(ctx, models.NewAccount{Username: "sam", Password: "hunter2"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if account.ID == "" {
		t.Fatal("expected generated account id")
	}
	if account.PasswordHash == "hunter2" {
		t.Fatal("password must not be stored in the clear")
	}

	logged, err := service.Login(ctx, "sam", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.ID != account.ID {
		t.Fatalf("expected account %s, got %s", account.ID, logged.ID)
	}
}

func TestLoginFailureIsOpaque(t *testing.T) {
	service, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := service.Signup(ctx, models.NewAccount{Username: "sam", Password: "hunter2"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	_, wrongPassword := service.Login(ctx, "sam", "wrong")
	_, unknownUser := service.Login(ctx, "nobody", "hunter2")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPassword)
	}
	if !errors.Is(unknownUser, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", unknownUser)
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Fatal("login failures must not reveal which part was wrong")
	}
}

func TestSignupConflictLeavesAccountsUnchanged(t *testing.T) {
	service, store := newTestAuthService()
	ctx := context.Background()

	if _, err := service.Signup(ctx, models.NewAccount{Username: "sam", Password: "one"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	before, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	_, err = service.Signup(ctx, models.NewAccount{Username: "sam", Password: "two"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	after, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("conflicting signup changed the account list: %d -> %d", len(before), len(after))
	}
}

func TestSignupRejectsBlankFields(t *testing.T) {
	service, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := service.Signup(ctx, models.NewAccount{Username: "  ", Password: "x"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank username, got %v", err)
	}
	if _, err := service.Signup(ctx, models.NewAccount{Username: "sam", Password: ""}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty password, got %v", err)
	}
}

func TestSignupInitializesUserData(t *testing.T) {
	service, store := newTestAuthService()
	ctx := context.Background()

	account, err := service.Signup(ctx, models.NewAccount{Username: "sam", Password: "hunter2"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	data, err := store.Get(ctx, account.ID)
	if err != nil {
		t.Fatalf("expected blob for new account, got %v", err)
	}
	if data.SchemaVersion != models.UserDataSchemaVersion {
		t.Fatalf("expected current schema version, got %d", data.SchemaVersion)
	}
}

func TestResolveStaleIdentity(t *testing.T) {
	service, _ := newTestAuthService()

	_, err := service.Resolve(context.Background(), "gone")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for stale identity, got %v", err)
	}
}

func TestSeedDemoAccountsOnlyWhenEmpty(t *testing.T) {
	service, store := newTestAuthService()
	ctx := context.Background()

	if err := service.SeedDemoAccounts(ctx); err != nil {
		t.Fatalf("SeedDemoAccounts: %v", err)
	}

	accounts, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(accounts) == 0 {
		t.Fatal("expected seeded accounts")
	}

	// Seeded demo accounts share the demo password.
	if _, err := service.Login(ctx, "demo", seed.DemoPassword); err != nil {
		t.Fatalf("demo login: %v", err)
	}

	// The demo account carries the starter blob.
	data, err := store.Get(ctx, accounts[0].ID)
	if err != nil {
		t.Fatalf("demo blob: %v", err)
	}
	if len(data.Tasks) == 0 || len(data.TrioMembers) == 0 {
		t.Fatalf("expected starter blob for demo account, got %+v", data)
	}

	// Seeding again must not wipe user state.
	if _, err := service.Signup(ctx, models.NewAccount{Username: "sam", Password: "x"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if err := service.SeedDemoAccounts(ctx); err != nil {
		t.Fatalf("SeedDemoAccounts again: %v", err)
	}
	after, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(after) != len(accounts)+1 {
		t.Fatalf("re-seeding changed accounts: %d -> %d", len(accounts)+1, len(after))
	}
}
