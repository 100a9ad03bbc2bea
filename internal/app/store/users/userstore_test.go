package userstore_test

import (
	"testing"

	userstore "github.com/forma-studio/forma/internal/app/store/users"
	"github.com/forma-studio/forma/internal/app/system/auth"
	"github.com/forma-studio/forma/internal/domain/models"
	"github.com/forma-studio/forma/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName: "Ada Example",
		Email:    "Ada@Example.COM",
		Role:     "editor",
	}, "s3cret-password")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.Email != "ada@example.com" {
		t.Errorf("email should be normalized, got %q", created.Email)
	}
	if created.Status != "active" {
		t.Errorf("expected default status 'active', got %q", created.Status)
	}
	if created.PasswordHash == "" || created.PasswordHash == "s3cret-password" {
		t.Error("password should be stored as a bcrypt hash")
	}
}

func TestStore_Create_BadRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.User{
		FullName: "Ada Example",
		Email:    "ada@example.com",
		Role:     "owner",
	}, "")
	if err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := models.User{FullName: "Ada Example", Email: "ada@example.com", Role: "editor"}
	if _, err := store.Create(ctx, u, ""); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := store.Create(ctx, models.User{FullName: "Other", Email: "ADA@example.com", Role: "viewer"}, "")
	if err != userstore.ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_Authenticate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName: "Ada Example",
		Email:    "ada@example.com",
		Role:     "admin",
	}, "correct-horse")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	u, err := store.Authenticate(ctx, "ada@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if u.ID != created.ID {
		t.Errorf("wrong user returned")
	}

	if _, err := store.Authenticate(ctx, "ada@example.com", "wrong"); err != userstore.ErrInvalidCredentials {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := store.Authenticate(ctx, "nobody@example.com", "correct-horse"); err != userstore.ErrInvalidCredentials {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestStore_Authenticate_Disabled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName: "Ada Example",
		Email:    "ada@example.com",
		Role:     "admin",
	}, "correct-horse")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = store.Update(ctx, created.ID, userstore.AccountUpdate{
		FullName: created.FullName,
		Email:    created.Email,
		Role:     created.Role,
		Status:   "disabled",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if _, err := store.Authenticate(ctx, "ada@example.com", "correct-horse"); err != userstore.ErrInvalidCredentials {
		t.Errorf("disabled account: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestStore_EnsureSuperAdmin_CreatesAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureSuperAdmin(ctx, "Owner@Example.com"); err != nil {
		t.Fatalf("EnsureSuperAdmin failed: %v", err)
	}

	u, err := store.GetByEmail(ctx, "owner@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if u.Role != "superadmin" {
		t.Errorf("role: got %q, want superadmin", u.Role)
	}
	if u.PasswordHash != "" {
		t.Error("bootstrap account should have no password")
	}
}

func TestStore_EnsureSuperAdmin_PromotesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{
		FullName: "Ada Example",
		Email:    "ada@example.com",
		Role:     "viewer",
	}, ""); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.EnsureSuperAdmin(ctx, "ada@example.com"); err != nil {
		t.Fatalf("EnsureSuperAdmin failed: %v", err)
	}

	u, err := store.GetByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if u.Role != "superadmin" {
		t.Errorf("role: got %q, want superadmin", u.Role)
	}
}

func TestFetcher_FetchByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fetcher := userstore.NewFetcher(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName: "Ada Example",
		Email:    "ada@example.com",
		Role:     "editor",
	}, "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	ident, err := fetcher.FetchByID(ctx, created.ID.Hex())
	if err != nil {
		t.Fatalf("FetchByID failed: %v", err)
	}
	if ident.Role != "editor" || ident.Email != "ada@example.com" {
		t.Errorf("unexpected identity: %+v", ident)
	}
	if ident.Degraded {
		t.Error("identity should not be degraded")
	}
}

func TestFetcher_FetchByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fetcher := userstore.NewFetcher(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := fetcher.FetchByID(ctx, "656565656565656565656565"); err != auth.ErrUserNotFound {
		t.Errorf("expected auth.ErrUserNotFound, got %v", err)
	}
	if _, err := fetcher.FetchByID(ctx, "not-an-object-id"); err != auth.ErrUserNotFound {
		t.Errorf("malformed id: expected auth.ErrUserNotFound, got %v", err)
	}
}

func TestFetcher_FetchByID_Disabled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fetcher := userstore.NewFetcher(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName: "Ada Example",
		Email:    "ada@example.com",
		Role:     "editor",
		Status:   "disabled",
	}, "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := fetcher.FetchByID(ctx, created.ID.Hex()); err != auth.ErrUserNotFound {
		t.Errorf("disabled account: expected auth.ErrUserNotFound, got %v", err)
	}
}
