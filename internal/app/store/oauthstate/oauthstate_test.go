package oauthstate_test

import (
	"testing"
	"time"

	"github.com/forma-studio/forma/internal/app/store/oauthstate"
	"github.com/forma-studio/forma/internal/testutil"
)

func TestStore_SaveAndValidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Save(ctx, "test-state-123", "/admin/projects", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	returnURL, valid, err := store.Validate(ctx, "test-state-123")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !valid {
		t.Error("expected state to be valid")
	}
	if returnURL != "/admin/projects" {
		t.Errorf("returnURL: got %q, want %q", returnURL, "/admin/projects")
	}
}

func TestStore_Validate_SingleUse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Save(ctx, "single-use-state", "", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, valid, err := store.Validate(ctx, "single-use-state"); err != nil || !valid {
		t.Fatalf("first validation: valid=%v err=%v", valid, err)
	}
	if _, valid, err := store.Validate(ctx, "single-use-state"); err != nil || valid {
		t.Errorf("second validation should fail: valid=%v err=%v", valid, err)
	}
}

func TestStore_Validate_Expired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Save(ctx, "expired-state", "", time.Now().Add(-1*time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, valid, err := store.Validate(ctx, "expired-state"); err != nil || valid {
		t.Errorf("expired state should be invalid: valid=%v err=%v", valid, err)
	}
}

func TestStore_Validate_Unknown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, valid, err := store.Validate(ctx, "never-saved"); err != nil || valid {
		t.Errorf("unknown state should be invalid: valid=%v err=%v", valid, err)
	}
}

func TestStore_CleanupExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, s := range []string{"dead-a", "dead-b"} {
		if err := store.Save(ctx, s, "", time.Now().Add(-1*time.Minute)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}
	if err := store.Save(ctx, "alive", "", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	deleted, err := store.CleanupExpired(ctx)
	if err != nil {
		t.Fatalf("CleanupExpired failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted: got %d, want 2", deleted)
	}

	if _, valid, _ := store.Validate(ctx, "alive"); !valid {
		t.Error("unexpired state should survive cleanup")
	}
}
