package careerstore_test

import (
	"testing"

	careerstore "github.com/forma-studio/forma/internal/app/store/careers"
	"github.com/forma-studio/forma/internal/domain/models"
	"github.com/forma-studio/forma/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := careerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	j := models.JobOpening{
		Title:            "DevOps Engineer",
		Department:       "Engineering",
		Responsibilities: []string{"Manage CI/CD"},
	}

	created, err := store.Create(ctx, j)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.Slug != "devops-engineer" {
		t.Errorf("Slug: got %q, want %q", created.Slug, "devops-engineer")
	}
	if created.Requirements == nil {
		t.Error("Requirements should be an empty array, not nil")
	}
	if len(created.Responsibilities) != 1 || created.Responsibilities[0] != "Manage CI/CD" {
		t.Errorf("Responsibilities: got %v", created.Responsibilities)
	}
	if created.Benefits == nil {
		t.Error("Benefits should be an empty array, not nil")
	}
}

func TestStore_Create_MissingDepartment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := careerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.JobOpening{Title: "DevOps Engineer"})
	if err == nil {
		t.Fatal("expected error for missing department")
	}
}

func TestStore_Create_DuplicateSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := careerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.JobOpening{Title: "DevOps Engineer", Department: "Engineering"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := store.Create(ctx, models.JobOpening{Title: "DevOps Engineer", Department: "Platform"})
	if err != careerstore.ErrDuplicateSlug {
		t.Errorf("expected ErrDuplicateSlug, got %v", err)
	}
}

func TestStore_Update_ListFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := careerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.JobOpening{
		Title:        "DevOps Engineer",
		Department:   "Engineering",
		Requirements: []string{"5 years experience"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Nil list leaves stored values untouched; non-nil replaces.
	err = store.Update(ctx, created.ID, models.JobOpening{
		Benefits: []string{"Remote work"},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	found, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(found.Requirements) != 1 {
		t.Errorf("Requirements should be untouched, got %v", found.Requirements)
	}
	if len(found.Benefits) != 1 || found.Benefits[0] != "Remote work" {
		t.Errorf("Benefits: got %v", found.Benefits)
	}

	// Empty non-nil list clears.
	if err := store.Update(ctx, created.ID, models.JobOpening{Requirements: []string{}}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	found, err = store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(found.Requirements) != 0 {
		t.Errorf("Requirements should be cleared, got %v", found.Requirements)
	}
}

func TestStore_GetBySlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := careerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.JobOpening{
		Title:      "Senior Architect",
		Department: "Design",
		Status:     "published",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := store.GetBySlug(ctx, "senior-architect", true)
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if found.Title != "Senior Architect" {
		t.Errorf("Title: got %q", found.Title)
	}

	if _, err := store.GetBySlug(ctx, "no-such-role", true); err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}
