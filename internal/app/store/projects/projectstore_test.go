package projectstore_test

import (
	"testing"

	projectstore "github.com/forma-studio/forma/internal/app/store/projects"
	"github.com/forma-studio/forma/internal/domain/models"
	"github.com/forma-studio/forma/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := models.Project{
		Title:    "Harbor House",
		Category: "residential",
	}

	created, err := store.Create(ctx, p)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Slug != "harbor-house" {
		t.Errorf("Slug: got %q, want %q", created.Slug, "harbor-house")
	}
	if created.TitleCI == "" {
		t.Error("expected TitleCI to be set")
	}
	if created.Status != "draft" {
		t.Errorf("expected default status 'draft', got %q", created.Status)
	}
	if created.Gallery == nil {
		t.Error("expected Gallery to be an empty array, not nil")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Create_ExplicitSlugKept(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Project{
		Title: "Harbor House",
		Slug:  "custom-slug",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Slug != "custom-slug" {
		t.Errorf("Slug: got %q, want %q", created.Slug, "custom-slug")
	}
}

func TestStore_Create_MissingTitle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.Project{Category: "residential"})
	if err == nil {
		t.Fatal("expected error for missing title")
	}
}

func TestStore_Create_InvalidStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.Project{Title: "Harbor House", Status: "archived"})
	if err == nil {
		t.Fatal("expected error for invalid status")
	}
}

func TestStore_Create_DuplicateSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Project{Title: "Harbor House"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := store.Create(ctx, models.Project{Title: "Harbor House"})
	if err != projectstore.ErrDuplicateSlug {
		t.Errorf("expected ErrDuplicateSlug, got %v", err)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Project{Title: "Harbor House", Category: "residential"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = store.Update(ctx, created.ID, models.Project{
		Title:    "Harbor House II",
		Category: "cultural",
		Gallery:  []string{"/files/a.jpg", "/files/b.jpg"},
		Status:   "published",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	found, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.Title != "Harbor House II" {
		t.Errorf("Title: got %q, want %q", found.Title, "Harbor House II")
	}
	if found.Slug != "harbor-house" {
		t.Errorf("slug should not be re-derived on update, got %q", found.Slug)
	}
	if found.Category != "cultural" {
		t.Errorf("Category: got %q, want %q", found.Category, "cultural")
	}
	if len(found.Gallery) != 2 {
		t.Errorf("Gallery: got %d entries, want 2", len(found.Gallery))
	}
	if found.Status != "published" {
		t.Errorf("Status: got %q, want %q", found.Status, "published")
	}
}

func TestStore_Update_NilGalleryUntouched(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Project{
		Title:   "Harbor House",
		Gallery: []string{"/files/a.jpg"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Update(ctx, created.ID, models.Project{Title: "Harbor House"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	found, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(found.Gallery) != 1 {
		t.Errorf("Gallery should be untouched by nil update, got %v", found.Gallery)
	}
}

func TestStore_GetBySlug_PublishedOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Project{Title: "Draft Project"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := store.GetBySlug(ctx, "draft-project", true); err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments for draft on public read, got %v", err)
	}
	if _, err := store.GetBySlug(ctx, "draft-project", false); err != nil {
		t.Errorf("admin read of draft should succeed, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Project{Title: "Harbor House"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	count, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 deleted, got %d", count)
	}

	if _, err := store.GetByID(ctx, created.ID); err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments after delete, got %v", err)
	}
}

func TestStore_PublishedPage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, p := range []models.Project{
		{Title: "Draft One"},
		{Title: "Live One", Status: "published", SortOrder: 2},
		{Title: "Live Two", Status: "published", SortOrder: 1},
		{Title: "Live Featured", Status: "published", Featured: true, SortOrder: 9},
	} {
		if _, err := store.Create(ctx, p); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	items, total, mode, err := store.PublishedPage(ctx, 0, 20, zap.NewNop())
	if err != nil {
		t.Fatalf("PublishedPage failed: %v", err)
	}
	if mode != projectstore.ModeFull {
		t.Errorf("mode: got %q, want %q", mode, projectstore.ModeFull)
	}
	if total != 3 {
		t.Errorf("total: got %d, want 3", total)
	}
	if len(items) != 3 {
		t.Fatalf("items: got %d, want 3", len(items))
	}
	if items[0].Title != "Live Featured" {
		t.Errorf("featured project should sort first, got %q", items[0].Title)
	}
	if items[1].Title != "Live Two" {
		t.Errorf("expected sort_order ordering after featured, got %q", items[1].Title)
	}
}
