package articlestore_test

import (
	"testing"

	articlestore "github.com/forma-studio/forma/internal/app/store/articles"
	"github.com/forma-studio/forma/internal/domain/models"
	"github.com/forma-studio/forma/internal/testutil"
)

func TestStore_Create_PublishedAtStamped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Article{
		Title:  "Concrete and Light",
		Status: "published",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.PublishedAt == nil {
		t.Error("expected PublishedAt to be stamped on publish")
	}
}

func TestStore_Create_DraftNotStamped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Article{Title: "Concrete and Light"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.PublishedAt != nil {
		t.Error("draft should not carry PublishedAt")
	}
}

func TestStore_Update_PublishStampsOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Article{Title: "Concrete and Light"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Update(ctx, created.ID, models.Article{Status: "published"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	first, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if first.PublishedAt == nil {
		t.Fatal("expected PublishedAt after publishing")
	}

	// Publishing again keeps the original timestamp.
	if err := store.Update(ctx, created.ID, models.Article{Status: "published", Excerpt: "edited"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	second, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !second.PublishedAt.Equal(*first.PublishedAt) {
		t.Errorf("PublishedAt changed on re-publish: %v vs %v", second.PublishedAt, first.PublishedAt)
	}
}

func TestStore_Create_DuplicateSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Article{Title: "Concrete and Light"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := store.Create(ctx, models.Article{Title: "Concrete and Light"})
	if err != articlestore.ErrDuplicateSlug {
		t.Errorf("expected ErrDuplicateSlug, got %v", err)
	}
}
