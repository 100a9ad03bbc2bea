package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/forma-studio/forma/internal/app/system/slug"
	"github.com/forma-studio/forma/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateProject inserts a test project with the given title and status.
func (f *Fixtures) CreateProject(ctx context.Context, title, status string) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Project{
		ID:        primitive.NewObjectID(),
		Title:     title,
		TitleCI:   text.Fold(title),
		Slug:      slug.Derive(title),
		Gallery:   []string{},
		Status:    status,
		CreatedAt: now,
		UpdatedAt: &now,
	}
	if _, err := f.db.Collection("projects").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}
	return p
}

// CreateTeamMember inserts a test team member.
func (f *Fixtures) CreateTeamMember(ctx context.Context, name, status string) models.TeamMember {
	f.t.Helper()

	now := time.Now().UTC()
	m := models.TeamMember{
		ID:              primitive.NewObjectID(),
		Name:            name,
		NameCI:          text.Fold(name),
		Slug:            slug.Derive(name),
		Specializations: []string{},
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       &now,
	}
	if _, err := f.db.Collection("team_members").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test team member: %v", err)
	}
	return m
}

// CreateJobOpening inserts a test job opening with list fields.
func (f *Fixtures) CreateJobOpening(ctx context.Context, title, department, status string, requirements []string) models.JobOpening {
	f.t.Helper()

	if requirements == nil {
		requirements = []string{}
	}
	now := time.Now().UTC()
	j := models.JobOpening{
		ID:               primitive.NewObjectID(),
		Title:            title,
		TitleCI:          text.Fold(title),
		Slug:             slug.Derive(title),
		Department:       department,
		Requirements:     requirements,
		Responsibilities: []string{},
		Benefits:         []string{},
		Status:           status,
		CreatedAt:        now,
		UpdatedAt:        &now,
	}
	if _, err := f.db.Collection("job_openings").InsertOne(ctx, j); err != nil {
		f.t.Fatalf("failed to create test job opening: %v", err)
	}
	return j
}

// CreateArticle inserts a test article.
func (f *Fixtures) CreateArticle(ctx context.Context, title, status string) models.Article {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Article{
		ID:        primitive.NewObjectID(),
		Title:     title,
		TitleCI:   text.Fold(title),
		Slug:      slug.Derive(title),
		Tags:      []string{},
		Status:    status,
		CreatedAt: now,
		UpdatedAt: &now,
	}
	if status == "published" {
		a.PublishedAt = &now
	}
	if _, err := f.db.Collection("articles").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test article: %v", err)
	}
	return a
}

// CreateUser inserts a test admin-panel user with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		Role:       role,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}
