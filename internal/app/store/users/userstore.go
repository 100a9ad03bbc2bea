package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/forma-studio/forma/internal/app/system/authz"
	"github.com/forma-studio/forma/internal/app/system/normalize"
	"github.com/forma-studio/forma/internal/app/system/status"
	"github.com/forma-studio/forma/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c *mongo.Collection
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrInvalidCredentials is returned by Authenticate for a wrong email or password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	errBadRole   = mongo.CommandError{Message: `role must be "superadmin", "admin", "editor" or "viewer"`}
	errBadStatus = mongo.CommandError{Message: `status must be "active" or "disabled"`}
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing and validating fields.
// Password is the plaintext password; empty means Google-only sign-in.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)
	if u.Status == "" {
		u.Status = status.Active
	}

	if !authz.IsValidRole(u.Role) {
		return models.User{}, errBadRole
	}
	if !status.IsValidAccount(u.Status) {
		return models.User{}, errBadStatus
	}
	if u.Email == "" {
		return models.User{}, mongo.CommandError{Message: "email is required"}
	}
	if u.FullName == "" {
		return models.User{}, mongo.CommandError{Message: "full_name is required"}
	}

	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		u.PasswordHash = string(hash)
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// AccountUpdate holds the fields that can be updated on a user.
// Password, when non-empty, replaces the stored hash.
type AccountUpdate struct {
	FullName string
	Email    string
	Role     string
	Status   string
	Password string
}

// Update modifies an account. Returns ErrDuplicateEmail when the email
// already belongs to another user.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd AccountUpdate) error {
	if !authz.IsValidRole(upd.Role) {
		return errBadRole
	}
	if !status.IsValidAccount(upd.Status) {
		return errBadStatus
	}

	set := bson.M{
		"full_name":    normalize.Name(upd.FullName),
		"full_name_ci": text.Fold(upd.FullName),
		"email":        normalize.Email(upd.Email),
		"role":         upd.Role,
		"status":       upd.Status,
		"updated_at":   time.Now(),
	}
	if upd.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		set["password_hash"] = string(hash)
	}

	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// Delete removes a user by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Authenticate checks an email/password pair against the stored hash.
// Disabled accounts and accounts without a password hash fail with
// ErrInvalidCredentials, the same error as a wrong password.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if u.Status != status.Active || u.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// TouchLastLogin records a successful sign-in time.
func (s *Store) TouchLastLogin(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"last_login_at": now}})
	return err
}

// EnsureSuperAdmin promotes the account with the given email to
// superadmin, creating a passwordless (Google-only) account if none
// exists. Called at startup so the deploy always has an owner.
func (s *Store) EnsureSuperAdmin(ctx context.Context, email string) error {
	email = normalize.Email(email)
	if email == "" {
		return nil
	}

	u, err := s.GetByEmail(ctx, email)
	if err == nil {
		if u.Role == authz.RoleSuperAdmin {
			return nil
		}
		_, err = s.c.UpdateByID(ctx, u.ID, bson.M{"$set": bson.M{"role": authz.RoleSuperAdmin, "updated_at": time.Now()}})
		return err
	}
	if err != mongo.ErrNoDocuments {
		return err
	}

	_, err = s.Create(ctx, models.User{
		FullName: email,
		Email:    email,
		Role:     authz.RoleSuperAdmin,
		Status:   status.Active,
	}, "")
	if err == ErrDuplicateEmail {
		// Lost a race with another instance; the account exists now.
		return nil
	}
	return err
}

// Find returns users matching the given filter.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.User, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of users matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
