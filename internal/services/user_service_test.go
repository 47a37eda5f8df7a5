package services_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"applytrack/internal/database"
	"applytrack/internal/models"
	"applytrack/internal/services"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// A single connection keeps the in-memory database alive and shared.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestRegisterCreatesUserAndSeededApplication(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewUserService(db)
	ctx := context.Background()

	user, err := svc.Register(ctx, "A", "B", "a@b.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID <= 0 {
		t.Fatalf("expected a positive user id, got %d", user.ID)
	}
	if user.PasswordHash != "" {
		t.Fatal("register must not return the password hash")
	}

	apps, err := services.NewApplicationService(db).List(ctx, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("expected exactly one seeded application, got %d", len(apps))
	}
	seed := apps[0]
	if seed.Position != services.SeedPosition {
		t.Fatalf("unexpected seed position: %q", seed.Position)
	}
	if seed.Status != models.StatusApplied {
		t.Fatalf("unexpected seed status: %q", seed.Status)
	}
	if seed.Date != services.SeedDate {
		t.Fatalf("unexpected seed date: %q", seed.Date)
	}
	if seed.Employment != models.EmploymentFullTime || seed.Company != "" || seed.Salary != 0 || seed.Location != "" {
		t.Fatalf("unexpected seed row: %+v", seed)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := services.NewUserService(newTestDB(t))
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", "B", "a@b.com", "secret1", "secret1"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing first name, got %v", err)
	}
	if _, err := svc.Register(ctx, "A", "B", "a@b.com", "secret1", "different"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation for mismatched passwords, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewUserService(db)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "A", "B", "dup@b.com", "secret1", "secret1"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, "C", "D", "dup@b.com", "secret2", "secret2")
	if !errors.Is(err, services.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// The failed attempt must leave nothing behind.
	var users int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, "dup@b.com").Scan(&users); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if users != 1 {
		t.Fatalf("expected 1 user row, got %d", users)
	}
	var apps int
	if err := db.QueryRow(`SELECT COUNT(*) FROM applications`).Scan(&apps); err != nil {
		t.Fatalf("count applications: %v", err)
	}
	if apps != 1 {
		t.Fatalf("expected 1 application row, got %d", apps)
	}
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewUserService(db)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "A", "B", "a@b.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.Authenticate(ctx, "a@b.com", "secret1")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected user id %d, got %d", registered.ID, user.ID)
	}
	if user.PasswordHash != "" {
		t.Fatal("authenticate must not return the password hash")
	}

	if _, err := svc.Authenticate(ctx, "a@b.com", "wrong"); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@b.com", "secret1"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetUserByID(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewUserService(db)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "A", "B", "a@b.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.GetUserByID(ctx, registered.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if user.Email != "a@b.com" || user.FirstName != "A" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.GetUserByID(ctx, 9999); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
