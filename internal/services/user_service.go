package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"applytrack/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the original deployment; bumping it invalidates no
// existing hashes, bcrypt embeds the cost per hash.
const bcryptCost = 8

// Seed values for the application row created alongside every new user,
// so a fresh account never sees an empty board.
const (
	SeedPosition = "Hello add your first application"
	SeedDate     = "2025-01-01"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, firstName, lastName, email, password, confirm string) (models.User, error)
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	GetUserByID(ctx context.Context, id int64) (models.User, error)
}

// UserService provides registration and credential verification.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new user and, in the same transaction, the user's
// seeded first application. If the seed insert fails the user insert rolls
// back; a half-registered account must never exist.
func (s *UserService) Register(ctx context.Context, firstName, lastName, email, password, confirm string) (models.User, error) {
	if firstName == "" || lastName == "" || email == "" || password == "" || confirm == "" {
		return models.User{}, fmt.Errorf("%w: missing required fields", ErrValidation)
	}
	if password != confirm {
		return models.User{}, fmt.Errorf("%w: passwords do not match", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.User{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO users(first_name, last_name, email, password_hash) VALUES(?, ?, ?, ?)`,
		firstName, lastName, email, string(hash),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return models.User{}, err
	}
	userID, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO applications(user_id, position, employment, company, salary, location, status, date)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, SeedPosition, models.EmploymentFullTime, "", 0, "", models.StatusApplied, SeedDate,
	)
	if err != nil {
		return models.User{}, fmt.Errorf("seed application: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, err
	}
	committed = true

	return models.User{
		ID:        userID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}, nil
}

// Authenticate verifies a user's credentials. An unknown email and a wrong
// password are distinct failures, matching the API contract.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: missing email or password", ErrValidation)
	}

	var user models.User
	row := s.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, password_hash FROM users WHERE email = ?`, email)
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("%w: no user with that email", ErrNotFound)
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email FROM users WHERE id = ?`, id)
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return models.User{}, err
	}
	return user, nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
