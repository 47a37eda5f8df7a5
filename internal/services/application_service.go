package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"applytrack/internal/models"
)

// ApplicationInput carries the caller-supplied fields for a create or a
// full-field update. The owning user never comes from the input; it comes
// from the authenticated identity.
type ApplicationInput struct {
	Position   string
	Employment string
	Company    string
	Salary     int64
	Location   string
	Status     string
	Date       string
	Notes      string
}

// ApplicationServiceProvider defines the interface for application services.
type ApplicationServiceProvider interface {
	List(ctx context.Context, userID int64) ([]models.Application, error)
	Create(ctx context.Context, userID int64, in ApplicationInput) (models.Application, error)
	Update(ctx context.Context, id, userID int64, in ApplicationInput) (models.Application, error)
	Delete(ctx context.Context, id, userID int64) error
}

// ApplicationService provides CRUD over application records, always scoped
// to the authenticated owner.
type ApplicationService struct {
	db *sql.DB
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(db *sql.DB) *ApplicationService {
	return &ApplicationService{db: db}
}

const applicationColumns = `id, user_id, position, employment, company, salary, location, status, date, notes`

// List returns every application owned by userID.
func (s *ApplicationService) List(ctx context.Context, userID int64) ([]models.Application, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		var a models.Application
		if err := rows.Scan(&a.ID, &a.UserID, &a.Position, &a.Employment, &a.Company,
			&a.Salary, &a.Location, &a.Status, &a.Date, &a.Notes); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// Create validates the input and inserts a new application owned by userID.
func (s *ApplicationService) Create(ctx context.Context, userID int64, in ApplicationInput) (models.Application, error) {
	if err := validateInput(&in); err != nil {
		return models.Application{}, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO applications(user_id, position, employment, company, salary, location, status, date, notes)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, in.Position, in.Employment, in.Company, in.Salary, in.Location, in.Status, in.Date, in.Notes,
	)
	if err != nil {
		return models.Application{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Application{}, err
	}

	return models.Application{
		ID:         id,
		UserID:     userID,
		Position:   in.Position,
		Employment: in.Employment,
		Company:    in.Company,
		Salary:     in.Salary,
		Location:   in.Location,
		Status:     in.Status,
		Date:       in.Date,
		Notes:      in.Notes,
	}, nil
}

// Update replaces all mutable fields of the row identified by id. Ownership
// is part of the WHERE predicate, not a prior existence check, so a row
// owned by someone else behaves exactly like a row that does not exist.
func (s *ApplicationService) Update(ctx context.Context, id, userID int64, in ApplicationInput) (models.Application, error) {
	if err := validateInput(&in); err != nil {
		return models.Application{}, err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE applications
		 SET position = ?, employment = ?, company = ?, salary = ?, location = ?, status = ?, date = ?, notes = ?
		 WHERE id = ? AND user_id = ?`,
		in.Position, in.Employment, in.Company, in.Salary, in.Location, in.Status, in.Date, in.Notes,
		id, userID,
	)
	if err != nil {
		return models.Application{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Application{}, err
	}
	if affected == 0 {
		return models.Application{}, fmt.Errorf("%w: application %d", ErrNotFound, id)
	}

	return models.Application{
		ID:         id,
		UserID:     userID,
		Position:   in.Position,
		Employment: in.Employment,
		Company:    in.Company,
		Salary:     in.Salary,
		Location:   in.Location,
		Status:     in.Status,
		Date:       in.Date,
		Notes:      in.Notes,
	}, nil
}

// Delete removes the row identified by id if userID owns it. Deleting a row
// that is absent or not owned is a no-op, so the operation is idempotent.
func (s *ApplicationService) Delete(ctx context.Context, id, userID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM applications WHERE id = ? AND user_id = ?`, id, userID)
	return err
}

// validateInput rejects bad fields before anything reaches the database and
// normalizes the date for statuses where it carries no meaning. The date
// column is multiplexed by status (application deadline while applied,
// interview deadline while interviewing); once a row reaches offer or
// rejected the stored date would be ambiguous, so it is cleared.
func validateInput(in *ApplicationInput) error {
	if in.Position == "" {
		return fmt.Errorf("%w: position is required", ErrValidation)
	}
	if in.Company == "" {
		return fmt.Errorf("%w: company is required", ErrValidation)
	}
	if !models.ValidEmployment(in.Employment) {
		return fmt.Errorf("%w: invalid employment type %q", ErrValidation, in.Employment)
	}
	if !models.ValidStatus(in.Status) {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, in.Status)
	}
	if in.Salary < 0 {
		return fmt.Errorf("%w: salary must not be negative", ErrValidation)
	}
	if in.Date != "" {
		if _, err := time.Parse("2006-01-02", in.Date); err != nil {
			return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
		}
	}
	if in.Status == models.StatusOffer || in.Status == models.StatusRejected {
		in.Date = ""
	}
	return nil
}
