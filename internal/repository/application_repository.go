package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nextstopchina/forms-api/internal/models"
)

// ApplicationRepository manages persistence for program applications.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository constructs an ApplicationRepository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts a new application, assigning id and timestamps.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	const query = `INSERT INTO applications (id, first_name, last_name, email, phone, nationality, date_of_birth,
        current_education, institution, gpa, graduation_year, field_of_study,
        degree_level, preferred_program, preferred_university, start_date,
        has_transcript, has_passport, has_language_test, has_recommendation,
        scholarship_interest, personal_statement, previous_experience,
        status, admin_notes, ip_address, user_agent, created_at, updated_at)
        VALUES (:id, :first_name, :last_name, :email, :phone, :nationality, :date_of_birth,
        :current_education, :institution, :gpa, :graduation_year, :field_of_study,
        :degree_level, :preferred_program, :preferred_university, :start_date,
        :has_transcript, :has_passport, :has_language_test, :has_recommendation,
        :scholarship_interest, :personal_statement, :previous_experience,
        :status, :admin_notes, :ip_address, :user_agent, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, app); err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

// List returns applications matching the provided filters, newest first.
func (r *ApplicationRepository) List(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.DegreeLevel != "" {
		conditions = append(conditions, fmt.Sprintf("degree_level = $%d", len(args)+1))
		args = append(args, filter.DegreeLevel)
	}

	where := strings.Join(conditions, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT id, first_name, last_name, email, phone, nationality, date_of_birth,
        current_education, institution, gpa, graduation_year, field_of_study,
        degree_level, preferred_program, preferred_university, start_date,
        has_transcript, has_passport, has_language_test, has_recommendation,
        scholarship_interest, personal_statement, previous_experience,
        status, admin_notes, ip_address, user_agent, created_at, updated_at
        FROM applications WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`, where, size, offset)

	var apps []models.Application
	if err := r.db.SelectContext(ctx, &apps, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM applications WHERE %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}
	return apps, total, nil
}
