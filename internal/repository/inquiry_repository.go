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

// InquiryRepository manages persistence for contact inquiries.
type InquiryRepository struct {
	db *sqlx.DB
}

// NewInquiryRepository constructs an InquiryRepository.
func NewInquiryRepository(db *sqlx.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

// Create inserts a new inquiry, assigning id and timestamps.
func (r *InquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	if inquiry.ID == "" {
		inquiry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	inquiry.CreatedAt = now
	inquiry.UpdatedAt = now
	const query = `INSERT INTO inquiries (id, first_name, last_name, email, phone, country, program, message, status, admin_notes, ip_address, user_agent, created_at, updated_at)
        VALUES (:id, :first_name, :last_name, :email, :phone, :country, :program, :message, :status, :admin_notes, :ip_address, :user_agent, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, inquiry); err != nil {
		return fmt.Errorf("create inquiry: %w", err)
	}
	return nil
}

// List returns inquiries matching the provided filters, newest first.
func (r *InquiryRepository) List(ctx context.Context, filter models.InquiryFilter) ([]models.Inquiry, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
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

	query := fmt.Sprintf(`SELECT id, first_name, last_name, email, phone, country, program, message, status, admin_notes, ip_address, user_agent, created_at, updated_at
        FROM inquiries WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`, where, size, offset)

	var inquiries []models.Inquiry
	if err := r.db.SelectContext(ctx, &inquiries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list inquiries: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM inquiries WHERE %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count inquiries: %w", err)
	}
	return inquiries, total, nil
}
