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

// SubscriptionRepository manages persistence for newsletter subscriptions.
// Uniqueness of the normalized email is enforced by a unique index; callers
// distinguish the duplicate case via database.IsUniqueViolation.
type SubscriptionRepository struct {
	db *sqlx.DB
}

// NewSubscriptionRepository constructs a SubscriptionRepository.
func NewSubscriptionRepository(db *sqlx.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Create inserts a new subscription, assigning id and timestamps.
func (r *SubscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	const query = `INSERT INTO newsletter_subscriptions (id, email, status, source, ip_address, user_agent, unsubscribed_at, last_email_sent, created_at, updated_at)
        VALUES (:id, :email, :status, :source, :ip_address, :user_agent, :unsubscribed_at, :last_email_sent, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, sub); err != nil {
		return fmt.Errorf("create subscription: %w", err)
	}
	return nil
}

// FindByEmail looks up a subscription by its normalized email, applying the
// same trim+lowercase normalization used at write time. Returns
// sql.ErrNoRows when no record exists.
func (r *SubscriptionRepository) FindByEmail(ctx context.Context, email string) (*models.Subscription, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	const query = `SELECT id, email, status, source, ip_address, user_agent, unsubscribed_at, last_email_sent, created_at, updated_at
        FROM newsletter_subscriptions WHERE email = $1`
	var sub models.Subscription
	if err := r.db.GetContext(ctx, &sub, query, normalized); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Update persists state transitions on an existing subscription.
func (r *SubscriptionRepository) Update(ctx context.Context, sub *models.Subscription) error {
	sub.UpdatedAt = time.Now().UTC()
	const query = `UPDATE newsletter_subscriptions SET status = :status, source = :source, unsubscribed_at = :unsubscribed_at, last_email_sent = :last_email_sent, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, sub); err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	return nil
}

// List returns subscriptions matching the provided filters, newest first.
func (r *SubscriptionRepository) List(ctx context.Context, filter models.SubscriptionFilter) ([]models.Subscription, int, error) {
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

	query := fmt.Sprintf(`SELECT id, email, status, source, ip_address, user_agent, unsubscribed_at, last_email_sent, created_at, updated_at
        FROM newsletter_subscriptions WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`, where, size, offset)

	var subs []models.Subscription
	if err := r.db.SelectContext(ctx, &subs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list subscriptions: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM newsletter_subscriptions WHERE %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count subscriptions: %w", err)
	}
	return subs, total, nil
}
