package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nextstopchina/forms-api/internal/models"
	"github.com/nextstopchina/forms-api/pkg/database"
	appErrors "github.com/nextstopchina/forms-api/pkg/errors"
	"github.com/nextstopchina/forms-api/pkg/response"
)

type subscriptionRepository interface {
	Create(ctx context.Context, sub *models.Subscription) error
	FindByEmail(ctx context.Context, email string) (*models.Subscription, error)
	Update(ctx context.Context, sub *models.Subscription) error
	List(ctx context.Context, filter models.SubscriptionFilter) ([]models.Subscription, int, error)
}

// Subscribe outcomes exposed in the response envelope.
const (
	OutcomeSubscribed        = "subscribed"
	OutcomeAlreadySubscribed = "already_subscribed"
	OutcomeResubscribed      = "resubscribed"
	OutcomeUnsubscribed      = "unsubscribed"
	OutcomeAlreadyInactive   = "already_unsubscribed"
)

// SubscribeRequest is the newsletter signup payload.
type SubscribeRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Source string `json:"source" validate:"omitempty,oneof=homepage contact_page apply_page other"`
}

// UnsubscribeRequest removes an address from the newsletter.
type UnsubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SubscribeResult pairs the resulting record with the lifecycle outcome.
type SubscribeResult struct {
	Outcome      string
	Subscription *models.Subscription
}

// NewsletterService implements the subscription lifecycle: active and
// unsubscribed flip back and forth through the public flows, bounced is
// terminal and never re-entered from here.
type NewsletterService struct {
	repo      subscriptionRepository
	notifier  *NotificationService
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	now       func() time.Time
}

// NewNewsletterService constructs the newsletter service.
func NewNewsletterService(repo subscriptionRepository, notifier *NotificationService, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *NewsletterService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NewsletterService{
		repo:      repo,
		notifier:  notifier,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Subscribe creates, reactivates or confirms a subscription for the
// normalized email. Subscribing an already-active address is idempotent.
func (s *NewsletterService) Subscribe(ctx context.Context, req SubscribeRequest, meta CaptureMeta) (*SubscribeResult, error) {
	req.Email = normalizeEmail(req.Email)
	req.Source = strings.TrimSpace(req.Source)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	source := req.Source
	if source == "" {
		source = models.SubscriptionSourceHomepage
	}

	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to subscribe to newsletter")
	}

	if existing != nil {
		switch existing.Status {
		case models.SubscriptionStatusActive:
			// Idempotent: no mutation, no email.
			return &SubscribeResult{Outcome: OutcomeAlreadySubscribed, Subscription: existing}, nil

		case models.SubscriptionStatusUnsubscribed:
			now := s.now().UTC()
			existing.Status = models.SubscriptionStatusActive
			existing.Source = source
			existing.UnsubscribedAt = nil
			existing.LastEmailSent = &now
			if err := s.repo.Update(ctx, existing); err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to subscribe to newsletter")
			}
			s.metrics.FormSubmitted("newsletter")
			s.logger.Info("subscription_reactivated", zap.String("email", existing.Email))
			s.notifier.NotifySubscription(ctx, existing)
			return &SubscribeResult{Outcome: OutcomeResubscribed, Subscription: existing}, nil

		default:
			// Bounced (or any unexpected stored status) stays untouched;
			// re-subscribing a suppressed address is a conflict.
			return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "This email is already subscribed")
		}
	}

	now := s.now().UTC()
	sub := &models.Subscription{
		Email:         req.Email,
		Status:        models.SubscriptionStatusActive,
		Source:        source,
		IPAddress:     meta.IPAddress,
		UserAgent:     meta.UserAgent,
		LastEmailSent: &now,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		// Concurrent subscribe for the same email: the store's unique index
		// decides the winner, the loser surfaces as a duplicate.
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "This email is already subscribed")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to subscribe to newsletter")
	}

	s.metrics.FormSubmitted("newsletter")
	s.logger.Info("subscription_created", zap.String("id", sub.ID), zap.String("email", sub.Email))
	s.notifier.NotifySubscription(ctx, sub)

	return &SubscribeResult{Outcome: OutcomeSubscribed, Subscription: sub}, nil
}

// Unsubscribe transitions a subscription out of active. Unknown addresses are
// a not-found; repeating an unsubscribe is idempotent and leaves the original
// unsubscribed-at timestamp untouched. No notification is sent.
func (s *NewsletterService) Unsubscribe(ctx context.Context, req UnsubscribeRequest) (*SubscribeResult, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	sub, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Email not found in our newsletter subscription list")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to unsubscribe from newsletter")
	}

	if sub.Status == models.SubscriptionStatusUnsubscribed {
		return &SubscribeResult{Outcome: OutcomeAlreadyInactive, Subscription: sub}, nil
	}

	now := s.now().UTC()
	sub.Status = models.SubscriptionStatusUnsubscribed
	sub.UnsubscribedAt = &now
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to unsubscribe from newsletter")
	}

	s.logger.Info("subscription_unsubscribed", zap.String("email", sub.Email))
	return &SubscribeResult{Outcome: OutcomeUnsubscribed, Subscription: sub}, nil
}

// List returns subscriptions for operator review.
func (s *NewsletterService) List(ctx context.Context, filter models.SubscriptionFilter) ([]models.Subscription, *response.Pagination, error) {
	subs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to list subscriptions")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return subs, &response.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}
