package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nextstopchina/forms-api/internal/models"
	appErrors "github.com/nextstopchina/forms-api/pkg/errors"
)

type mockSubscriptionRepo struct {
	byEmail   map[string]*models.Subscription
	created   []models.Subscription
	updated   []models.Subscription
	createErr error
}

func (m *mockSubscriptionRepo) Create(ctx context.Context, sub *models.Subscription) error {
	if m.createErr != nil {
		return m.createErr
	}
	if sub.ID == "" {
		sub.ID = "generated"
	}
	m.created = append(m.created, *sub)
	return nil
}

func (m *mockSubscriptionRepo) FindByEmail(ctx context.Context, email string) (*models.Subscription, error) {
	if sub, ok := m.byEmail[email]; ok {
		copied := *sub
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockSubscriptionRepo) Update(ctx context.Context, sub *models.Subscription) error {
	m.updated = append(m.updated, *sub)
	if m.byEmail == nil {
		m.byEmail = make(map[string]*models.Subscription)
	}
	copied := *sub
	m.byEmail[sub.Email] = &copied
	return nil
}

func (m *mockSubscriptionRepo) List(ctx context.Context, filter models.SubscriptionFilter) ([]models.Subscription, int, error) {
	subs := make([]models.Subscription, 0, len(m.byEmail))
	for _, sub := range m.byEmail {
		subs = append(subs, *sub)
	}
	return subs, len(subs), nil
}

var testClock = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newNewsletterService(repo *mockSubscriptionRepo, sender *fakeSender) *NewsletterService {
	svc := NewNewsletterService(repo, newTestNotifier(sender), NewValidator(), zap.NewNop(), nil)
	svc.now = func() time.Time { return testClock }
	return svc
}

func TestSubscribeCreatesActiveSubscription(t *testing.T) {
	repo := &mockSubscriptionRepo{}
	sender := &fakeSender{}
	svc := newNewsletterService(repo, sender)

	result, err := svc.Subscribe(context.Background(), SubscribeRequest{
		Email:  " Reader@Example.COM ",
		Source: models.SubscriptionSourceApplyPage,
	}, CaptureMeta{IPAddress: "203.0.113.9"})
	require.NoError(t, err)

	assert.Equal(t, OutcomeSubscribed, result.Outcome)
	require.Len(t, repo.created, 1)
	sub := repo.created[0]
	assert.Equal(t, "reader@example.com", sub.Email)
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, models.SubscriptionSourceApplyPage, sub.Source)
	require.NotNil(t, sub.LastEmailSent)
	assert.Equal(t, testClock, *sub.LastEmailSent)
	assert.Len(t, sender.messages(), 2)
}

func TestSubscribeDefaultsSourceToHomepage(t *testing.T) {
	repo := &mockSubscriptionRepo{}
	svc := newNewsletterService(repo, &fakeSender{})

	_, err := svc.Subscribe(context.Background(), SubscribeRequest{Email: "reader@example.com"}, CaptureMeta{})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, models.SubscriptionSourceHomepage, repo.created[0].Source)
}

func TestSubscribeActiveAddressIsIdempotent(t *testing.T) {
	repo := &mockSubscriptionRepo{byEmail: map[string]*models.Subscription{
		"reader@example.com": {ID: "sub-1", Email: "reader@example.com", Status: models.SubscriptionStatusActive},
	}}
	sender := &fakeSender{}
	svc := newNewsletterService(repo, sender)

	result, err := svc.Subscribe(context.Background(), SubscribeRequest{Email: "reader@example.com"}, CaptureMeta{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadySubscribed, result.Outcome)
	assert.Empty(t, repo.created)
	assert.Empty(t, repo.updated)
	assert.Empty(t, sender.messages(), "idempotent subscribe must not send email")
}

func TestSubscribeReactivatesUnsubscribedAddress(t *testing.T) {
	unsubAt := time.Date(2025, 12, 24, 9, 0, 0, 0, time.UTC)
	repo := &mockSubscriptionRepo{byEmail: map[string]*models.Subscription{
		"reader@example.com": {
			ID:             "sub-1",
			Email:          "reader@example.com",
			Status:         models.SubscriptionStatusUnsubscribed,
			Source:         models.SubscriptionSourceHomepage,
			UnsubscribedAt: &unsubAt,
		},
	}}
	sender := &fakeSender{}
	svc := newNewsletterService(repo, sender)

	result, err := svc.Subscribe(context.Background(), SubscribeRequest{
		Email:  "reader@example.com",
		Source: models.SubscriptionSourceContactPage,
	}, CaptureMeta{})
	require.NoError(t, err)

	assert.Equal(t, OutcomeResubscribed, result.Outcome)
	require.Len(t, repo.updated, 1)
	updated := repo.updated[0]
	assert.Equal(t, models.SubscriptionStatusActive, updated.Status)
	assert.Equal(t, models.SubscriptionSourceContactPage, updated.Source, "reactivation records the new source")
	assert.Nil(t, updated.UnsubscribedAt)
	require.NotNil(t, updated.LastEmailSent)
	assert.Equal(t, testClock, *updated.LastEmailSent)
	assert.Len(t, sender.messages(), 2)
}

func TestSubscribeBouncedAddressIsConflict(t *testing.T) {
	repo := &mockSubscriptionRepo{byEmail: map[string]*models.Subscription{
		"reader@example.com": {ID: "sub-1", Email: "reader@example.com", Status: models.SubscriptionStatusBounced},
	}}
	sender := &fakeSender{}
	svc := newNewsletterService(repo, sender)

	_, err := svc.Subscribe(context.Background(), SubscribeRequest{Email: "reader@example.com"}, CaptureMeta{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrDuplicateKey.Code, appErr.Code)
	assert.Empty(t, repo.updated, "bounced subscriptions stay untouched")
	assert.Empty(t, sender.messages())
}

func TestSubscribeRaceLoserSeesDuplicate(t *testing.T) {
	repo := &mockSubscriptionRepo{createErr: &pq.Error{Code: "23505"}}
	svc := newNewsletterService(repo, &fakeSender{})

	_, err := svc.Subscribe(context.Background(), SubscribeRequest{Email: "reader@example.com"}, CaptureMeta{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrDuplicateKey.Code, appErr.Code)
	assert.Equal(t, "This email is already subscribed", appErr.Message)
}

func TestUnsubscribeTransitionsActiveSubscription(t *testing.T) {
	repo := &mockSubscriptionRepo{byEmail: map[string]*models.Subscription{
		"reader@example.com": {ID: "sub-1", Email: "reader@example.com", Status: models.SubscriptionStatusActive},
	}}
	sender := &fakeSender{}
	svc := newNewsletterService(repo, sender)

	result, err := svc.Unsubscribe(context.Background(), UnsubscribeRequest{Email: "Reader@Example.com"})
	require.NoError(t, err)

	assert.Equal(t, OutcomeUnsubscribed, result.Outcome)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, models.SubscriptionStatusUnsubscribed, repo.updated[0].Status)
	require.NotNil(t, repo.updated[0].UnsubscribedAt)
	assert.Equal(t, testClock, *repo.updated[0].UnsubscribedAt)
	assert.Empty(t, sender.messages(), "unsubscribe sends no email")
}

func TestUnsubscribeUnknownEmailIsNotFound(t *testing.T) {
	svc := newNewsletterService(&mockSubscriptionRepo{}, &fakeSender{})

	_, err := svc.Unsubscribe(context.Background(), UnsubscribeRequest{Email: "missing@example.com"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, 404, appErr.Status)
}

func TestUnsubscribeTwiceKeepsOriginalTimestamp(t *testing.T) {
	original := time.Date(2025, 11, 2, 8, 30, 0, 0, time.UTC)
	repo := &mockSubscriptionRepo{byEmail: map[string]*models.Subscription{
		"reader@example.com": {
			ID:             "sub-1",
			Email:          "reader@example.com",
			Status:         models.SubscriptionStatusUnsubscribed,
			UnsubscribedAt: &original,
		},
	}}
	svc := newNewsletterService(repo, &fakeSender{})

	result, err := svc.Unsubscribe(context.Background(), UnsubscribeRequest{Email: "reader@example.com"})
	require.NoError(t, err)

	assert.Equal(t, OutcomeAlreadyInactive, result.Outcome)
	assert.Empty(t, repo.updated, "repeat unsubscribe must not rewrite the record")
	require.NotNil(t, result.Subscription.UnsubscribedAt)
	assert.Equal(t, original, *result.Subscription.UnsubscribedAt)
}

func TestUnsubscribeBouncedAddressTransitionsOut(t *testing.T) {
	repo := &mockSubscriptionRepo{byEmail: map[string]*models.Subscription{
		"reader@example.com": {ID: "sub-1", Email: "reader@example.com", Status: models.SubscriptionStatusBounced},
	}}
	svc := newNewsletterService(repo, &fakeSender{})

	result, err := svc.Unsubscribe(context.Background(), UnsubscribeRequest{Email: "reader@example.com"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnsubscribed, result.Outcome)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, models.SubscriptionStatusUnsubscribed, repo.updated[0].Status)
}

func TestSubscribeInvalidEmailRejected(t *testing.T) {
	repo := &mockSubscriptionRepo{}
	svc := newNewsletterService(repo, &fakeSender{})

	_, err := svc.Subscribe(context.Background(), SubscribeRequest{Email: "not-an-email"}, CaptureMeta{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Empty(t, repo.created)
}
