package service

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nextstopchina/forms-api/internal/models"
	appErrors "github.com/nextstopchina/forms-api/pkg/errors"
)

type mockInquiryRepo struct {
	created    []models.Inquiry
	createErr  error
	listResult []models.Inquiry
	listTotal  int
	lastFilter models.InquiryFilter
}

func (m *mockInquiryRepo) Create(ctx context.Context, inquiry *models.Inquiry) error {
	if m.createErr != nil {
		return m.createErr
	}
	if inquiry.ID == "" {
		inquiry.ID = "generated"
	}
	m.created = append(m.created, *inquiry)
	return nil
}

func (m *mockInquiryRepo) List(ctx context.Context, filter models.InquiryFilter) ([]models.Inquiry, int, error) {
	m.lastFilter = filter
	return m.listResult, m.listTotal, nil
}

func validInquiryRequest() SubmitInquiryRequest {
	return SubmitInquiryRequest{
		FirstName: "Amina",
		LastName:  "Yusuf",
		Email:     "Amina@Example.com ",
		Phone:     "+2348000000000",
		Country:   "Nigeria",
		Program:   "Computer Science",
		Message:   "I would like to know more about your bachelor programs.",
	}
}

func newContactService(repo *mockInquiryRepo, sender *fakeSender) *ContactService {
	return NewContactService(repo, newTestNotifier(sender), NewValidator(), zap.NewNop(), nil)
}

func TestContactSubmitPersistsNormalizedInquiry(t *testing.T) {
	repo := &mockInquiryRepo{}
	sender := &fakeSender{}
	svc := newContactService(repo, sender)

	inquiry, err := svc.Submit(context.Background(), validInquiryRequest(), CaptureMeta{IPAddress: "203.0.113.9", UserAgent: "curl/8.0"})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "amina@example.com", inquiry.Email)
	assert.Equal(t, models.InquiryStatusNew, inquiry.Status)
	assert.Equal(t, "203.0.113.9", inquiry.IPAddress)
	assert.Equal(t, "curl/8.0", inquiry.UserAgent)
	assert.Len(t, sender.messages(), 2)
}

func TestContactSubmitReportsEveryViolation(t *testing.T) {
	repo := &mockInquiryRepo{}
	svc := newContactService(repo, &fakeSender{})

	_, err := svc.Submit(context.Background(), SubmitInquiryRequest{
		FirstName: "Amina",
		Email:     "not-an-email",
		Message:   "too short",
	}, CaptureMeta{})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, 400, appErr.Status)

	violated := map[string]bool{}
	for _, f := range appErr.Fields {
		violated[f.Field] = true
	}
	assert.True(t, violated["lastName"])
	assert.True(t, violated["email"])
	assert.True(t, violated["phone"])
	assert.True(t, violated["country"])
	assert.True(t, violated["message"])
	assert.Empty(t, repo.created, "invalid submissions must not persist")
}

func TestContactSubmitWhitespaceOnlyMessageRejected(t *testing.T) {
	repo := &mockInquiryRepo{}
	svc := newContactService(repo, &fakeSender{})

	req := validInquiryRequest()
	req.Message = "                 "
	_, err := svc.Submit(context.Background(), req, CaptureMeta{})
	require.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestContactSubmitMapsUniqueViolation(t *testing.T) {
	repo := &mockInquiryRepo{createErr: &pq.Error{Code: "23505"}}
	svc := newContactService(repo, &fakeSender{})

	_, err := svc.Submit(context.Background(), validInquiryRequest(), CaptureMeta{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrDuplicateKey.Code, appErr.Code)
	assert.Equal(t, "A contact form with this email already exists", appErr.Message)
}

func TestContactSubmitSucceedsWhenEverySendFails(t *testing.T) {
	repo := &mockInquiryRepo{}
	sender := &fakeSender{failTags: map[string]bool{
		KindInquiryConfirmation: true,
		KindInquiryAdminNotice:  true,
	}}
	svc := newContactService(repo, sender)

	inquiry, err := svc.Submit(context.Background(), validInquiryRequest(), CaptureMeta{})
	require.NoError(t, err)
	assert.NotEmpty(t, inquiry.ID)
	assert.Len(t, repo.created, 1)
}

func TestContactListDefaultsPagination(t *testing.T) {
	repo := &mockInquiryRepo{listResult: []models.Inquiry{{ID: "1"}}, listTotal: 41}
	svc := newContactService(repo, &fakeSender{})

	inquiries, pagination, err := svc.List(context.Background(), models.InquiryFilter{})
	require.NoError(t, err)
	assert.Len(t, inquiries, 1)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
	assert.Equal(t, 41, pagination.TotalCount)
}
