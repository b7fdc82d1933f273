package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nextstopchina/forms-api/internal/models"
	"github.com/nextstopchina/forms-api/pkg/database"
	appErrors "github.com/nextstopchina/forms-api/pkg/errors"
	"github.com/nextstopchina/forms-api/pkg/response"
)

// CaptureMeta is the submitter's origin address and client-agent string,
// recorded on every submission for audit purposes.
type CaptureMeta struct {
	IPAddress string
	UserAgent string
}

type inquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	List(ctx context.Context, filter models.InquiryFilter) ([]models.Inquiry, int, error)
}

// SubmitInquiryRequest is the contact form payload.
type SubmitInquiryRequest struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,max=20"`
	Country   string `json:"country" validate:"required,max=50"`
	Program   string `json:"program" validate:"max=100"`
	Message   string `json:"message" validate:"required,min=10,max=1000"`
}

// normalize trims every string field and lowercases the email. The field
// list is explicit rather than walked by reflection so the set of mutations
// applied before validation is enumerable.
func (r *SubmitInquiryRequest) normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = normalizeEmail(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Country = strings.TrimSpace(r.Country)
	r.Program = strings.TrimSpace(r.Program)
	r.Message = strings.TrimSpace(r.Message)
}

// ContactService runs the contact inquiry intake pipeline.
type ContactService struct {
	repo      inquiryRepository
	notifier  *NotificationService
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewContactService constructs the contact service.
func NewContactService(repo inquiryRepository, notifier *NotificationService, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *ContactService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{repo: repo, notifier: notifier, validator: validate, logger: logger, metrics: metrics}
}

// Submit validates, persists and announces one contact inquiry. Notification
// failures never affect the returned record or error.
func (s *ContactService) Submit(ctx context.Context, req SubmitInquiryRequest, meta CaptureMeta) (*models.Inquiry, error) {
	req.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	inquiry := &models.Inquiry{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Country:   req.Country,
		Program:   req.Program,
		Message:   req.Message,
		Status:    models.InquiryStatusNew,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}

	if err := s.repo.Create(ctx, inquiry); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "A contact form with this email already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to submit contact form")
	}

	s.metrics.FormSubmitted("contact")
	s.logger.Info("inquiry_saved", zap.String("id", inquiry.ID), zap.String("email", inquiry.Email))

	s.notifier.NotifyInquiry(ctx, inquiry)

	return inquiry, nil
}

// List returns inquiries for operator review.
func (s *ContactService) List(ctx context.Context, filter models.InquiryFilter) ([]models.Inquiry, *response.Pagination, error) {
	inquiries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to list inquiries")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return inquiries, &response.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}
