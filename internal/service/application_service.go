package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nextstopchina/forms-api/internal/models"
	"github.com/nextstopchina/forms-api/pkg/database"
	appErrors "github.com/nextstopchina/forms-api/pkg/errors"
	"github.com/nextstopchina/forms-api/pkg/response"
)

type applicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	List(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, int, error)
}

// ApplicationPersonalInfo is the applicant identity group.
type ApplicationPersonalInfo struct {
	FirstName   string `json:"firstName" validate:"required,max=50"`
	LastName    string `json:"lastName" validate:"required,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,max=20"`
	Nationality string `json:"nationality" validate:"required,max=50"`
	DateOfBirth string `json:"dateOfBirth" validate:"required"`
}

// ApplicationAcademic is the academic background group.
type ApplicationAcademic struct {
	CurrentEducation string `json:"currentEducation" validate:"required,max=100"`
	Institution      string `json:"institution" validate:"max=200"`
	GPA              string `json:"gpa" validate:"max=10"`
	GraduationYear   string `json:"graduationYear" validate:"max=4"`
	FieldOfStudy     string `json:"fieldOfStudy" validate:"max=100"`
}

// ApplicationProgram is the desired program group.
type ApplicationProgram struct {
	DegreeLevel         string `json:"degreeLevel" validate:"required,oneof=bachelors masters phd mbbs diploma certificate"`
	PreferredProgram    string `json:"preferredProgram" validate:"required,max=100"`
	PreferredUniversity string `json:"preferredUniversity" validate:"max=200"`
	StartDate           string `json:"startDate" validate:"required,max=100"`
}

// ApplicationDocuments flags which documents the applicant already holds.
type ApplicationDocuments struct {
	Transcript     bool `json:"transcript"`
	Passport       bool `json:"passport"`
	LanguageTest   bool `json:"languageTest"`
	Recommendation bool `json:"recommendation"`
}

// ApplicationAdditional is the optional free-text group.
type ApplicationAdditional struct {
	ScholarshipInterest string `json:"scholarshipInterest" validate:"omitempty,oneof=yes no maybe"`
	PersonalStatement   string `json:"personalStatement" validate:"max=2000"`
	PreviousExperience  string `json:"previousExperience" validate:"max=1000"`
}

// SubmitApplicationRequest is the grouped application payload.
type SubmitApplicationRequest struct {
	PersonalInfo ApplicationPersonalInfo `json:"personalInfo"`
	Academic     ApplicationAcademic     `json:"academic"`
	Program      ApplicationProgram      `json:"program"`
	Documents    ApplicationDocuments    `json:"documents"`
	Additional   ApplicationAdditional   `json:"additional"`
}

// normalize trims every string field and lowercases the email; one explicit
// entry per field, mirroring the submission contract.
func (r *SubmitApplicationRequest) normalize() {
	r.PersonalInfo.FirstName = strings.TrimSpace(r.PersonalInfo.FirstName)
	r.PersonalInfo.LastName = strings.TrimSpace(r.PersonalInfo.LastName)
	r.PersonalInfo.Email = normalizeEmail(r.PersonalInfo.Email)
	r.PersonalInfo.Phone = strings.TrimSpace(r.PersonalInfo.Phone)
	r.PersonalInfo.Nationality = strings.TrimSpace(r.PersonalInfo.Nationality)
	r.PersonalInfo.DateOfBirth = strings.TrimSpace(r.PersonalInfo.DateOfBirth)
	r.Academic.CurrentEducation = strings.TrimSpace(r.Academic.CurrentEducation)
	r.Academic.Institution = strings.TrimSpace(r.Academic.Institution)
	r.Academic.GPA = strings.TrimSpace(r.Academic.GPA)
	r.Academic.GraduationYear = strings.TrimSpace(r.Academic.GraduationYear)
	r.Academic.FieldOfStudy = strings.TrimSpace(r.Academic.FieldOfStudy)
	r.Program.DegreeLevel = strings.TrimSpace(r.Program.DegreeLevel)
	r.Program.PreferredProgram = strings.TrimSpace(r.Program.PreferredProgram)
	r.Program.PreferredUniversity = strings.TrimSpace(r.Program.PreferredUniversity)
	r.Program.StartDate = strings.TrimSpace(r.Program.StartDate)
	r.Additional.ScholarshipInterest = strings.TrimSpace(r.Additional.ScholarshipInterest)
	r.Additional.PersonalStatement = strings.TrimSpace(r.Additional.PersonalStatement)
	r.Additional.PreviousExperience = strings.TrimSpace(r.Additional.PreviousExperience)
}

// ApplicationService runs the program application intake pipeline.
type ApplicationService struct {
	repo      applicationRepository
	notifier  *NotificationService
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewApplicationService constructs the application service.
func NewApplicationService(repo applicationRepository, notifier *NotificationService, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *ApplicationService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{repo: repo, notifier: notifier, validator: validate, logger: logger, metrics: metrics}
}

// dateLayouts accepted for dateOfBirth, tried in order.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDateOfBirth(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Submit validates, persists and announces one application. All violated
// fields are reported together, including an unparseable date of birth.
func (s *ApplicationService) Submit(ctx context.Context, req SubmitApplicationRequest, meta CaptureMeta) (*models.Application, error) {
	req.normalize()

	var fields []appErrors.FieldError
	if err := s.validator.Struct(req); err != nil {
		fields = fieldErrors(err)
	}

	var dob time.Time
	if req.PersonalInfo.DateOfBirth != "" {
		parsed, ok := parseDateOfBirth(req.PersonalInfo.DateOfBirth)
		if !ok {
			fields = append(fields, appErrors.FieldError{
				Field:   "personalInfo.dateOfBirth",
				Message: "dateOfBirth must be a valid date",
			})
		}
		dob = parsed
	}

	if len(fields) > 0 {
		return nil, appErrors.Validation("Validation failed", fields)
	}

	app := &models.Application{
		FirstName:           req.PersonalInfo.FirstName,
		LastName:            req.PersonalInfo.LastName,
		Email:               req.PersonalInfo.Email,
		Phone:               req.PersonalInfo.Phone,
		Nationality:         req.PersonalInfo.Nationality,
		DateOfBirth:         dob,
		CurrentEducation:    req.Academic.CurrentEducation,
		Institution:         req.Academic.Institution,
		GPA:                 req.Academic.GPA,
		GraduationYear:      req.Academic.GraduationYear,
		FieldOfStudy:        req.Academic.FieldOfStudy,
		DegreeLevel:         req.Program.DegreeLevel,
		PreferredProgram:    req.Program.PreferredProgram,
		PreferredUniversity: req.Program.PreferredUniversity,
		StartDate:           req.Program.StartDate,
		HasTranscript:       req.Documents.Transcript,
		HasPassport:         req.Documents.Passport,
		HasLanguageTest:     req.Documents.LanguageTest,
		HasRecommendation:   req.Documents.Recommendation,
		ScholarshipInterest: req.Additional.ScholarshipInterest,
		PersonalStatement:   req.Additional.PersonalStatement,
		PreviousExperience:  req.Additional.PreviousExperience,
		Status:              models.ApplicationStatusSubmitted,
		IPAddress:           meta.IPAddress,
		UserAgent:           meta.UserAgent,
	}

	if err := s.repo.Create(ctx, app); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "An application with this email already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to submit application")
	}

	s.metrics.FormSubmitted("application")
	s.logger.Info("application_saved",
		zap.String("id", app.ID),
		zap.String("email", app.Email),
		zap.String("program", app.PreferredProgram),
	)

	s.notifier.NotifyApplication(ctx, app)

	return app, nil
}

// List returns applications for operator review.
func (s *ApplicationService) List(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, *response.Pagination, error) {
	apps, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to list applications")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return apps, &response.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}
