package service

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nextstopchina/forms-api/internal/models"
	appErrors "github.com/nextstopchina/forms-api/pkg/errors"
)

type mockApplicationRepo struct {
	created    []models.Application
	createErr  error
	listResult []models.Application
	listTotal  int
	lastFilter models.ApplicationFilter
}

func (m *mockApplicationRepo) Create(ctx context.Context, app *models.Application) error {
	if m.createErr != nil {
		return m.createErr
	}
	if app.ID == "" {
		app.ID = "generated"
	}
	m.created = append(m.created, *app)
	return nil
}

func (m *mockApplicationRepo) List(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, int, error) {
	m.lastFilter = filter
	return m.listResult, m.listTotal, nil
}

func validApplicationRequest() SubmitApplicationRequest {
	return SubmitApplicationRequest{
		PersonalInfo: ApplicationPersonalInfo{
			FirstName:   "Joseph",
			LastName:    "Mwangi",
			Email:       " Joseph@Example.COM",
			Phone:       "+254700000000",
			Nationality: "Kenyan",
			DateOfBirth: "2000-06-15",
		},
		Academic: ApplicationAcademic{
			CurrentEducation: "High School Diploma",
			Institution:      "Nairobi School",
			GPA:              "3.8",
			GraduationYear:   "2023",
			FieldOfStudy:     "Sciences",
		},
		Program: ApplicationProgram{
			DegreeLevel:      "bachelors",
			PreferredProgram: "Computer Science",
			StartDate:        "September 2026",
		},
		Documents: ApplicationDocuments{
			Transcript: true,
			Passport:   true,
		},
		Additional: ApplicationAdditional{
			ScholarshipInterest: "yes",
		},
	}
}

func newApplicationService(repo *mockApplicationRepo, sender *fakeSender) *ApplicationService {
	return NewApplicationService(repo, newTestNotifier(sender), NewValidator(), zap.NewNop(), nil)
}

func TestApplicationSubmitPersistsAndNotifies(t *testing.T) {
	repo := &mockApplicationRepo{}
	sender := &fakeSender{}
	svc := newApplicationService(repo, sender)

	app, err := svc.Submit(context.Background(), validApplicationRequest(), CaptureMeta{IPAddress: "198.51.100.7"})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "joseph@example.com", app.Email)
	assert.Equal(t, models.ApplicationStatusSubmitted, app.Status)
	assert.Equal(t, time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC), app.DateOfBirth)
	assert.True(t, app.HasTranscript)
	assert.False(t, app.HasLanguageTest)
	assert.Len(t, sender.messages(), 2)
}

func TestApplicationSubmitNamesNestedFields(t *testing.T) {
	repo := &mockApplicationRepo{}
	svc := newApplicationService(repo, &fakeSender{})

	req := validApplicationRequest()
	req.PersonalInfo.Email = ""
	req.Program.DegreeLevel = "astronaut"
	_, err := svc.Submit(context.Background(), req, CaptureMeta{})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)

	violated := map[string]bool{}
	for _, f := range appErr.Fields {
		violated[f.Field] = true
	}
	assert.True(t, violated["personalInfo.email"])
	assert.True(t, violated["program.degreeLevel"])
	assert.Empty(t, repo.created)
}

func TestApplicationSubmitRejectsUnparseableBirthDate(t *testing.T) {
	repo := &mockApplicationRepo{}
	svc := newApplicationService(repo, &fakeSender{})

	req := validApplicationRequest()
	req.PersonalInfo.DateOfBirth = "15/06/2000"
	_, err := svc.Submit(context.Background(), req, CaptureMeta{})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	found := false
	for _, f := range appErr.Fields {
		if f.Field == "personalInfo.dateOfBirth" {
			found = true
		}
	}
	assert.True(t, found, "unparseable date must be reported as a field violation")
	assert.Empty(t, repo.created)
}

func TestApplicationSubmitAcceptsRFC3339BirthDate(t *testing.T) {
	repo := &mockApplicationRepo{}
	svc := newApplicationService(repo, &fakeSender{})

	req := validApplicationRequest()
	req.PersonalInfo.DateOfBirth = "2000-06-15T00:00:00Z"
	app, err := svc.Submit(context.Background(), req, CaptureMeta{})
	require.NoError(t, err)
	assert.Equal(t, 2000, app.DateOfBirth.Year())
}

func TestApplicationSubmitMapsUniqueViolation(t *testing.T) {
	repo := &mockApplicationRepo{createErr: &pq.Error{Code: "23505"}}
	svc := newApplicationService(repo, &fakeSender{})

	_, err := svc.Submit(context.Background(), validApplicationRequest(), CaptureMeta{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrDuplicateKey.Code, appErr.Code)
	assert.Equal(t, "An application with this email already exists", appErr.Message)
}

func TestApplicationListPassesFilterThrough(t *testing.T) {
	repo := &mockApplicationRepo{listTotal: 3}
	svc := newApplicationService(repo, &fakeSender{})

	_, pagination, err := svc.List(context.Background(), models.ApplicationFilter{Status: models.ApplicationStatusSubmitted, DegreeLevel: "masters", Page: 2, PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, "masters", repo.lastFilter.DegreeLevel)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 5, pagination.PageSize)
	assert.Equal(t, 3, pagination.TotalCount)
}
