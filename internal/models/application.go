package models

import "time"

// Application statuses; "submitted" is the only state assigned here.
const (
	ApplicationStatusSubmitted   = "submitted"
	ApplicationStatusUnderReview = "under_review"
	ApplicationStatusAccepted    = "accepted"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusOnHold      = "on_hold"
)

// Application is a study-abroad program application. The submitted payload is
// grouped (personal/academic/program/documents/additional) but rows are flat.
type Application struct {
	ID string `db:"id" json:"id"`

	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	Email       string    `db:"email" json:"email"`
	Phone       string    `db:"phone" json:"phone"`
	Nationality string    `db:"nationality" json:"nationality"`
	DateOfBirth time.Time `db:"date_of_birth" json:"date_of_birth"`

	CurrentEducation string `db:"current_education" json:"current_education"`
	Institution      string `db:"institution" json:"institution,omitempty"`
	GPA              string `db:"gpa" json:"gpa,omitempty"`
	GraduationYear   string `db:"graduation_year" json:"graduation_year,omitempty"`
	FieldOfStudy     string `db:"field_of_study" json:"field_of_study,omitempty"`

	DegreeLevel         string `db:"degree_level" json:"degree_level"`
	PreferredProgram    string `db:"preferred_program" json:"preferred_program"`
	PreferredUniversity string `db:"preferred_university" json:"preferred_university,omitempty"`
	StartDate           string `db:"start_date" json:"start_date"`

	HasTranscript     bool `db:"has_transcript" json:"has_transcript"`
	HasPassport       bool `db:"has_passport" json:"has_passport"`
	HasLanguageTest   bool `db:"has_language_test" json:"has_language_test"`
	HasRecommendation bool `db:"has_recommendation" json:"has_recommendation"`

	ScholarshipInterest string `db:"scholarship_interest" json:"scholarship_interest,omitempty"`
	PersonalStatement   string `db:"personal_statement" json:"personal_statement,omitempty"`
	PreviousExperience  string `db:"previous_experience" json:"previous_experience,omitempty"`

	Status     string    `db:"status" json:"status"`
	AdminNotes string    `db:"admin_notes" json:"admin_notes,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	UserAgent  string    `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// FullName joins the applicant's first and last name.
func (a *Application) FullName() string {
	return a.FirstName + " " + a.LastName
}

// AgeAt computes the applicant's whole-year age at the given time, decrementing
// when the evaluation month/day falls before the birthday month/day.
func (a *Application) AgeAt(at time.Time) int {
	age := at.Year() - a.DateOfBirth.Year()
	if at.Month() < a.DateOfBirth.Month() ||
		(at.Month() == a.DateOfBirth.Month() && at.Day() < a.DateOfBirth.Day()) {
		age--
	}
	return age
}

// ApplicationFilter encapsulates allowed search parameters for listings.
type ApplicationFilter struct {
	Status      string
	DegreeLevel string
	Page        int
	PageSize    int
}
