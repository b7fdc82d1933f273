package models

import "time"

// Inquiry statuses follow the operator triage lifecycle. Only "new" is ever
// assigned by this service; the rest are operator-driven.
const (
	InquiryStatusNew        = "new"
	InquiryStatusInProgress = "in_progress"
	InquiryStatusResponded  = "responded"
	InquiryStatusClosed     = "closed"
)

// Inquiry is a contact request submitted through the website.
type Inquiry struct {
	ID         string    `db:"id" json:"id"`
	FirstName  string    `db:"first_name" json:"first_name"`
	LastName   string    `db:"last_name" json:"last_name"`
	Email      string    `db:"email" json:"email"`
	Phone      string    `db:"phone" json:"phone"`
	Country    string    `db:"country" json:"country"`
	Program    string    `db:"program" json:"program,omitempty"`
	Message    string    `db:"message" json:"message"`
	Status     string    `db:"status" json:"status"`
	AdminNotes string    `db:"admin_notes" json:"admin_notes,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	UserAgent  string    `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// FullName joins first and last name for display and email salutations.
func (i *Inquiry) FullName() string {
	return i.FirstName + " " + i.LastName
}

// InquiryFilter encapsulates allowed search parameters for listing inquiries.
type InquiryFilter struct {
	Status   string
	Page     int
	PageSize int
}
