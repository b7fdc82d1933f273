package models

import "time"

// Subscription states. Only active ⇄ unsubscribed is reachable through the
// public flows; bounced is set by delivery feedback outside this service.
const (
	SubscriptionStatusActive       = "active"
	SubscriptionStatusUnsubscribed = "unsubscribed"
	SubscriptionStatusBounced      = "bounced"
)

// Subscription sources record which page the signup came from.
const (
	SubscriptionSourceHomepage    = "homepage"
	SubscriptionSourceContactPage = "contact_page"
	SubscriptionSourceApplyPage   = "apply_page"
	SubscriptionSourceOther       = "other"
)

// Subscription is one row per unique normalized email address.
type Subscription struct {
	ID             string     `db:"id" json:"id"`
	Email          string     `db:"email" json:"email"`
	Status         string     `db:"status" json:"status"`
	Source         string     `db:"source" json:"source"`
	IPAddress      string     `db:"ip_address" json:"ip_address"`
	UserAgent      string     `db:"user_agent" json:"user_agent"`
	UnsubscribedAt *time.Time `db:"unsubscribed_at" json:"unsubscribed_at,omitempty"`
	LastEmailSent  *time.Time `db:"last_email_sent" json:"last_email_sent,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// SubscriptionFilter encapsulates allowed search parameters for listings.
type SubscriptionFilter struct {
	Status   string
	Page     int
	PageSize int
}
