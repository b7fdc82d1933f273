package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextstopchina/forms-api/internal/models"
)

func TestInquiryConfirmationTemplate(t *testing.T) {
	r := NewRenderer("Next Stop China")
	inq := &models.Inquiry{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "+123456",
		Country:   "UK",
		Message:   "I would like to study mathematics.",
		CreatedAt: time.Now(),
	}

	subject, body, err := r.InquiryConfirmation(inq)
	require.NoError(t, err)
	assert.Equal(t, "Thank you for contacting Next Stop China!", subject)
	assert.Contains(t, body, "Dear Ada,")
	assert.Contains(t, body, "Ada Lovelace")
	assert.Contains(t, body, "ada@example.com")
	assert.Contains(t, body, "Not specified")
}

func TestInquiryAdminNoticeEscapesHTML(t *testing.T) {
	r := NewRenderer("Next Stop China")
	inq := &models.Inquiry{
		FirstName: "Eve",
		LastName:  "Mallory",
		Email:     "eve@example.com",
		Message:   `<script>alert("x")</script>`,
		CreatedAt: time.Now(),
	}

	subject, body, err := r.InquiryAdminNotice(inq)
	require.NoError(t, err)
	assert.Equal(t, "New Contact Form Submission - Eve Mallory", subject)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestApplicationTemplates(t *testing.T) {
	r := NewRenderer("Next Stop China")
	app := &models.Application{
		FirstName:        "Liu",
		LastName:         "Wei",
		Email:            "liu.wei@example.com",
		Phone:            "+86123",
		Nationality:      "Chinese",
		DateOfBirth:      time.Date(2001, 3, 9, 0, 0, 0, 0, time.UTC),
		CurrentEducation: "High School",
		DegreeLevel:      "bachelors",
		PreferredProgram: "Computer Science",
		StartDate:        "Fall 2026",
		CreatedAt:        time.Now(),
	}

	subject, body, err := r.ApplicationConfirmation(app)
	require.NoError(t, err)
	assert.Equal(t, "Application Received - Next Stop China", subject)
	assert.Contains(t, body, "Computer Science")
	assert.Contains(t, body, "bachelors")

	subject, body, err = r.ApplicationAdminNotice(app)
	require.NoError(t, err)
	assert.Equal(t, "New Application Submission - Liu Wei", subject)
	assert.Contains(t, body, "liu.wei@example.com")
	assert.Contains(t, body, "High School")
}

func TestSubscriptionTemplates(t *testing.T) {
	r := NewRenderer("Next Stop China")

	subject, body, err := r.SubscriptionConfirmation()
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Next Stop China Newsletter!", subject)
	assert.Contains(t, body, "Thank you for subscribing")

	sub := &models.Subscription{
		Email:  "reader@example.com",
		Status: models.SubscriptionStatusActive,
		Source: models.SubscriptionSourceHomepage,
	}
	subject, body, err = r.SubscriptionAdminNotice(sub)
	require.NoError(t, err)
	assert.Equal(t, "New Newsletter Subscription - reader@example.com", subject)
	assert.Contains(t, body, "homepage")
}
