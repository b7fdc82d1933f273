package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/nextstopchina/forms-api/internal/models"
)

// Renderer produces the subject and HTML body for each of the six message
// kinds. Rendering is a pure function of the record and the configured brand.
type Renderer struct {
	brand string
	tmpl  *template.Template
}

// NewRenderer parses the built-in templates for the given brand name.
func NewRenderer(brand string) *Renderer {
	return &Renderer{
		brand: brand,
		tmpl:  template.Must(template.New("mail").Parse(mailTemplates)),
	}
}

func (r *Renderer) render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// InquiryConfirmation renders the submitter-facing confirmation.
func (r *Renderer) InquiryConfirmation(inq *models.Inquiry) (string, string, error) {
	subject := fmt.Sprintf("Thank you for contacting %s!", r.brand)
	body, err := r.render("inquiry_confirmation", map[string]interface{}{
		"Brand":   r.brand,
		"Inquiry": inq,
		"Year":    time.Now().Year(),
	})
	return subject, body, err
}

// InquiryAdminNotice renders the operator-facing notice.
func (r *Renderer) InquiryAdminNotice(inq *models.Inquiry) (string, string, error) {
	subject := fmt.Sprintf("New Contact Form Submission - %s", inq.FullName())
	body, err := r.render("inquiry_admin", map[string]interface{}{
		"Brand":   r.brand,
		"Inquiry": inq,
	})
	return subject, body, err
}

// ApplicationConfirmation renders the applicant-facing confirmation.
func (r *Renderer) ApplicationConfirmation(app *models.Application) (string, string, error) {
	subject := fmt.Sprintf("Application Received - %s", r.brand)
	body, err := r.render("application_confirmation", map[string]interface{}{
		"Brand":       r.brand,
		"Application": app,
		"Year":        time.Now().Year(),
	})
	return subject, body, err
}

// ApplicationAdminNotice renders the operator-facing application notice.
func (r *Renderer) ApplicationAdminNotice(app *models.Application) (string, string, error) {
	subject := fmt.Sprintf("New Application Submission - %s", app.FullName())
	body, err := r.render("application_admin", map[string]interface{}{
		"Brand":       r.brand,
		"Application": app,
		"Age":         app.AgeAt(time.Now()),
	})
	return subject, body, err
}

// SubscriptionConfirmation renders the subscriber-facing welcome.
func (r *Renderer) SubscriptionConfirmation() (string, string, error) {
	subject := fmt.Sprintf("Welcome to %s Newsletter!", r.brand)
	body, err := r.render("subscription_confirmation", map[string]interface{}{
		"Brand": r.brand,
		"Year":  time.Now().Year(),
	})
	return subject, body, err
}

// SubscriptionAdminNotice renders the operator-facing subscription notice.
func (r *Renderer) SubscriptionAdminNotice(sub *models.Subscription) (string, string, error) {
	subject := fmt.Sprintf("New Newsletter Subscription - %s", sub.Email)
	body, err := r.render("subscription_admin", map[string]interface{}{
		"Brand":        r.brand,
		"Subscription": sub,
	})
	return subject, body, err
}

const mailTemplates = `
{{define "head"}}<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
  .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
  .admin-header { background: #ff6b6b; color: white; padding: 20px; text-align: center; border-radius: 10px 10px 0 0; }
  .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
  .highlight { background: #e8f4fd; padding: 15px; border-left: 4px solid #667eea; margin: 20px 0; }
  .footer { text-align: center; margin-top: 30px; color: #666; font-size: 14px; }
</style>
</head>
<body>{{end}}

{{define "footer"}}<div class="footer">
  <p>&copy; {{.Year}} {{.Brand}}. All rights reserved.</p>
  <p>Making education dreams come true.</p>
</div>
</body>
</html>{{end}}

{{define "inquiry_confirmation"}}{{template "head" .}}
<div class="header"><h1>Thank You for Contacting {{.Brand}}!</h1></div>
<div class="content">
  <p>Dear {{.Inquiry.FirstName}},</p>
  <p>Thank you for reaching out to us! We have received your message and our team will get back to you within 24 hours.</p>
  <div class="highlight">
    <strong>Your Message Summary:</strong><br>
    <strong>Name:</strong> {{.Inquiry.FullName}}<br>
    <strong>Email:</strong> {{.Inquiry.Email}}<br>
    <strong>Phone:</strong> {{.Inquiry.Phone}}<br>
    <strong>Country:</strong> {{.Inquiry.Country}}<br>
    <strong>Interested Program:</strong> {{if .Inquiry.Program}}{{.Inquiry.Program}}{{else}}Not specified{{end}}<br>
    <strong>Message:</strong> {{.Inquiry.Message}}
  </div>
  <p>Best regards,<br>The {{.Brand}} Team</p>
</div>
{{template "footer" .}}{{end}}

{{define "inquiry_admin"}}{{template "head" .}}
<div class="admin-header"><h1>New Contact Form Submission</h1></div>
<div class="content">
  <div class="highlight">
    <h3>Contact Information:</h3>
    <p><strong>Name:</strong> {{.Inquiry.FullName}}</p>
    <p><strong>Email:</strong> {{.Inquiry.Email}}</p>
    <p><strong>Phone:</strong> {{.Inquiry.Phone}}</p>
    <p><strong>Country:</strong> {{.Inquiry.Country}}</p>
    <p><strong>Interested Program:</strong> {{if .Inquiry.Program}}{{.Inquiry.Program}}{{else}}Not specified{{end}}</p>
  </div>
  <div class="highlight">
    <h3>Message:</h3>
    <p>{{.Inquiry.Message}}</p>
  </div>
  <p><strong>Submitted:</strong> {{.Inquiry.CreatedAt.Format "Jan 2, 2006 15:04 MST"}}<br>
  <strong>IP:</strong> {{.Inquiry.IPAddress}}</p>
</div>
</body>
</html>{{end}}

{{define "application_confirmation"}}{{template "head" .}}
<div class="header"><h1>Application Received!</h1></div>
<div class="content">
  <p>Dear {{.Application.FirstName}},</p>
  <p>Thank you for applying through {{.Brand}}! We have received your application and our admissions team will review it within 2 weeks.</p>
  <div class="highlight">
    <strong>Application Summary:</strong><br>
    <strong>Name:</strong> {{.Application.FullName}}<br>
    <strong>Program:</strong> {{.Application.PreferredProgram}}<br>
    <strong>Degree Level:</strong> {{.Application.DegreeLevel}}<br>
    <strong>Preferred Start:</strong> {{.Application.StartDate}}
  </div>
  <p>We will contact you at {{.Application.Email}} once the review is complete.</p>
  <p>Best regards,<br>The {{.Brand}} Team</p>
</div>
{{template "footer" .}}{{end}}

{{define "application_admin"}}{{template "head" .}}
<div class="admin-header"><h1>New Application Submission</h1></div>
<div class="content">
  <div class="highlight">
    <h3>Applicant:</h3>
    <p><strong>Name:</strong> {{.Application.FullName}} (age {{.Age}})</p>
    <p><strong>Email:</strong> {{.Application.Email}}</p>
    <p><strong>Phone:</strong> {{.Application.Phone}}</p>
    <p><strong>Nationality:</strong> {{.Application.Nationality}}</p>
  </div>
  <div class="highlight">
    <h3>Program:</h3>
    <p><strong>Degree Level:</strong> {{.Application.DegreeLevel}}</p>
    <p><strong>Preferred Program:</strong> {{.Application.PreferredProgram}}</p>
    <p><strong>Preferred University:</strong> {{if .Application.PreferredUniversity}}{{.Application.PreferredUniversity}}{{else}}Not specified{{end}}</p>
    <p><strong>Start Date:</strong> {{.Application.StartDate}}</p>
  </div>
  <div class="highlight">
    <h3>Academic Background:</h3>
    <p><strong>Current Education:</strong> {{.Application.CurrentEducation}}</p>
    <p><strong>Institution:</strong> {{if .Application.Institution}}{{.Application.Institution}}{{else}}Not specified{{end}}</p>
    <p><strong>GPA:</strong> {{if .Application.GPA}}{{.Application.GPA}}{{else}}Not specified{{end}}</p>
  </div>
  <p><strong>Submitted:</strong> {{.Application.CreatedAt.Format "Jan 2, 2006 15:04 MST"}}<br>
  <strong>IP:</strong> {{.Application.IPAddress}}</p>
</div>
</body>
</html>{{end}}

{{define "subscription_confirmation"}}{{template "head" .}}
<div class="header"><h1>Welcome to the {{.Brand}} Newsletter!</h1></div>
<div class="content">
  <p>Thank you for subscribing! You will now receive updates on scholarships, programs, and application deadlines.</p>
  <p>You can unsubscribe at any time using the link at the bottom of our emails.</p>
  <p>Best regards,<br>The {{.Brand}} Team</p>
</div>
{{template "footer" .}}{{end}}

{{define "subscription_admin"}}{{template "head" .}}
<div class="admin-header"><h1>New Newsletter Subscription</h1></div>
<div class="content">
  <div class="highlight">
    <p><strong>Email:</strong> {{.Subscription.Email}}</p>
    <p><strong>Source:</strong> {{.Subscription.Source}}</p>
    <p><strong>Status:</strong> {{.Subscription.Status}}</p>
    <p><strong>IP:</strong> {{.Subscription.IPAddress}}</p>
  </div>
</div>
</body>
</html>{{end}}
`
