package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/nextstopchina/forms-api/internal/mailer"
	"github.com/nextstopchina/forms-api/internal/models"
)

// Notification kinds, used for logging, metrics and provider tags.
const (
	KindInquiryConfirmation      = "inquiry_confirmation"
	KindInquiryAdminNotice       = "inquiry_admin_notice"
	KindApplicationConfirmation  = "application_confirmation"
	KindApplicationAdminNotice   = "application_admin_notice"
	KindSubscriptionConfirmation = "subscription_confirmation"
	KindSubscriptionAdminNotice  = "subscription_admin_notice"
)

// NotificationService renders and dispatches the confirmation/notice pair for
// each form type. Delivery is strictly best-effort: failures are logged and
// counted, never returned, so a sink outage cannot fail a submission that is
// already durable.
type NotificationService struct {
	sender     mailer.Sender
	renderer   *mailer.Renderer
	adminEmail string
	logger     *zap.Logger
	metrics    *MetricsService
}

// NewNotificationService constructs the notification service. The sender is
// an explicit dependency so tests can substitute a fake sink.
func NewNotificationService(sender mailer.Sender, renderer *mailer.Renderer, adminEmail string, logger *zap.Logger, metrics *MetricsService) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		sender:     sender,
		renderer:   renderer,
		adminEmail: adminEmail,
		logger:     logger,
		metrics:    metrics,
	}
}

type outbound struct {
	kind string
	msg  mailer.Message
}

// dispatch sends all messages concurrently and waits for every attempt to
// finish before returning. Results only feed logs and metrics.
func (s *NotificationService) dispatch(ctx context.Context, messages []outbound) {
	var wg sync.WaitGroup
	for _, out := range messages {
		wg.Add(1)
		go func(out outbound) {
			defer wg.Done()
			if err := s.sender.Send(ctx, out.msg); err != nil {
				s.metrics.EmailFailed(out.kind)
				s.logger.Warn("email_send_failed",
					zap.String("kind", out.kind),
					zap.String("to", out.msg.To),
					zap.Error(err),
				)
				return
			}
			s.metrics.EmailSent(out.kind)
			s.logger.Info("email_sent", zap.String("kind", out.kind), zap.String("to", out.msg.To))
		}(out)
	}
	wg.Wait()
}

func (s *NotificationService) build(kind, to, toName string, render func() (string, string, error)) (outbound, bool) {
	subject, body, err := render()
	if err != nil {
		s.metrics.EmailFailed(kind)
		s.logger.Error("email_render_failed", zap.String("kind", kind), zap.Error(err))
		return outbound{}, false
	}
	return outbound{
		kind: kind,
		msg:  mailer.Message{To: to, ToName: toName, Subject: subject, HTMLBody: body, Tag: kind},
	}, true
}

// NotifyInquiry sends the submitter confirmation and the operator notice for
// a persisted inquiry.
func (s *NotificationService) NotifyInquiry(ctx context.Context, inq *models.Inquiry) {
	messages := make([]outbound, 0, 2)
	if out, ok := s.build(KindInquiryConfirmation, inq.Email, inq.FullName(), func() (string, string, error) {
		return s.renderer.InquiryConfirmation(inq)
	}); ok {
		messages = append(messages, out)
	}
	if out, ok := s.build(KindInquiryAdminNotice, s.adminEmail, "Admin", func() (string, string, error) {
		return s.renderer.InquiryAdminNotice(inq)
	}); ok {
		messages = append(messages, out)
	}
	s.dispatch(ctx, messages)
}

// NotifyApplication sends the applicant confirmation and the operator notice
// for a persisted application.
func (s *NotificationService) NotifyApplication(ctx context.Context, app *models.Application) {
	messages := make([]outbound, 0, 2)
	if out, ok := s.build(KindApplicationConfirmation, app.Email, app.FullName(), func() (string, string, error) {
		return s.renderer.ApplicationConfirmation(app)
	}); ok {
		messages = append(messages, out)
	}
	if out, ok := s.build(KindApplicationAdminNotice, s.adminEmail, "Admin", func() (string, string, error) {
		return s.renderer.ApplicationAdminNotice(app)
	}); ok {
		messages = append(messages, out)
	}
	s.dispatch(ctx, messages)
}

// NotifySubscription sends the subscriber welcome and the operator notice for
// a new or reactivated subscription.
func (s *NotificationService) NotifySubscription(ctx context.Context, sub *models.Subscription) {
	messages := make([]outbound, 0, 2)
	if out, ok := s.build(KindSubscriptionConfirmation, sub.Email, "Subscriber", func() (string, string, error) {
		return s.renderer.SubscriptionConfirmation()
	}); ok {
		messages = append(messages, out)
	}
	if out, ok := s.build(KindSubscriptionAdminNotice, s.adminEmail, "Admin", func() (string, string, error) {
		return s.renderer.SubscriptionAdminNotice(sub)
	}); ok {
		messages = append(messages, out)
	}
	s.dispatch(ctx, messages)
}
