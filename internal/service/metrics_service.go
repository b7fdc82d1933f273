package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the intake API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	formsSubmitted  *prometheus.CounterVec
	emailsSent      *prometheus.CounterVec
	emailsFailed    *prometheus.CounterVec
	rateLimited     prometheus.Counter
}

// NewMetricsService registers the core collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	formsSubmitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forms_submitted_total",
		Help: "Successfully persisted form submissions by form type",
	}, []string{"form"})

	emailsSent := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "emails_sent_total",
		Help: "Notification emails accepted by the provider, by kind",
	}, []string{"kind"})

	emailsFailed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "emails_failed_total",
		Help: "Notification emails that failed to send, by kind",
	}, []string{"kind"})

	rateLimited := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "requests_rate_limited_total",
		Help: "Requests rejected by the submission rate limiter",
	})

	registry.MustRegister(requestDuration, requestTotal, formsSubmitted, emailsSent, emailsFailed, rateLimited)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		formsSubmitted:  formsSubmitted,
		emailsSent:      emailsSent,
		emailsFailed:    emailsFailed,
		rateLimited:     rateLimited,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one handled request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if s == nil {
		return
	}
	labels := prometheus.Labels{"method": method, "path": path, "status": strconv.Itoa(status)}
	s.requestDuration.With(labels).Observe(duration.Seconds())
	s.requestTotal.With(labels).Inc()
}

// FormSubmitted counts one persisted submission of the given form type.
func (s *MetricsService) FormSubmitted(form string) {
	if s == nil {
		return
	}
	s.formsSubmitted.WithLabelValues(form).Inc()
}

// EmailSent counts one delivered notification of the given kind.
func (s *MetricsService) EmailSent(kind string) {
	if s == nil {
		return
	}
	s.emailsSent.WithLabelValues(kind).Inc()
}

// EmailFailed counts one failed notification of the given kind.
func (s *MetricsService) EmailFailed(kind string) {
	if s == nil {
		return
	}
	s.emailsFailed.WithLabelValues(kind).Inc()
}

// RateLimited counts one request rejected by the rate limiter.
func (s *MetricsService) RateLimited() {
	if s == nil {
		return
	}
	s.rateLimited.Inc()
}
