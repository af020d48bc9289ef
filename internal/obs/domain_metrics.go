package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// FormRequestsTotal counts outbound payment form construction outcomes.
	FormRequestsTotal *prometheus.CounterVec
	// NotificationsTotal counts processed payment notifications by outcome.
	NotificationsTotal *prometheus.CounterVec
	// RedirectsTotal counts processed payment redirects by outcome.
	RedirectsTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		FormRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hpp_form_requests_total",
			Help:      "Count of payment form construction outcomes.",
		}, []string{"result"})
		NotificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hpp_notifications_total",
			Help:      "Count of processed payment notifications by outcome.",
		}, []string{"result"})
		RedirectsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hpp_redirects_total",
			Help:      "Count of processed payment redirects by outcome.",
		}, []string{"result"})

		mustRegisterCollector(reg, FormRequestsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				FormRequestsTotal = v
			}
		})
		mustRegisterCollector(reg, NotificationsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				NotificationsTotal = v
			}
		})
		mustRegisterCollector(reg, RedirectsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				RedirectsTotal = v
			}
		})
	})
}

// CountFormRequest increments the form construction counter when metrics are enabled.
func CountFormRequest(result string) {
	if FormRequestsTotal != nil {
		FormRequestsTotal.WithLabelValues(result).Inc()
	}
}

// CountNotification increments the notification counter when metrics are enabled.
func CountNotification(result string) {
	if NotificationsTotal != nil {
		NotificationsTotal.WithLabelValues(result).Inc()
	}
}

// CountRedirect increments the redirect counter when metrics are enabled.
func CountRedirect(result string) {
	if RedirectsTotal != nil {
		RedirectsTotal.WithLabelValues(result).Inc()
	}
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
