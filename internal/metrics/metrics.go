package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registerAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_register_attempts_total",
		Help: "Number of registration attempts grouped by status.",
	}, []string{"status"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_login_attempts_total",
		Help: "Number of login attempts grouped by status.",
	}, []string{"status"})

	postOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_post_operations_total",
		Help: "Post and comment operations grouped by operation and status.",
	}, []string{"op", "status"})
)

// IncRegister increments the registration counter.
func IncRegister(status string) {
	registerAttempts.WithLabelValues(status).Inc()
}

// IncLogin increments the login counter.
func IncLogin(status string) {
	loginAttempts.WithLabelValues(status).Inc()
}

// IncPostOp increments the post/comment operation counter.
func IncPostOp(op, status string) {
	postOperations.WithLabelValues(op, status).Inc()
}
