// Package metrics defines and registers all custom Prometheus metrics for the
// catalogue API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalogue"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "conflict", or "failure"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts session tokens issued.
// Label:
//   - grant: "login", "register", or "refresh"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of session tokens issued, by grant type.",
	},
	[]string{"grant"},
)

// ReviewsAttachedTotal counts review creations.
// Label:
//   - result: "linked" (appended to a movie) or "orphaned" (movie missing)
var ReviewsAttachedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_attached_total",
		Help:      "Total number of reviews created, by link outcome.",
	},
	[]string{"result"},
)

// OrphanedReviews tracks the orphan count observed by the last
// reconciliation sweep.
var OrphanedReviews = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "orphaned_reviews",
		Help:      "Number of reviews not referenced by any movie at the last sweep.",
	},
)
