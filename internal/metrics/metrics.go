// Package metrics exposes Prometheus collectors for social actions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RelationToggles counts toggle outcomes by relation kind.
	RelationToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socially_relation_toggles_total",
		Help: "Relation toggles by relation kind and outcome",
	}, []string{"relation", "outcome"})

	// NotificationsCreated counts notification rows written by type.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socially_notifications_created_total",
		Help: "Notifications created by type",
	}, []string{"type"})

	// ActionFailures counts failed actions by operation and error kind.
	ActionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socially_action_failures_total",
		Help: "Failed actions by operation and error kind",
	}, []string{"operation", "kind"})

	// InvalidationsPublished counts view invalidation hints by sink and result.
	InvalidationsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socially_view_invalidations_total",
		Help: "View invalidation hints by sink and result",
	}, []string{"sink", "result"})
)
