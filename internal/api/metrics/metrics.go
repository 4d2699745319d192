// Package metrics defines all custom Prometheus metrics for the sound
// sharing API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "soundshare"

// SoundsCreatedTotal counts published sounds.
// Label:
//   - category: the category name the sound was filed under
var SoundsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sounds_created_total",
		Help:      "Total number of sounds published, by category.",
	},
	[]string{"category"},
)

// CommentsCreatedTotal counts created comments.
var CommentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_created_total",
		Help:      "Total number of comments created.",
	},
)

// NotificationsPushedTotal counts notification push attempts.
// Label:
//   - result: "delivered", "no_session", or "dropped" (slow consumer)
var NotificationsPushedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_pushed_total",
		Help:      "Total number of notification pushes, labelled by delivery result.",
	},
	[]string{"result"},
)

// WSConnections tracks the number of currently open notification sessions.
var WSConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_connections",
		Help:      "Number of currently connected WebSocket notification sessions.",
	},
)
