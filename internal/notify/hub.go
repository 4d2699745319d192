// Package notify implements the best-effort notification relay: a single
// hub goroutine owns the session registry and all mutations go through its
// channels, so connect, disconnect, and push never race.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sonsdetaville/sounds-api/internal/api/metrics"
)

const pushBuffer = 256

// Notification is the JSON frame delivered to connected clients.
type Notification struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type push struct {
	userID string
	note   Notification
}

// Hub routes notifications to open sessions keyed by user id. A user may
// hold several sessions (multiple devices); every one receives the push.
type Hub struct {
	register   chan *session
	unregister chan *session
	pushes     chan push
	sessions   map[string]map[*session]struct{}
	log        zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		register:   make(chan *session),
		unregister: make(chan *session),
		pushes:     make(chan push, pushBuffer),
		sessions:   make(map[string]map[*session]struct{}),
		log:        log,
	}
}

// Run owns the session registry until ctx is cancelled. It must be running
// before any connection is attached.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for _, set := range h.sessions {
				for s := range set {
					close(s.send)
				}
			}
			return

		case s := <-h.register:
			set, ok := h.sessions[s.userID]
			if !ok {
				set = make(map[*session]struct{})
				h.sessions[s.userID] = set
			}
			set[s] = struct{}{}
			metrics.WSConnections.Inc()
			h.log.Debug().Str("user_id", s.userID).Msg("notification session opened")

		case s := <-h.unregister:
			set, ok := h.sessions[s.userID]
			if !ok {
				continue
			}
			if _, ok := set[s]; !ok {
				continue
			}
			delete(set, s)
			if len(set) == 0 {
				delete(h.sessions, s.userID)
			}
			close(s.send)
			metrics.WSConnections.Dec()
			h.log.Debug().Str("user_id", s.userID).Msg("notification session closed")

		case p := <-h.pushes:
			set, ok := h.sessions[p.userID]
			if !ok {
				metrics.NotificationsPushedTotal.WithLabelValues("no_session").Inc()
				continue
			}
			for s := range set {
				select {
				case s.send <- p.note:
					metrics.NotificationsPushedTotal.WithLabelValues("delivered").Inc()
				default:
					// Slow consumer: drop rather than block the hub.
					metrics.NotificationsPushedTotal.WithLabelValues("dropped").Inc()
				}
			}
		}
	}
}

// Push enqueues a notification for the given user. Best-effort: if the hub
// queue is full the notification is dropped.
func (h *Hub) Push(userID, message string, code int) {
	select {
	case h.pushes <- push{userID: userID, note: Notification{Message: message, Code: code}}:
	default:
		metrics.NotificationsPushedTotal.WithLabelValues("dropped").Inc()
		h.log.Warn().Str("user_id", userID).Msg("notification queue full, push dropped")
	}
}
