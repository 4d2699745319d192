package notify

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	sendBuffer = 16
)

// session binds one WebSocket connection to a user id.
type session struct {
	userID string
	hub    *Hub
	conn   *websocket.Conn
	send   chan Notification
}

// Attach registers a connection with the hub and starts its read and write
// pumps. The connection is owned by the session from here on.
func (h *Hub) Attach(conn *websocket.Conn, userID string) {
	s := &session{
		userID: userID,
		hub:    h,
		conn:   conn,
		send:   make(chan Notification, sendBuffer),
	}
	h.register <- s

	go s.writePump()
	go s.readPump()
}

// readPump drains inbound frames so control messages are processed; the
// relay itself is push-only. Exits on any read error and unregisters.
func (s *session) readPump() {
	defer func() {
		s.hub.unregister <- s
		_ = s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.hub.log.Debug().Err(err).Str("user_id", s.userID).Msg("websocket read error")
			}
			return
		}
	}
}

// writePump serializes notifications to the connection and keeps it alive
// with periodic pings.
func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case note, ok := <-s.send:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				// Hub closed the channel.
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteJSON(note); err != nil {
				return
			}

		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
