package notify

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"orderflow/internal/entities"
	"orderflow/pkg/logger"
)

const (
	sendBufferSize = 256
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxFrameSize   = 512
)

// Session is one authenticated WebSocket connection. Its fixed channels are
// derived from the actor's role at connect time; per-order channels come and
// go through control frames.
type Session struct {
	conn     *websocket.Conn
	send     chan Message
	actor    entities.Actor
	registry *Registry
	log      logger.Logger

	// channels is written under the registry mutex.
	channels map[entities.Channel]struct{}
}

// NewSession registers the connection and starts its pumps. The caller has
// already authenticated the actor; unauthenticated connections never get
// this far.
func NewSession(registry *Registry, conn *websocket.Conn, actor entities.Actor) *Session {
	session := &Session{
		conn:     conn,
		send:     make(chan Message, sendBufferSize),
		actor:    actor,
		registry: registry,
		log: registry.log.With(
			logger.NewField("identity", actor.ID),
			logger.NewField("role", actor.Role.String()),
		),
		channels: fixedChannels(actor),
	}

	registry.register(session)

	go session.writePump()
	go session.readPump()

	return session
}

func fixedChannels(actor entities.Actor) map[entities.Channel]struct{} {
	channels := map[entities.Channel]struct{}{
		entities.UserChannel(actor.ID): {},
	}
	switch actor.Role {
	case entities.RoleRestaurant:
		channels[entities.RestaurantChannel(actor.ID)] = struct{}{}
	case entities.RoleDelivery:
		channels[entities.DeliveryPoolChannel()] = struct{}{}
	}
	return channels
}

func (s *Session) readPump() {
	defer func() {
		s.registry.unregister(s)
		_ = s.conn.Close()
	}()

	s.conn.SetReadLimit(maxFrameSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.Warn("websocket read error",
					logger.NewField("error", err),
				)
			}
			return
		}

		var frame controlFrame
		if err := json.Unmarshal(raw, &frame); err != nil || frame.OrderID == "" {
			s.log.Warn("bad control frame")
			continue
		}

		switch frame.Action {
		case actionSubscribe:
			s.registry.Subscribe(s, frame.OrderID)
		case actionUnsubscribe:
			s.registry.Unsubscribe(s, frame.OrderID)
		default:
			s.log.Warn("unknown control action",
				logger.NewField("action", frame.Action),
			)
		}
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := s.conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
