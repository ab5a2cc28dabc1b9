package notify

import (
	"context"
	"sync"

	"orderflow/internal/entities"
	"orderflow/pkg/logger"
)

type registryLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

// Registry is the connection registry of the broadcaster. It is constructed
// at service start and passed by handle to the WebSocket handler; there is no
// package-level session state.
type Registry struct {
	log logger.Logger

	mu        sync.RWMutex
	sessions  map[*Session]struct{}
	byChannel map[entities.Channel]map[*Session]struct{}
}

func NewRegistry(log registryLogger) *Registry {
	return &Registry{
		log:       log.With(),
		sessions:  make(map[*Session]struct{}),
		byChannel: make(map[entities.Channel]map[*Session]struct{}),
	}
}

// register adds the session and joins its fixed channels: its identity
// channel, plus the restaurant channel or the shared delivery pool by role.
func (r *Registry) register(session *Session) {
	r.mu.Lock()
	r.sessions[session] = struct{}{}
	for channel := range session.channels {
		r.joinLocked(session, channel)
	}
	count := len(r.sessions)
	r.mu.Unlock()

	ConnectedSessions.Set(float64(count))
	r.log.Info("session connected",
		logger.NewField("identity", session.actor.ID),
		logger.NewField("role", session.actor.Role.String()),
		logger.NewField("sessions", count),
	)
}

func (r *Registry) unregister(session *Session) {
	r.mu.Lock()
	if _, ok := r.sessions[session]; !ok {
		r.mu.Unlock()
		return
	}
	delete(r.sessions, session)
	for channel := range session.channels {
		r.leaveLocked(session, channel)
	}
	close(session.send)
	count := len(r.sessions)
	r.mu.Unlock()

	ConnectedSessions.Set(float64(count))
	r.log.Info("session disconnected",
		logger.NewField("identity", session.actor.ID),
		logger.NewField("sessions", count),
	)
}

// Subscribe joins an ad hoc per-order channel for a session tracking one
// order. Fixed channels cannot be joined this way.
func (r *Registry) Subscribe(session *Session, orderID string) {
	channel := entities.OrderChannel(orderID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session]; !ok {
		return
	}
	session.channels[channel] = struct{}{}
	r.joinLocked(session, channel)
}

func (r *Registry) Unsubscribe(session *Session, orderID string) {
	channel := entities.OrderChannel(orderID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := session.channels[channel]; !ok {
		return
	}
	delete(session.channels, channel)
	r.leaveLocked(session, channel)
}

// Publish routes each event to the sessions subscribed to its channels,
// at most once per session even when several channels of one event overlap.
// A session with a full send buffer is skipped, not waited on: a slow or
// gone client re-fetches on reconnect, the persisted order is the source of
// truth.
func (r *Registry) Publish(_ context.Context, events []entities.OrderEvent) {
	for _, event := range events {
		EventsPublishedTotal.WithLabelValues(string(event.Kind)).Inc()
		message := newMessage(event)

		r.mu.RLock()
		targets := make(map[*Session]struct{})
		for _, channel := range event.Channels {
			for session := range r.byChannel[channel] {
				targets[session] = struct{}{}
			}
		}
		for session := range targets {
			select {
			case session.send <- message:
			default:
				EventsDroppedTotal.Inc()
				r.log.Warn("send buffer full, dropping event",
					logger.NewField("identity", session.actor.ID),
					logger.NewField("kind", string(event.Kind)),
				)
			}
		}
		r.mu.RUnlock()
	}
}

func (r *Registry) SessionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) joinLocked(session *Session, channel entities.Channel) {
	sessions, ok := r.byChannel[channel]
	if !ok {
		sessions = make(map[*Session]struct{})
		r.byChannel[channel] = sessions
	}
	sessions[session] = struct{}{}
}

func (r *Registry) leaveLocked(session *Session, channel entities.Channel) {
	sessions, ok := r.byChannel[channel]
	if !ok {
		return
	}
	delete(sessions, session)
	if len(sessions) == 0 {
		delete(r.byChannel, channel)
	}
}
