// Package realtime implements the chat and call-signaling relay. It forwards
// frames between connected browsers and keeps an in-process presence map;
// nothing is persisted, everything resets on restart, and the presence map is
// never consulted for identity or ownership decisions — those stay with the
// authenticated HTTP surface.
package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/devsquad/devlog-api/internal/api/metrics"
)

// Relay event names, shared with the frontend.
const (
	EventJoin         = "join"
	EventSendMessage  = "send-message"
	EventTyping       = "typing"
	EventVideoJoin    = "video-join"
	EventVideoOffer   = "video-offer"
	EventVideoAnswer  = "video-answer"
	EventIceCandidate = "ice-candidate"
	EventLeaveVideo   = "leave-video"

	eventUserJoined     = "user-joined"
	eventUserLeft       = "user-left"
	eventReceiveMessage = "receive-message"
	eventUserTyping     = "user-typing"
	eventOnlineUsers    = "online-users"
	eventUserLeftVideo  = "user-left-video"
)

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// sender is one connected peer's outbound half. The websocket implementation
// lives in handler.go; tests substitute an in-memory recorder.
type sender interface {
	Send(event string, data any) error
}

// session is the per-connection state: what this connection announced about
// itself. It is ephemeral by design.
type session struct {
	out       sender
	chatName  string
	videoID   string
	videoName string
}

// Hub relays frames between sessions. All maps are guarded by mu; sends
// happen outside the lock so one slow peer cannot stall the hub.
type Hub struct {
	mu       sync.Mutex
	sessions map[*session]struct{}
	log      zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		sessions: make(map[*session]struct{}),
		log:      log,
	}
}

// --- Incoming payloads ---

type joinPayload struct {
	Name string `json:"name"`
}

type chatMessagePayload struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Message  string `json:"message"`
}

type typingPayload struct {
	UserName string `json:"userName"`
	IsTyping bool   `json:"isTyping"`
}

type videoJoinPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// signalPayload carries WebRTC session descriptions and ICE candidates. The
// relay forwards them verbatim; it never inspects the SDP/candidate body.
type signalPayload struct {
	To        string          `json:"to"`
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

// --- Outgoing payloads ---

type presenceNotice struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

type chatMessageOut struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type onlineUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type videoOfferOut struct {
	From     string          `json:"from"`
	FromName string          `json:"fromName"`
	Offer    json.RawMessage `json:"offer"`
}

type videoAnswerOut struct {
	From   string          `json:"from"`
	Answer json.RawMessage `json:"answer"`
}

type iceCandidateOut struct {
	From      string          `json:"from"`
	Candidate json.RawMessage `json:"candidate"`
}

type userLeftVideo struct {
	UserID string `json:"userId"`
}

// connect registers a new session.
func (h *Hub) connect(out sender) *session {
	s := &session{out: out}
	h.mu.Lock()
	h.sessions[s] = struct{}{}
	h.mu.Unlock()

	metrics.RelayConnections.Inc()
	return s
}

// disconnect removes the session and announces its departure from the chat
// room and the video lobby, mirroring an explicit leave.
func (h *Hub) disconnect(s *session) {
	h.mu.Lock()
	delete(h.sessions, s)
	chatName, videoID := s.chatName, s.videoID
	h.mu.Unlock()

	metrics.RelayConnections.Dec()

	if chatName != "" {
		h.broadcast(eventUserLeft, presenceNotice{
			Name:    chatName,
			Message: chatName + " left the chat",
		}, nil)
	}
	if videoID != "" {
		h.broadcast(eventUserLeftVideo, userLeftVideo{UserID: videoID}, nil)
		h.broadcastOnlineUsers()
	}
}

// handle dispatches one incoming frame. Malformed payloads are dropped with
// a debug log; the relay gives no delivery or ordering guarantees.
func (h *Hub) handle(s *session, f frame) {
	metrics.RelayEventsTotal.WithLabelValues(f.Event).Inc()

	switch f.Event {
	case EventJoin:
		var p joinPayload
		if !h.decode(f, &p) || p.Name == "" {
			return
		}
		h.mu.Lock()
		s.chatName = p.Name
		h.mu.Unlock()
		h.broadcast(eventUserJoined, presenceNotice{
			Name:    p.Name,
			Message: p.Name + " joined the chat",
		}, nil)

	case EventSendMessage:
		var p chatMessagePayload
		if !h.decode(f, &p) {
			return
		}
		h.broadcast(eventReceiveMessage, chatMessageOut{
			ID:        uuid.NewString(),
			UserID:    p.UserID,
			UserName:  p.UserName,
			Message:   p.Message,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}, nil)

	case EventTyping:
		var p typingPayload
		if !h.decode(f, &p) {
			return
		}
		h.broadcast(eventUserTyping, p, s)

	case EventVideoJoin:
		var p videoJoinPayload
		if !h.decode(f, &p) || p.ID == "" {
			return
		}
		h.mu.Lock()
		s.videoID = p.ID
		s.videoName = p.Name
		h.mu.Unlock()
		h.broadcastOnlineUsers()

	case EventVideoOffer:
		var p signalPayload
		if !h.decode(f, &p) {
			return
		}
		fromID, fromName := h.videoIdentity(s)
		h.forward(p.To, EventVideoOffer, videoOfferOut{From: fromID, FromName: fromName, Offer: p.Offer})

	case EventVideoAnswer:
		var p signalPayload
		if !h.decode(f, &p) {
			return
		}
		fromID, _ := h.videoIdentity(s)
		h.forward(p.To, EventVideoAnswer, videoAnswerOut{From: fromID, Answer: p.Answer})

	case EventIceCandidate:
		var p signalPayload
		if !h.decode(f, &p) {
			return
		}
		fromID, _ := h.videoIdentity(s)
		h.forward(p.To, EventIceCandidate, iceCandidateOut{From: fromID, Candidate: p.Candidate})

	case EventLeaveVideo:
		h.mu.Lock()
		videoID := s.videoID
		s.videoID = ""
		s.videoName = ""
		h.mu.Unlock()
		if videoID != "" {
			h.broadcast(eventUserLeftVideo, userLeftVideo{UserID: videoID}, nil)
			h.broadcastOnlineUsers()
		}

	default:
		h.log.Debug().Str("event", f.Event).Msg("unknown relay event dropped")
	}
}

func (h *Hub) videoIdentity(s *session) (id, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return s.videoID, s.videoName
}

func (h *Hub) decode(f frame, dest any) bool {
	if err := json.Unmarshal(f.Data, dest); err != nil {
		h.log.Debug().Err(err).Str("event", f.Event).Msg("malformed relay payload dropped")
		return false
	}
	return true
}

// broadcast sends the event to every session except the excluded one.
func (h *Hub) broadcast(event string, data any, except *session) {
	h.mu.Lock()
	targets := make([]sender, 0, len(h.sessions))
	for s := range h.sessions {
		if s == except {
			continue
		}
		targets = append(targets, s.out)
	}
	h.mu.Unlock()

	for _, out := range targets {
		if err := out.Send(event, data); err != nil {
			h.log.Debug().Err(err).Str("event", event).Msg("relay send failed")
		}
	}
}

// forward sends the event to the single session that announced the target
// video user id. Unknown targets are dropped silently; the relay is
// best-effort and the caller gets no failure signal.
func (h *Hub) forward(targetVideoID string, event string, data any) {
	if targetVideoID == "" {
		return
	}

	h.mu.Lock()
	var out sender
	for s := range h.sessions {
		if s.videoID == targetVideoID {
			out = s.out
			break
		}
	}
	h.mu.Unlock()

	if out == nil {
		h.log.Debug().Str("event", event).Str("to", targetVideoID).Msg("relay target not present, dropped")
		return
	}
	if err := out.Send(event, data); err != nil {
		h.log.Debug().Err(err).Str("event", event).Msg("relay send failed")
	}
}

func (h *Hub) broadcastOnlineUsers() {
	h.mu.Lock()
	users := make([]onlineUser, 0, len(h.sessions))
	for s := range h.sessions {
		if s.videoID != "" {
			users = append(users, onlineUser{ID: s.videoID, Name: s.videoName})
		}
	}
	h.mu.Unlock()

	h.broadcast(eventOnlineUsers, users, nil)
}
