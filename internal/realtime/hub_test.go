package realtime

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

// recorder is an in-memory sender capturing everything the hub emits.
type recorder struct {
	events []recorded
}

type recorded struct {
	event string
	data  any
}

func (r *recorder) Send(event string, data any) error {
	r.events = append(r.events, recorded{event: event, data: data})
	return nil
}

func (r *recorder) last() recorded {
	return r.events[len(r.events)-1]
}

func (r *recorder) byEvent(event string) []recorded {
	var out []recorded
	for _, e := range r.events {
		if e.event == event {
			out = append(out, e)
		}
	}
	return out
}

func raw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return b
}

func newTestHub() *Hub {
	return NewHub(zerolog.Nop())
}

func TestHub_JoinBroadcastsToEveryone(t *testing.T) {
	hub := newTestHub()
	a, b := &recorder{}, &recorder{}
	sa := hub.connect(a)
	hub.connect(b)

	hub.handle(sa, frame{Event: EventJoin, Data: raw(t, map[string]string{"name": "Jane"})})

	for _, r := range []*recorder{a, b} {
		got := r.byEvent("user-joined")
		if len(got) != 1 {
			t.Fatalf("expected one user-joined, got %d", len(got))
		}
		notice := got[0].data.(presenceNotice)
		if notice.Name != "Jane" || notice.Message != "Jane joined the chat" {
			t.Fatalf("unexpected notice: %+v", notice)
		}
	}
}

func TestHub_SendMessageReachesSenderToo(t *testing.T) {
	hub := newTestHub()
	a, b := &recorder{}, &recorder{}
	sa := hub.connect(a)
	hub.connect(b)

	hub.handle(sa, frame{Event: EventSendMessage, Data: raw(t, map[string]string{
		"userId": "user_1", "userName": "Jane", "message": "standup in 5",
	})})

	for _, r := range []*recorder{a, b} {
		got := r.byEvent("receive-message")
		if len(got) != 1 {
			t.Fatalf("expected one receive-message, got %d", len(got))
		}
		msg := got[0].data.(chatMessageOut)
		if msg.UserID != "user_1" || msg.Message != "standup in 5" {
			t.Fatalf("unexpected message: %+v", msg)
		}
		if msg.ID == "" || msg.Timestamp == "" {
			t.Fatalf("expected generated id and timestamp: %+v", msg)
		}
	}
}

func TestHub_TypingExcludesSender(t *testing.T) {
	hub := newTestHub()
	a, b := &recorder{}, &recorder{}
	sa := hub.connect(a)
	hub.connect(b)

	hub.handle(sa, frame{Event: EventTyping, Data: raw(t, map[string]any{
		"userName": "Jane", "isTyping": true,
	})})

	if len(a.byEvent("user-typing")) != 0 {
		t.Fatalf("sender should not receive its own typing notice")
	}
	got := b.byEvent("user-typing")
	if len(got) != 1 {
		t.Fatalf("expected one user-typing, got %d", len(got))
	}
	p := got[0].data.(typingPayload)
	if p.UserName != "Jane" || !p.IsTyping {
		t.Fatalf("unexpected payload: %+v", p)
	}
}

func TestHub_VideoJoinBroadcastsPresence(t *testing.T) {
	hub := newTestHub()
	a, b := &recorder{}, &recorder{}
	sa := hub.connect(a)
	hub.connect(b)

	hub.handle(sa, frame{Event: EventVideoJoin, Data: raw(t, map[string]string{
		"id": "user_1", "name": "Jane",
	})})

	got := b.byEvent("online-users")
	if len(got) != 1 {
		t.Fatalf("expected one online-users broadcast, got %d", len(got))
	}
	users := got[0].data.([]onlineUser)
	if len(users) != 1 || users[0].ID != "user_1" || users[0].Name != "Jane" {
		t.Fatalf("unexpected presence list: %+v", users)
	}
}

func TestHub_OfferForwardedOnlyToTarget(t *testing.T) {
	hub := newTestHub()
	jane, bob, carol := &recorder{}, &recorder{}, &recorder{}
	sJane := hub.connect(jane)
	sBob := hub.connect(bob)
	hub.connect(carol)

	hub.handle(sJane, frame{Event: EventVideoJoin, Data: raw(t, map[string]string{"id": "jane", "name": "Jane"})})
	hub.handle(sBob, frame{Event: EventVideoJoin, Data: raw(t, map[string]string{"id": "bob", "name": "Bob"})})

	offer := map[string]string{"type": "offer", "sdp": "v=0..."}
	hub.handle(sJane, frame{Event: EventVideoOffer, Data: raw(t, map[string]any{
		"to": "bob", "offer": offer,
	})})

	got := bob.byEvent("video-offer")
	if len(got) != 1 {
		t.Fatalf("expected one forwarded offer, got %d", len(got))
	}
	out := got[0].data.(videoOfferOut)
	if out.From != "jane" || out.FromName != "Jane" {
		t.Fatalf("unexpected sender identity: %+v", out)
	}
	var decoded map[string]string
	if err := json.Unmarshal(out.Offer, &decoded); err != nil || decoded["sdp"] != "v=0..." {
		t.Fatalf("offer payload not forwarded verbatim: %s", out.Offer)
	}

	if len(jane.byEvent("video-offer")) != 0 || len(carol.byEvent("video-offer")) != 0 {
		t.Fatalf("offer leaked beyond target")
	}
}

func TestHub_OfferToUnknownTargetDropped(t *testing.T) {
	hub := newTestHub()
	jane := &recorder{}
	sJane := hub.connect(jane)
	hub.handle(sJane, frame{Event: EventVideoJoin, Data: raw(t, map[string]string{"id": "jane", "name": "Jane"})})

	hub.handle(sJane, frame{Event: EventVideoOffer, Data: raw(t, map[string]any{
		"to": "ghost", "offer": map[string]string{"type": "offer"},
	})})

	if len(jane.byEvent("video-offer")) != 0 {
		t.Fatalf("expected offer to unknown target to be dropped")
	}
}

func TestHub_LeaveVideoAnnouncesDeparture(t *testing.T) {
	hub := newTestHub()
	jane, bob := &recorder{}, &recorder{}
	sJane := hub.connect(jane)
	hub.connect(bob)

	hub.handle(sJane, frame{Event: EventVideoJoin, Data: raw(t, map[string]string{"id": "jane", "name": "Jane"})})
	hub.handle(sJane, frame{Event: EventLeaveVideo})

	left := bob.byEvent("user-left-video")
	if len(left) != 1 {
		t.Fatalf("expected one user-left-video, got %d", len(left))
	}
	if left[0].data.(userLeftVideo).UserID != "jane" {
		t.Fatalf("unexpected departure payload: %+v", left[0].data)
	}

	presence := bob.byEvent("online-users")
	final := presence[len(presence)-1].data.([]onlineUser)
	if len(final) != 0 {
		t.Fatalf("expected empty presence after leave, got %+v", final)
	}
}

func TestHub_DisconnectBehavesLikeExplicitLeave(t *testing.T) {
	hub := newTestHub()
	jane, bob := &recorder{}, &recorder{}
	sJane := hub.connect(jane)
	hub.connect(bob)

	hub.handle(sJane, frame{Event: EventJoin, Data: raw(t, map[string]string{"name": "Jane"})})
	hub.handle(sJane, frame{Event: EventVideoJoin, Data: raw(t, map[string]string{"id": "jane", "name": "Jane"})})

	hub.disconnect(sJane)

	left := bob.byEvent("user-left")
	if len(left) != 1 {
		t.Fatalf("expected one user-left, got %d", len(left))
	}
	if left[0].data.(presenceNotice).Message != "Jane left the chat" {
		t.Fatalf("unexpected notice: %+v", left[0].data)
	}
	if len(bob.byEvent("user-left-video")) != 1 {
		t.Fatalf("expected video departure broadcast on disconnect")
	}

	// The departed session must no longer receive anything.
	before := len(jane.events)
	hub.handle(hub.connect(bob), frame{Event: EventJoin, Data: raw(t, map[string]string{"name": "Bob"})})
	if len(jane.events) != before {
		t.Fatalf("disconnected session still receiving broadcasts")
	}
}

func TestHub_MalformedPayloadDropped(t *testing.T) {
	hub := newTestHub()
	jane := &recorder{}
	sJane := hub.connect(jane)

	hub.handle(sJane, frame{Event: EventJoin, Data: json.RawMessage(`not-json`)})

	if len(jane.events) != 0 {
		t.Fatalf("expected malformed frame to be dropped, got %+v", jane.events)
	}
}
