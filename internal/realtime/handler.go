package realtime

import (
	"errors"
	"io"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/net/websocket"
)

// Handler returns the echo handler serving the relay websocket endpoint.
func Handler(hub *Hub) echo.HandlerFunc {
	return echo.WrapHandler(websocket.Handler(hub.serve))
}

// wsSender serializes writes to a single websocket connection. Broadcasts
// from different goroutines would otherwise interleave frames.
type wsSender struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

type outFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

func (s *wsSender) Send(event string, data any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return websocket.JSON.Send(s.conn, outFrame{Event: event, Data: data})
}

// serve runs one connection's read loop until the peer goes away.
func (h *Hub) serve(conn *websocket.Conn) {
	s := h.connect(&wsSender{conn: conn})
	defer h.disconnect(s)

	for {
		var f frame
		if err := websocket.JSON.Receive(conn, &f); err != nil {
			if !errors.Is(err, io.EOF) {
				h.log.Debug().Err(err).Msg("relay connection closed")
			}
			return
		}
		h.handle(s, f)
	}
}
