// internal/httpserver/events.go
//
// Toast push channel. GET /game/events upgrades to a WebSocket; every toast a
// player's session produces is broadcast to all of that player's sockets as
//
//	{"type":"toast","title":"...","description":"..."}
//
// A {"type":"ready"} message is sent once the socket is registered. The
// channel is one-way: anything the client sends is read and discarded.

package httpserver

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/numguess/internal/notify"
)

const (
	// Time allowed to write a message to a client.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from a client.
	pongWait = 60 * time.Second

	// Interval at which pings are sent; must be less than pongWait.
	pingInterval = 50 * time.Second

	// Clients only send control frames.
	maxMessageSize = 512

	// Buffered outgoing messages per socket before it is dropped as too slow.
	sendBuffer = 16
)

type event struct {
	Type        string `json:"type"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// wsClient is one WebSocket connection belonging to a player.
type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// hub tracks open sockets per player.
type hub struct {
	mu      sync.Mutex
	clients map[string]map[*wsClient]struct{} // keyed by player ID
}

func newHub() *hub {
	return &hub{clients: make(map[string]map[*wsClient]struct{})}
}

// notifier returns a Notifier that broadcasts to the player's sockets.
func (h *hub) notifier(playerID string) notify.Notifier {
	return notify.Func(func(title, description string) {
		h.broadcast(playerID, event{Type: "toast", Title: title, Description: description})
	})
}

func (h *hub) register(playerID string, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[playerID]
	if !ok {
		set = make(map[*wsClient]struct{})
		h.clients[playerID] = set
	}
	set[c] = struct{}{}
}

func (h *hub) unregister(playerID string, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(playerID, c)
}

// removeLocked drops c and closes its send channel, which stops writePump.
func (h *hub) removeLocked(playerID string, c *wsClient) {
	set, ok := h.clients[playerID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, playerID)
	}
}

// broadcast queues ev for every socket of playerID. A socket whose buffer is
// full is dropped instead of blocking the game.
func (h *hub) broadcast(playerID string, ev event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[playerID] {
		select {
		case c.send <- msg:
		default:
			h.removeLocked(playerID, c)
		}
	}
}

// closeAll drops every socket (used on shutdown).
func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, set := range h.clients {
		for c := range set {
			h.removeLocked(id, c)
		}
	}
}

// handleEvents upgrades the request and serves the player's toast stream.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: s.checkOrigin}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an HTTP error.
		hlog.FromRequest(r).Debug().Err(err).Msg("websocket upgrade")
		return
	}

	id := playerID(r.Context())
	c := &wsClient{conn: conn, send: make(chan []byte, sendBuffer)}
	ready, _ := json.Marshal(event{Type: "ready"})
	c.send <- ready
	s.hub.register(id, c)

	go c.writePump()
	c.readPump()
	s.hub.unregister(id, c)
}

// checkOrigin accepts same-host requests and the configured client origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == s.cfg.ClientOrigin {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}

// readPump discards client messages and keeps the read deadline fresh
// through pongs; it returns when the connection fails or closes.
func (c *wsClient) readPump() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump sends queued messages and periodic pings until send is closed.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
