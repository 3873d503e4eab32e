package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/invokesim/invoke-server-go/internal/game"
	"github.com/invokesim/invoke-server-go/internal/game/core"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSMessage is the envelope for every message in both directions. Type selects
// the variant; the other fields carry its payload.
type WSMessage struct {
	Type    string           `json:"type"`
	MatchID string           `json:"match_id,omitempty"`
	Pid     int              `json:"pid,omitempty"`
	Seed    int64            `json:"seed,omitempty"`
	Action  *game.WireAction `json:"action,omitempty"`
	View    *game.GameView   `json:"view,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// Client is one websocket connection bound to a seat in a match.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan WSMessage

	mu      sync.Mutex
	matchID string
	pid     core.Pid
}

func (c *Client) seat() (string, core.Pid) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.matchID, c.pid
}

func (c *Client) sit(matchID string, pid core.Pid) {
	c.mu.Lock()
	c.matchID = matchID
	c.pid = pid
	c.mu.Unlock()
}

// Hub tracks connected clients and routes their messages to the engine.
type Hub struct {
	engine game.Engine
	logger *zap.Logger

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	inbound    chan clientMessage
}

type clientMessage struct {
	client *Client
	msg    WSMessage
}

func newHub(engine game.Engine, logger *zap.Logger) *Hub {
	return &Hub{
		engine:     engine,
		logger:     logger,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan clientMessage, 64),
	}
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			if h.logger != nil {
				h.logger.Debug("client connected", zap.Int("clients", len(h.clients)))
			}
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				if h.logger != nil {
					h.logger.Debug("client disconnected", zap.Int("clients", len(h.clients)))
				}
			}
		case in := <-h.inbound:
			h.handle(in.client, in.msg)
		}
	}
}

func (h *Hub) handle(c *Client, msg WSMessage) {
	switch msg.Type {
	case "create_match":
		h.handleCreate(c, msg)
	case "join_match":
		h.handleJoin(c, msg)
	case "action":
		h.handleAction(c, msg)
	case "view":
		h.handleView(c, msg)
	default:
		c.reply(WSMessage{Type: "error", Error: "unknown message type: " + msg.Type})
	}
}

func (h *Hub) handleCreate(c *Client, msg WSMessage) {
	seed := msg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	matchID, err := h.engine.StartMatch(seed)
	if err != nil {
		c.reply(WSMessage{Type: "error", Error: err.Error()})
		return
	}
	c.sit(matchID, core.P1)
	c.reply(WSMessage{Type: "match_created", MatchID: matchID, Pid: int(core.P1)})
	h.broadcastViews(matchID)
}

func (h *Hub) handleJoin(c *Client, msg WSMessage) {
	pid := core.Pid(msg.Pid)
	if pid != core.P1 && pid != core.P2 {
		pid = core.P2
	}
	if _, _, err := h.engine.WaitingFor(msg.MatchID); err != nil {
		c.reply(WSMessage{Type: "error", MatchID: msg.MatchID, Error: err.Error()})
		return
	}
	c.sit(msg.MatchID, pid)
	c.reply(WSMessage{Type: "match_joined", MatchID: msg.MatchID, Pid: int(pid)})
	view, err := h.engine.View(msg.MatchID, pid)
	if err != nil {
		c.reply(WSMessage{Type: "error", MatchID: msg.MatchID, Error: err.Error()})
		return
	}
	c.reply(WSMessage{Type: "view", MatchID: msg.MatchID, View: view})
}

func (h *Hub) handleAction(c *Client, msg WSMessage) {
	matchID, pid := c.seat()
	if matchID == "" {
		c.reply(WSMessage{Type: "error", Error: "not in a match"})
		return
	}
	if msg.Action == nil {
		c.reply(WSMessage{Type: "error", MatchID: matchID, Error: "action message without action"})
		return
	}
	action, err := game.DecodeAction(*msg.Action)
	if err != nil {
		c.reply(WSMessage{Type: "error", MatchID: matchID, Error: err.Error()})
		return
	}
	if err := h.engine.SubmitAction(matchID, pid, action); err != nil {
		c.reply(WSMessage{Type: "error", MatchID: matchID, Error: err.Error()})
		return
	}
	h.broadcastViews(matchID)
}

func (h *Hub) handleView(c *Client, msg WSMessage) {
	matchID, pid := c.seat()
	if msg.MatchID != "" {
		matchID = msg.MatchID
	}
	if matchID == "" {
		c.reply(WSMessage{Type: "error", Error: "not in a match"})
		return
	}
	view, err := h.engine.View(matchID, pid)
	if err != nil {
		c.reply(WSMessage{Type: "error", MatchID: matchID, Error: err.Error()})
		return
	}
	c.reply(WSMessage{Type: "view", MatchID: matchID, View: view})
}

// broadcastViews pushes a fresh per-seat view to every client sitting in the
// match. Each seat gets its own view so hidden information stays hidden.
func (h *Hub) broadcastViews(matchID string) {
	for client := range h.clients {
		id, pid := client.seat()
		if id != matchID {
			continue
		}
		view, err := h.engine.View(matchID, pid)
		if err != nil {
			client.reply(WSMessage{Type: "error", MatchID: matchID, Error: err.Error()})
			continue
		}
		client.reply(WSMessage{Type: "view", MatchID: matchID, View: view})
	}
}

// reply queues a message, dropping it if the client's send buffer is full.
func (c *Client) reply(msg WSMessage) {
	select {
	case c.send <- msg:
	default:
		if c.hub.logger != nil {
			c.hub.logger.Warn("dropping message to slow client", zap.String("type", msg.Type))
		}
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("websocket upgrade failed", zap.Error(err))
		}
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan WSMessage, 64),
	}
	s.hub.register <- client

	go client.writePump(s.cfg.WriteTimeout)
	go client.readPump(s.cfg.MaxMessageSize, s.cfg.PongTimeout)
}

func (c *Client) readPump(maxMessageSize int64, pongTimeout time.Duration) {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	if maxMessageSize > 0 {
		c.conn.SetReadLimit(maxMessageSize)
	}
	if pongTimeout > 0 {
		c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
		c.conn.SetPongHandler(func(string) error {
			return c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
		})
	}

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				if c.hub.logger != nil {
					c.hub.logger.Debug("websocket read error", zap.Error(err))
				}
			}
			return
		}
		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.reply(WSMessage{Type: "error", Error: "malformed message: " + err.Error()})
			continue
		}
		c.hub.inbound <- clientMessage{client: c, msg: msg}
	}
}

func (c *Client) writePump(writeTimeout time.Duration) {
	pingInterval := 30 * time.Second
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if writeTimeout > 0 {
				c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			}
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			if writeTimeout > 0 {
				c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
