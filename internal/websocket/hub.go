// Package feedws streams check-in feed events to a user's open connections.
package feedws

import (
	"encoding/json"
	"log"

	websocket "github.com/gofiber/contrib/websocket"

	"github.com/NitishV2006/OneOrbit/internal/models"
)

type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan *event
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string
	send   chan []byte
}

type event struct {
	userID  string
	payload feedEvent
}

type feedEvent struct {
	Type    string         `json:"type"`
	CheckIn models.CheckIn `json:"check_in"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *event, 64),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			set, ok := h.clients[client.userID]
			if !ok {
				continue
			}
			if _, exists := set[client]; exists {
				delete(set, client)
				close(client.send)
			}
			if len(set) == 0 {
				delete(h.clients, client.userID)
			}
		case ev := <-h.broadcast:
			h.deliver(ev)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastCheckIn fans a new check-in out to the owning user's open
// connections. Non-blocking: a full hub queue discards the event.
func (h *Hub) BroadcastCheckIn(userID string, checkIn models.CheckIn) {
	select {
	case h.broadcast <- &event{userID: userID, payload: feedEvent{Type: "check_in", CheckIn: checkIn}}:
	default:
	}
}

func (h *Hub) deliver(ev *event) {
	encoded, err := json.Marshal(ev.payload)
	if err != nil {
		log.Printf("feed hub encode event: %v", err)
		return
	}

	set, ok := h.clients[ev.userID]
	if !ok {
		return
	}
	for client := range set {
		select {
		case client.send <- encoded:
		default:
			delete(set, client)
			close(client.send)
		}
	}
	if len(set) == 0 {
		delete(h.clients, ev.userID)
	}
}

// ReadPump drains the connection until it closes. The feed is one-way;
// inbound frames are discarded.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
