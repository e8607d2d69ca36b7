// Package realtime pushes change notifications to dashboard clients over
// WebSockets. Clients subscribe to topics; the submission path publishes an
// event after each insert and subscribers react by refetching. Events carry
// no row data, so the dashboard never patches incrementally.
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// TopicResponses is the topic the dashboard subscribes to for new survey
// submissions.
const TopicResponses = "responses"

// EventResponseCreated is published after each successful insert.
const EventResponseCreated = "response.created"

// Event is a change notification sent to subscribed clients.
type Event struct {
	Type       string    `json:"type"`
	Topic      string    `json:"topic"`
	ResponseID string    `json:"response_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher is the narrow interface the submission path depends on.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type subscription struct {
	Action string   `json:"action"`
	Topics []string `json:"topics"`
}

type client struct {
	id     string
	topics map[string]struct{}
	send   chan []byte
}

// Hub tracks connected clients and their topic subscriptions.
type Hub struct {
	mu      sync.RWMutex
	byTopic map[string]map[*client]struct{}
	all     map[*client]struct{}
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		byTopic: make(map[string]map[*client]struct{}),
		all:     make(map[*client]struct{}),
		log:     log,
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.all[c] = struct{}{}
	for topic := range c.topics {
		h.addSubscription(c, topic)
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.all[c]; !ok {
		return
	}
	for topic := range c.topics {
		h.dropSubscription(c, topic)
	}
	delete(h.all, c)
	close(c.send)
}

// addSubscription and dropSubscription require h.mu held.
func (h *Hub) addSubscription(c *client, topic string) {
	if h.byTopic[topic] == nil {
		h.byTopic[topic] = make(map[*client]struct{})
	}
	h.byTopic[topic][c] = struct{}{}
	c.topics[topic] = struct{}{}
}

func (h *Hub) dropSubscription(c *client, topic string) {
	if subs, ok := h.byTopic[topic]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.byTopic, topic)
		}
	}
	delete(c.topics, topic)
}

func (h *Hub) process(c *client, msg subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch msg.Action {
	case "subscribe":
		for _, t := range msg.Topics {
			h.addSubscription(c, t)
		}
	case "unsubscribe":
		for _, t := range msg.Topics {
			h.dropSubscription(c, t)
		}
	}
}

// Publish implements Publisher by broadcasting to the event's topic
// subscribers. Slow clients are skipped rather than blocking the
// submission path.
func (h *Hub) Publish(_ context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.byTopic[event.Topic] {
		select {
		case c.send <- data:
		default:
		}
	}
	return nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.all)
}

// SubscriberCount returns the number of clients subscribed to a topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byTopic[topic])
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades staff dashboard connections and routes their
// subscription messages.
type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/ws", h.Connect)
}

func (h *Handler) Connect(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	cl := &client{
		id:     uuid.New().String(),
		topics: map[string]struct{}{TopicResponses: {}},
		send:   make(chan []byte, 64),
	}
	h.hub.register(cl)

	go h.writePump(cl, ws)
	go h.readPump(cl, ws)
	return nil
}

func (h *Handler) readPump(cl *client, ws *gorillaws.Conn) {
	defer func() {
		h.hub.unregister(cl)
		ws.Close()
	}()
	for {
		_, message, err := ws.ReadMessage()
		if err != nil {
			return
		}
		var msg subscription
		if err := json.Unmarshal(message, &msg); err != nil {
			h.hub.log.Debug().Str("client", cl.id).Msg("ignoring malformed subscription message")
			continue
		}
		h.hub.process(cl, msg)
	}
}

func (h *Handler) writePump(cl *client, ws *gorillaws.Conn) {
	defer ws.Close()
	for message := range cl.send {
		if err := ws.WriteMessage(gorillaws.TextMessage, message); err != nil {
			return
		}
	}
}
