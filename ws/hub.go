package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	EventOrderList         = "ReceiveOrderList"
	EventTableStatusUpdate = "ReceiveTableStatusUpdate"
	EventError             = "Error"

	InvokeUpdateTableStatus = "UpdateTableStatus"

	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

// Event is one server-to-client message. OwnerID picks the room and is not
// sent to browsers.
type Event struct {
	OwnerID uuid.UUID       `json:"ownerId"`
	Event   string          `json:"event"`
	Data    json.RawMessage `json:"data"`
}

// Broadcaster pushes an event to every connection of one owner.
type Broadcaster interface {
	Broadcast(ctx context.Context, ownerID uuid.UUID, event string, data any) error
}

// Publisher forwards events to other instances; Relay implements it.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

type client struct {
	conn    *websocket.Conn
	ownerID uuid.UUID
	actor   string
}

type outbound struct {
	evt  Event
	only *client // nil for the whole room
}

// Hub keeps one room of sockets per owner. Only Run writes to sockets.
type Hub struct {
	rooms      map[uuid.UUID]map[*client]bool
	broadcast  chan outbound
	register   chan *client
	unregister chan *client
	done       chan struct{}
	mu         sync.Mutex
	log        logrus.FieldLogger

	tables TableStatusUpdater
	relay  Publisher
}

func NewHub(tables TableStatusUpdater, log logrus.FieldLogger) *Hub {
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*client]bool),
		broadcast:  make(chan outbound, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		log:        log,
		tables:     tables,
	}
}

// UseRelay makes Broadcast publish through p; p's consumer must call Deliver.
func (h *Hub) UseRelay(p Publisher) {
	h.relay = p
}

// Run serves register/unregister/broadcast until ctx is cancelled, then
// closes every socket.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for _, room := range h.rooms {
				for c := range room {
					c.conn.Close()
				}
			}
			h.rooms = map[uuid.UUID]map[*client]bool{}
			h.mu.Unlock()
			return nil

		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.ownerID] == nil {
				h.rooms[c.ownerID] = make(map[*client]bool)
			}
			h.rooms[c.ownerID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			h.drop(c)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			if msg.only != nil {
				if h.rooms[msg.only.ownerID][msg.only] {
					h.write(msg.only, msg.evt)
				}
			} else {
				for c := range h.rooms[msg.evt.OwnerID] {
					h.write(c, msg.evt)
				}
			}
			h.mu.Unlock()
		}
	}
}

// write must be called with mu held.
func (h *Hub) write(c *client, evt Event) {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(wireEvent{Event: evt.Event, Data: evt.Data}); err != nil {
		h.log.WithError(err).WithField("owner_id", c.ownerID).Warn("ws write failed")
		h.drop(c)
	}
}

// drop must be called with mu held.
func (h *Hub) drop(c *client) {
	room := h.rooms[c.ownerID]
	if _, ok := room[c]; !ok {
		return
	}
	delete(room, c)
	c.conn.Close()
	if len(room) == 0 {
		delete(h.rooms, c.ownerID)
	}
}

type wireEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Broadcast marshals data and sends it to the owner's room, through the
// relay when one is configured.
func (h *Hub) Broadcast(ctx context.Context, ownerID uuid.UUID, event string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	evt := Event{OwnerID: ownerID, Event: event, Data: raw}
	if h.relay != nil {
		err := h.relay.Publish(ctx, evt)
		if err == nil {
			return nil
		}
		h.log.WithError(err).Warn("relay publish failed, delivering locally")
	}
	return h.Deliver(ctx, evt)
}

// Deliver queues evt for the local room. It gives up with ctx's error when the
// queue stays full, and is a no-op once Run has stopped.
func (h *Hub) Deliver(ctx context.Context, evt Event) error {
	return h.enqueue(ctx, outbound{evt: evt})
}

func (h *Hub) enqueue(ctx context.Context, o outbound) error {
	select {
	case h.broadcast <- o:
		return nil
	case <-h.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("queue %s for owner %s: %w", o.evt.Event, o.evt.OwnerID, ctx.Err())
	}
}

// RoomSize is the number of sockets connected for ownerID.
func (h *Hub) RoomSize(ownerID uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[ownerID])
}
