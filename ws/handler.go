package ws

import (
	"context"
	"encoding/json"
	"net/http"

	"restx/services"
	"restx/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// TableStatusUpdater is the part of the table service the socket invokes.
type TableStatusUpdater interface {
	UpdateTableStatus(ctx context.Context, ownerID uuid.UUID, actor string, tableID, statusID uint) (*services.TableStatusView, error)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// inbound is a client invocation, e.g.
// {"event":"UpdateTableStatus","data":{"tableId":3,"statusId":2}}.
type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type updateTableStatusArgs struct {
	TableID  uint `json:"tableId"`
	StatusID uint `json:"statusId"`
}

// HandleWebSocket joins the caller to their owner's room. WSAuthMiddleware
// must run first.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	ownerID, ok := utils.CurrentOwnerID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "no restaurant in token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("ws upgrade failed")
		return
	}

	cl := &client{conn: conn, ownerID: ownerID, actor: utils.CurrentActor(c)}
	select {
	case h.register <- cl:
	case <-h.done:
		conn.Close()
		return
	}

	go h.listen(cl)
}

// listen reads invocations until the socket closes.
func (h *Hub) listen(cl *client) {
	defer func() {
		select {
		case h.unregister <- cl:
		case <-h.done:
		}
	}()

	ctx := context.Background()
	cl.conn.SetReadLimit(maxMessageSize)
	log := h.log.WithField("owner_id", cl.ownerID)
	for {
		_, data, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("ws read failed")
			}
			return
		}

		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			h.replyError(ctx, cl, "invalid payload")
			continue
		}
		switch msg.Event {
		case InvokeUpdateTableStatus:
			h.updateTableStatus(ctx, cl, msg.Data, log)
		default:
			h.replyError(ctx, cl, "unknown event "+msg.Event)
		}
	}
}

func (h *Hub) updateTableStatus(ctx context.Context, cl *client, raw json.RawMessage, log logrus.FieldLogger) {
	var args updateTableStatusArgs
	if err := json.Unmarshal(raw, &args); err != nil || args.TableID == 0 || args.StatusID == 0 {
		h.replyError(ctx, cl, "tableId and statusId are required")
		return
	}
	view, err := h.tables.UpdateTableStatus(ctx, cl.ownerID, cl.actor, args.TableID, args.StatusID)
	if err != nil {
		log.WithError(err).WithField("table_id", args.TableID).Warn("table status update failed")
		h.replyError(ctx, cl, "could not update table status")
		return
	}
	if err := h.Broadcast(ctx, cl.ownerID, EventTableStatusUpdate, view); err != nil {
		log.WithError(err).Error("broadcast table status failed")
	}
}

func (h *Hub) replyError(ctx context.Context, cl *client, msg string) {
	raw, _ := json.Marshal(gin.H{"message": msg})
	if err := h.enqueue(ctx, outbound{evt: Event{OwnerID: cl.ownerID, Event: EventError, Data: raw}, only: cl}); err != nil {
		h.log.WithError(err).Warn("ws error reply dropped")
	}
}
