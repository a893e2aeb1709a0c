package ws_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"restx/entity"
	"restx/middlewares"
	"restx/pkg/logger"
	"restx/services"
	"restx/utils"
	"restx/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "hub-test-secret"

type fakeTables struct {
	mu    sync.Mutex
	calls []uint
	fail  bool
}

func (f *fakeTables) UpdateTableStatus(_ context.Context, ownerID uuid.UUID, actor string, tableID, statusID uint) (*services.TableStatusView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, tableID)
	if f.fail {
		return nil, errors.New("boom")
	}
	return &services.TableStatusView{
		ID:          tableID,
		TableNumber: int(tableID),
		TableStatus: services.TableStatusRef{ID: statusID, Name: "Occupied"},
	}, nil
}

type wireEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func startHub(t *testing.T, tables ws.TableStatusUpdater) (*ws.Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := ws.NewHub(tables, logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/ws", middlewares.WSAuthMiddleware(testSecret, "token", entity.RoleStaff, entity.RoleOwner), hub.HandleWebSocket)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return hub, srv
}

func dial(t *testing.T, hub *ws.Hub, srv *httptest.Server, ownerID uuid.UUID) *websocket.Conn {
	t.Helper()
	before := hub.RoomSize(ownerID)
	token, err := utils.GenerateToken(utils.Claims{Role: entity.RoleStaff, OwnerID: ownerID, StaffID: uuid.New()}, testSecret, time.Hour)
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return hub.RoomSize(ownerID) == before+1 }, time.Second, 5*time.Millisecond)
	return conn
}

func read(t *testing.T, conn *websocket.Conn) wireEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var evt wireEvent
	require.NoError(t, conn.ReadJSON(&evt))
	return evt
}

func assertSilent(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(150*time.Millisecond)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "expected no message")
}

func TestBroadcastReachesOnlyTheOwnersRoom(t *testing.T) {
	hub, srv := startHub(t, &fakeTables{})
	ownerA, ownerB := uuid.New(), uuid.New()
	a1 := dial(t, hub, srv, ownerA)
	a2 := dial(t, hub, srv, ownerA)
	b := dial(t, hub, srv, ownerB)

	require.NoError(t, hub.Broadcast(context.Background(), ownerA, ws.EventOrderList, []string{"order-1"}))

	for _, conn := range []*websocket.Conn{a1, a2} {
		evt := read(t, conn)
		assert.Equal(t, ws.EventOrderList, evt.Event)
		assert.JSONEq(t, `["order-1"]`, string(evt.Data))
	}
	assertSilent(t, b)
}

func TestUpdateTableStatusInvocationBroadcasts(t *testing.T) {
	tables := &fakeTables{}
	hub, srv := startHub(t, tables)
	owner := uuid.New()
	caller := dial(t, hub, srv, owner)
	watcher := dial(t, hub, srv, owner)

	require.NoError(t, caller.WriteJSON(map[string]any{
		"event": ws.InvokeUpdateTableStatus,
		"data":  map[string]uint{"tableId": 3, "statusId": 2},
	}))

	for _, conn := range []*websocket.Conn{caller, watcher} {
		evt := read(t, conn)
		assert.Equal(t, ws.EventTableStatusUpdate, evt.Event)
		assert.JSONEq(t, `{"id":3,"tableNumber":3,"tableStatus":{"id":2,"name":"Occupied"}}`, string(evt.Data))
	}
	tables.mu.Lock()
	assert.Equal(t, []uint{3}, tables.calls)
	tables.mu.Unlock()
}

func TestFailedInvocationAnswersOnlyTheCaller(t *testing.T) {
	hub, srv := startHub(t, &fakeTables{fail: true})
	owner := uuid.New()
	caller := dial(t, hub, srv, owner)
	watcher := dial(t, hub, srv, owner)

	require.NoError(t, caller.WriteJSON(map[string]any{
		"event": ws.InvokeUpdateTableStatus,
		"data":  map[string]uint{"tableId": 3, "statusId": 2},
	}))

	evt := read(t, caller)
	assert.Equal(t, ws.EventError, evt.Event)
	assertSilent(t, watcher)
}

func TestMalformedInvocation(t *testing.T) {
	tables := &fakeTables{}
	hub, srv := startHub(t, tables)
	conn := dial(t, hub, srv, uuid.New())

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"UpdateTableStatus","data":{"tableId":0}}`)))
	assert.Equal(t, ws.EventError, read(t, conn).Event)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"Dance"}`)))
	assert.Equal(t, ws.EventError, read(t, conn).Event)
	assert.Empty(t, tables.calls)
}

func TestClosedSocketLeavesRoom(t *testing.T) {
	hub, srv := startHub(t, &fakeTables{})
	owner := uuid.New()
	conn := dial(t, hub, srv, owner)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.RoomSize(owner) == 0 }, time.Second, 5*time.Millisecond)
}

func TestHandshakeNeedsStaffToken(t *testing.T) {
	_, srv := startHub(t, &fakeTables{})
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	_, res, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 401, res.StatusCode)

	token, err := utils.GenerateToken(utils.Claims{Role: entity.RoleCustomer, OwnerID: uuid.New()}, testSecret, time.Hour)
	require.NoError(t, err)
	_, res, err = websocket.DefaultDialer.Dial(url+"?token="+token, nil)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 403, res.StatusCode)
}

type fakeRelay struct {
	mu   sync.Mutex
	sent []ws.Event
	err  error
}

func (r *fakeRelay) Publish(_ context.Context, evt ws.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, evt)
	return r.err
}

func TestBroadcastGoesThroughRelay(t *testing.T) {
	hub, srv := startHub(t, &fakeTables{})
	relay := &fakeRelay{}
	hub.UseRelay(relay)
	owner := uuid.New()
	conn := dial(t, hub, srv, owner)
	watcher := dial(t, hub, srv, owner)

	require.NoError(t, hub.Broadcast(context.Background(), owner, ws.EventOrderList, []int{}))
	relay.mu.Lock()
	require.Len(t, relay.sent, 1)
	assert.Equal(t, owner, relay.sent[0].OwnerID)
	evt := relay.sent[0]
	relay.mu.Unlock()

	// nothing is delivered locally until the relay hands the event back;
	// a timed-out socket stays broken, so only the watcher checks this
	assertSilent(t, watcher)

	require.NoError(t, hub.Deliver(context.Background(), evt))
	got := read(t, conn)
	assert.Equal(t, ws.EventOrderList, got.Event)
	assert.JSONEq(t, `[]`, string(got.Data))
}

func TestBroadcastGivesUpWhenQueueStaysFull(t *testing.T) {
	// Run is never started, so nothing drains the queue
	hub := ws.NewHub(&fakeTables{}, logger.Discard())
	owner := uuid.New()
	for i := 0; i < 64; i++ {
		require.NoError(t, hub.Broadcast(context.Background(), owner, ws.EventOrderList, i))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	err := hub.Broadcast(ctx, owner, ws.EventOrderList, "late")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestBroadcastFallsBackWhenRelayFails(t *testing.T) {
	hub, srv := startHub(t, &fakeTables{})
	hub.UseRelay(&fakeRelay{err: errors.New("broker down")})
	owner := uuid.New()
	conn := dial(t, hub, srv, owner)

	require.NoError(t, hub.Broadcast(context.Background(), owner, ws.EventOrderList, []int{}))
	assert.Equal(t, ws.EventOrderList, read(t, conn).Event)
}
