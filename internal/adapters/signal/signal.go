package signal

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/parlorchat/parlor/internal/app"
	"github.com/parlorchat/parlor/internal/config"
	"github.com/parlorchat/parlor/internal/core"
	"github.com/parlorchat/parlor/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

// Controller terminates WebSocket connections and implements the
// delivery capability the orchestrator fans out through. It keeps its
// own channel subscription table, synced by the orchestrator via
// JoinChannel/LeaveChannel.
type Controller struct {
	// Orch is set by main after construction; controller and
	// orchestrator reference each other.
	Orch *app.Orchestrator

	cfg *config.Config

	mu       sync.RWMutex
	conns    map[core.ConnID]*WsConn
	channels map[domain.RoomName]map[core.ConnID]struct{}
}

func NewController(cfg *config.Config) *Controller {
	return &Controller{
		cfg:      cfg,
		conns:    make(map[core.ConnID]*WsConn),
		channels: make(map[domain.RoomName]map[core.ConnID]struct{}),
	}
}

type WsConn struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

func (c *WsConn) TrySend(frame []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- frame:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWS upgrades the request and runs the connection to completion.
// Each socket gets its own ConnID; the browser cookie token is only
// for log correlation.
func (ctl *Controller) HandleWS(c *gin.Context) {
	cid := core.ConnID(uuid.NewString())
	log.Info().Str("module", "signal").Str("cid", string(cid)).Str("client", c.GetString("client_token")).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	conn := &WsConn{
		conn: ws,
		send: make(chan []byte, ctl.cfg.SendBuffer),
	}

	ctl.mu.Lock()
	ctl.conns[cid] = conn
	ctl.mu.Unlock()

	go ctl.writePump(conn)

	// The connection can receive its welcome sequence from here on.
	ctl.Orch.Connect(cid)

	ctl.readPump(cid, conn)
}

// drop forgets the connection and any stale channel subscriptions.
// Runs after Disconnect, which already unsubscribed the current room;
// the sweep covers a connection that died between mutations.
func (ctl *Controller) drop(cid core.ConnID) {
	ctl.mu.Lock()
	conn := ctl.conns[cid]
	delete(ctl.conns, cid)
	for room, subs := range ctl.channels {
		delete(subs, cid)
		if len(subs) == 0 {
			delete(ctl.channels, room)
		}
	}
	ctl.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
}
