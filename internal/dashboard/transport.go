package dashboard

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxCommandSize = 4096
)

var errTransportClosed = errors.New("dashboard transport closed")

// NewUpgrader returns a websocket upgrader accepting the given origins.
// An empty list or "*" accepts any origin.
func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	_, wildcard := allowed["*"]

	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || wildcard || len(allowed) == 0 {
				return true
			}
			_, ok := allowed[origin]
			return ok
		},
	}
}

// wsTransport is a Transport over a gorilla websocket connection.
// Writes are serialised because the keepalive pinger writes concurrently.
type wsTransport struct {
	conn *websocket.Conn

	mu        sync.Mutex
	closed    chan struct{}
	closeOnce sync.Once
}

func NewWebSocketTransport(conn *websocket.Conn) Transport {
	t := &wsTransport{conn: conn, closed: make(chan struct{})}

	conn.SetReadLimit(maxCommandSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go t.keepalive()
	return t
}

func (t *wsTransport) Send(msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return t.write(websocket.TextMessage, payload)
}

func (t *wsTransport) Receive() (Command, error) {
	for {
		kind, payload, err := t.conn.ReadMessage()
		if err != nil {
			return Command{}, err
		}
		if kind != websocket.TextMessage {
			continue
		}
		var cmd Command
		if err := json.Unmarshal(payload, &cmd); err != nil || cmd.Type == "" {
			continue
		}
		return cmd, nil
	}
}

func (t *wsTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.closed)
		_ = t.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		err = t.conn.Close()
	})
	return err
}

func (t *wsTransport) write(kind int, payload []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if kind != websocket.CloseMessage {
		select {
		case <-t.closed:
			return errTransportClosed
		default:
		}
	}
	_ = t.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return t.conn.WriteMessage(kind, payload)
}

func (t *wsTransport) keepalive() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := t.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-t.closed:
			return
		}
	}
}
