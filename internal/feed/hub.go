package feed

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 30 * time.Second
	pingEvery  = 10 * time.Second
	sendBuffer = 32
)

const (
	KindNotice = "notice"
	KindReady  = "ready"
)

type Event struct {
	ID      uuid.UUID `json:"id"`
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Hub рассылает события оператора всем подключённым websocket-клиентам.
// Новый клиент сначала получает последние события из истории.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	history []Event
	limit   int
	closed  bool

	now      func() time.Time
	upgrader websocket.Upgrader
}

type client struct {
	conn *websocket.Conn
	wmu  sync.Mutex // запись в сокет только под ним
	send chan Event
	once sync.Once
	done chan struct{}
}

func NewHub(historyLimit int) *Hub {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &Hub{
		clients:  map[*client]struct{}{},
		limit:    historyLimit,
		now:      time.Now,
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
	}
}

// Notify — хук оператора: сообщение уходит в лог и всем клиентам.
func (h *Hub) Notify(msg string) { h.Publish(KindNotice, msg) }

func (h *Hub) Publish(kind, msg string) Event {
	ev := Event{ID: uuid.New(), Kind: kind, Message: msg, At: h.now().UTC()}

	h.mu.Lock()
	h.history = append(h.history, ev)
	if len(h.history) > h.limit {
		h.history = h.history[len(h.history)-h.limit:]
	}
	var slow []*client
	for c := range h.clients {
		select {
		case c.send <- ev:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.Unlock()

	for _, c := range slow {
		log.Println("[feed] client is too slow, dropping")
		h.drop(c)
	}
	return ev
}

func (h *Hub) History() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Event(nil), h.history...)
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[feed] upgrade:", err)
		return
	}
	c := &client{conn: conn, send: make(chan Event, sendBuffer), done: make(chan struct{})}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		c.close()
		return
	}
	backlog := append([]Event(nil), h.history...)
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(c, backlog)
	h.readLoop(c)
}

// Close отключает всех клиентов; новые подключения сразу закрываются.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	cs := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		cs = append(cs, c)
	}
	h.mu.Unlock()
	for _, c := range cs {
		h.drop(c)
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.close()
}

// читаем только ради pong и закрытия со стороны клиента
func (h *Hub) readLoop(c *client) {
	defer h.drop(c)
	c.conn.SetReadLimit(4096)
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

func (h *Hub) writeLoop(c *client, backlog []Event) {
	defer h.drop(c)
	for _, ev := range backlog {
		if err := c.write(ev); err != nil {
			return
		}
	}

	t := time.NewTicker(pingEvery)
	defer t.Stop()
	for {
		select {
		case ev := <-c.send:
			if err := c.write(ev); err != nil {
				return
			}
		case <-t.C:
			c.wmu.Lock()
			err := c.conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(writeWait))
			c.wmu.Unlock()
			if err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *client) write(ev Event) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(ev)
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.wmu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "closing"),
			time.Now().Add(500*time.Millisecond))
		c.wmu.Unlock()
		_ = c.conn.Close()
	})
}
