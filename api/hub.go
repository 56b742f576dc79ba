package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hoshinonyaruko/snake-duel/structs"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// 推送给观众的消息，t: "f" 为画面快照, "s" 为声音事件
type message struct {
	Type  string            `json:"t"`
	Frame *structs.Snapshot `json:"f,omitempty"`
	Sound string            `json:"s,omitempty"`
}

type viewer struct {
	id   string
	ws   *websocket.Conn
	send chan []byte
}

// Hub streams frames and sound events to websocket viewers. Sending never
// blocks: a viewer that falls behind misses messages.
type Hub struct {
	mu      sync.RWMutex
	viewers map[string]*viewer
}

func NewHub() *Hub {
	return &Hub{viewers: make(map[string]*viewer)}
}

// Play implements snake.Sound.
func (h *Hub) Play(event string) {
	h.broadcast(message{Type: "s", Sound: event})
}

// Publish sends a frame to every viewer.
func (h *Hub) Publish(snap structs.Snapshot) {
	h.broadcast(message{Type: "f", Frame: &snap})
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

func (h *Hub) broadcast(msg message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal hub message: %v", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, v := range h.viewers {
		select {
		case v.send <- data:
		default:
		}
	}
}

func (h *Hub) add(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.viewers[v.id] = v
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if v, ok := h.viewers[id]; ok {
		close(v.send)
		delete(h.viewers, id)
	}
}

// Serve upgrades the request and streams until the viewer disconnects.
func (h *Hub) Serve(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade: %v", err)
		return
	}
	v := &viewer{id: uuid.New().String(), ws: ws, send: make(chan []byte, 16)}
	h.add(v)
	log.Printf("viewer %s connected", v.id)

	go v.writeLoop()

	// 观众只读，收到的消息直接丢弃，读失败即断开
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws read error for %s: %v", v.id, err)
			}
			break
		}
	}
	h.remove(v.id)
	log.Printf("viewer %s disconnected", v.id)
}

func (v *viewer) writeLoop() {
	defer v.ws.Close()
	for data := range v.send {
		if err := v.ws.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}
