package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/sam/photo-share-website/internal/domain"
)

// Hub fans activity events out to every connected client. Delivery is
// best-effort: a client whose send buffer is full loses the event.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if _, ok := h.clients[client]; ok {
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// slow client, drop the event
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ActivityRecorded implements service.ActivityNotifier.
func (h *Hub) ActivityRecorded(activity *domain.Activity) {
	event := struct {
		Type     string           `json:"type"`
		Activity *domain.Activity `json:"activity"`
	}{Type: "activity", Activity: activity}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("ERROR [Hub.ActivityRecorded] marshal event: %v", err)
		return
	}

	select {
	case h.broadcast <- data:
	case <-h.done:
	default:
		// broadcast backlog full, drop the event
	}
}

func (h *Hub) Stop() {
	select {
	case <-h.done:
	default:
		close(h.stop)
		<-h.done
	}
}
