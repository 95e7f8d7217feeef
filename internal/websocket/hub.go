package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"broadcast-eval-be/internal/dto"
	"broadcast-eval-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const clusterChannel = "eval_feed_events"

// Hub fans review-feed notifications out to connected websocket clients.
// Clients are keyed by employee id; one employee may hold several
// connections (multi-device). Redis pub/sub carries messages across
// instances so a notification reaches a client no matter which instance
// it is connected to.
type Hub struct {
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.EmployeeID] = append(h.clients[client.EmployeeID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"employee_id": client.EmployeeID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.EmployeeID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.EmployeeID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.EmployeeID]) == 0 {
					delete(h.clients, client.EmployeeID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"employee_id": client.EmployeeID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends a notification to every connected client. With Redis
// configured the message rides the cluster channel and comes back through
// subscribeToRedis on every instance, this one included.
func (h *Hub) Broadcast(notification dto.Notification) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})

	if h.rdb != nil {
		h.publishToCluster("*", data)
		return
	}
	h.deliverAll(data)
}

// Send pushes a notification to one employee's connections on every
// instance.
func (h *Hub) Send(employeeID string, notification dto.Notification) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})

	if h.rdb != nil {
		h.publishToCluster(employeeID, data)
		return
	}
	h.deliverTo(employeeID, data)
}

func (h *Hub) publishToCluster(targetEmployeeID string, message []byte) {
	payload, _ := json.Marshal(map[string]interface{}{
		"target_employee_id": targetEmployeeID,
		"message":            message,
	})
	if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
		h.logger.Error("Hub", "Failed to publish to cluster channel", map[string]interface{}{"error": err.Error()})
	}
}

func (h *Hub) deliverAll(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.clients {
		for _, client := range clients {
			h.deliver(client, message)
		}
	}
}

func (h *Hub) deliverTo(employeeID string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients[employeeID] {
		h.deliver(client, message)
	}
}

func (h *Hub) deliver(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"employee_id": client.EmployeeID})
		go func() { h.unregister <- client }()
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance listens on the same channel and delivers only to the
	// employees it holds locally; "*" means deliver to everyone.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetEmployeeID string          `json:"target_employee_id"`
			Message          json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		if payload.TargetEmployeeID == "*" {
			h.deliverAll(payload.Message)
			continue
		}
		h.deliverTo(payload.TargetEmployeeID, payload.Message)
	}
}
