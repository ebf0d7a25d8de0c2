package chat

import (
	"context"
	"encoding/json"
	"log"

	"github.com/circlio/backend/internal/models"
	"github.com/circlio/backend/internal/repositories"
	"github.com/redis/go-redis/v9"
)

const streamChannel = "livestream-chat"

// Hub fans livestream chat lines out to connected clients. Lines typed by a
// client are persisted and published to Redis, so every running instance
// rebroadcasts them to its own clients.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte           // From Redis -> Clients
	Register   chan *Client          // New client joins
	Unregister chan *Client          // Client leaves
	publish    chan *IncomingMessage // Client types -> Redis
	rdb        *redis.Client
	repo       repositories.LivestreamRepository
}

// IncomingMessage is a chat line typed by a connected client
type IncomingMessage struct {
	UserID   uint
	Username string
	Content  string
}

// OutgoingMessage is the JSON shape broadcast to clients
type OutgoingMessage struct {
	Username string `json:"username"`
	Content  string `json:"content"`
}

// NewHub creates a new Hub
func NewHub(rdb *redis.Client, repo repositories.LivestreamRepository) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		publish:    make(chan *IncomingMessage),
		rdb:        rdb,
		repo:       repo,
	}
}

// Run owns the client set; call it once in a goroutine
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true

		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}

		case msg := <-h.publish:
			if err := h.repo.SaveMessage(&models.LivestreamMessage{
				UserID:   msg.UserID,
				Username: msg.Username,
				Content:  msg.Content,
			}); err != nil {
				log.Printf("Failed to persist livestream message: %v", err)
			}

			jsonMsg, _ := json.Marshal(OutgoingMessage{
				Username: msg.Username,
				Content:  msg.Content,
			})
			if err := h.rdb.Publish(context.Background(), streamChannel, jsonMsg).Err(); err != nil {
				log.Printf("Failed to publish livestream message: %v", err)
			}

		case message := <-h.broadcast:
			// Forward message from Redis to all connected clients
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// SubscribeToRedis listens for lines published by any instance
func (h *Hub) SubscribeToRedis() {
	pubsub := h.rdb.Subscribe(context.Background(), streamChannel)
	ch := pubsub.Channel()

	for msg := range ch {
		h.broadcast <- []byte(msg.Payload)
	}
}
