package chat

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/circlio/backend/internal/models"
	"github.com/circlio/backend/internal/repositories"
	"github.com/circlio/backend/pkg/response"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all for now (Dev mode)
	},
}

// Handler exposes the livestream chat over HTTP
type Handler struct {
	hub      *Hub
	userRepo repositories.UserRepository
}

// NewHandler creates a new Handler
func NewHandler(hub *Hub, userRepo repositories.UserRepository) *Handler {
	return &Handler{hub: hub, userRepo: userRepo}
}

// RegisterChatRoutes registers livestream chat routes
func (h *Handler) RegisterChatRoutes(g *echo.Group) {
	g.GET("/livestream/ws", h.ServeWs)
	g.GET("/livestream/messages", h.RecentMessages)
}

// ServeWs upgrades the connection and joins the caller to the livestream room
func (h *Handler) ServeWs(c echo.Context) error {
	userID := currentUserID(c)
	if userID == 0 {
		return response.Error(c, http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepo.GetUserByID(userID)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "Authenticated user not found in database")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Println(err)
		return nil
	}

	client := &Client{
		Hub:      h.hub,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		UserID:   user.ID,
		Username: user.Name,
	}
	client.Hub.Register <- client

	// Replay recent history so a joining client has context
	if msgs, err := h.hub.repo.RecentMessages(50); err == nil {
		for _, msg := range msgs {
			jsonMsg, _ := json.Marshal(OutgoingMessage{
				Username: msg.Username,
				Content:  msg.Content,
			})
			client.Send <- jsonMsg
		}
	}

	go client.WritePump()
	go client.ReadPump()
	return nil
}

func currentUserID(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}

// RecentMessages returns the latest livestream chat lines
func (h *Handler) RecentMessages(c echo.Context) error {
	messages, err := h.hub.repo.RecentMessages(50)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "Failed to list livestream messages")
	}
	return response.OK(c, "Livestream messages retrieved", messages)
}
