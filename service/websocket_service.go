package service

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/aguhub/rag-chatbot-be/types"
	"github.com/gorilla/websocket"
)

const (
	wsReadLimit    = 512 * 1024
	wsReadDeadline = 60 * time.Second
)

// WebSocketService serves the chat pipeline over a websocket connection for
// frontends that want a persistent channel instead of request/response.
type WebSocketService struct {
	rag      ChatService
	upgrader websocket.Upgrader
}

func NewWebSocketService(rag ChatService) *WebSocketService {
	return &WebSocketService{
		rag: rag,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

func (s *WebSocketService) HandleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsReadLimit)
	conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadDeadline))

		var req types.WebsocketRequest
		if err := json.Unmarshal(data, &req); err != nil {
			s.writeError(conn, "invalid message")
			continue
		}

		switch req.Type {
		case types.TypeWebsocketPing:
			s.write(conn, types.WebsocketResponse{Type: types.TypeWebsocketPong})
		case types.TypeWebsocketChat:
			var payload types.WebsocketChatPayload
			if err := json.Unmarshal(req.Payload, &payload); err != nil || payload.Query == "" {
				s.writeError(conn, "invalid chat payload")
				continue
			}
			answer, sources, err := s.rag.Chat(r.Context(), payload.Query)
			if err != nil {
				log.Printf("Error during websocket chat: %v", err)
				s.writeError(conn, err.Error())
				continue
			}
			s.write(conn, types.WebsocketResponse{
				Type: types.TypeWebsocketChat,
				Payload: types.ChatResponse{
					Answer:  answer,
					Sources: sources,
				},
			})
		default:
			s.writeError(conn, "unknown message type")
		}
	}
}

func (s *WebSocketService) write(conn *websocket.Conn, resp types.WebsocketResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("WebSocket write error: %v", err)
	}
}

func (s *WebSocketService) writeError(conn *websocket.Conn, message string) {
	s.write(conn, types.WebsocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: types.WebsocketErrorPayload{Message: message},
	})
}
