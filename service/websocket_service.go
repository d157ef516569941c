package service

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/askcse/deptbot-be/types"
)

// WebSocketService answers queries over a websocket connection, sending a
// processing notification before the pipeline runs and the full answer
// after.
type WebSocketService struct {
	rag      *RAGService
	upgrader websocket.Upgrader
}

func NewWebSocketService(rag *RAGService) *WebSocketService {
	return &WebSocketService{
		rag: rag,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

func (s *WebSocketService) HandleQuery(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(64 * 1024)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			s.writeResponse(conn, types.WebsocketResponse{
				Type:    types.TypeWebsocketError,
				Payload: "invalid message",
			})
			continue
		}

		switch req.Type {
		case types.TypeWebsocketPing:
			s.writeResponse(conn, types.WebsocketResponse{Type: types.TypeWebsocketPong})
		case types.TypeWebsocketQuery:
			s.writeResponse(conn, types.WebsocketResponse{
				Type:    types.TypeWebsocketProcessing,
				Payload: "Searching the knowledge base...",
			})
			response, err := s.rag.HandleQuery(r.Context(), req.Payload)
			if err != nil {
				log.Printf("websocket query failed: %v", err)
				s.writeResponse(conn, types.WebsocketResponse{
					Type:    types.TypeWebsocketError,
					Payload: "failed to process query",
				})
				continue
			}
			s.writeResponse(conn, types.WebsocketResponse{
				Type:    types.TypeWebsocketAnswer,
				Payload: response,
			})
		default:
			s.writeResponse(conn, types.WebsocketResponse{
				Type:    types.TypeWebsocketError,
				Payload: "unknown message type",
			})
		}
	}
}

func (s *WebSocketService) writeResponse(conn *websocket.Conn, resp types.WebsocketResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Println("WebSocket write error:", err)
	}
}
