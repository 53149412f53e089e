package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/aguhub/rag-chatbot-be/service"
	"github.com/aguhub/rag-chatbot-be/types"
)

type ChatHandler struct {
	rag service.ChatService
}

func NewChatHandler(rag service.ChatService) *ChatHandler {
	return &ChatHandler{
		rag: rag,
	}
}

func (h *ChatHandler) HandleChat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodPost {
			sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req types.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			sendError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Query) == "" {
			sendError(w, "Query is required", http.StatusBadRequest)
			return
		}

		answer, sources, err := h.rag.Chat(r.Context(), req.Query)
		if err != nil {
			log.Printf("Error during chat: %v", err)
			sendError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(types.ChatResponse{
			Answer:  answer,
			Sources: sources,
		})
	}
}

func sendError(w http.ResponseWriter, message string, status int) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(types.ErrorResponse{
		Status: "error",
		Error:  message,
	})
}
