package handler

import (
	"encoding/json"
	"net/http"

	"github.com/aguhub/rag-chatbot-be/types"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) HandleRoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(types.StatusResponse{
			Status: "RAG API is running.",
		})
	}
}
