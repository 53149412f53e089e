package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/aguhub/rag-chatbot-be/service"
	"github.com/aguhub/rag-chatbot-be/types"
)

type SearchHandler struct {
	retriever service.RetrieveService
}

func NewSearchHandler(retriever service.RetrieveService) *SearchHandler {
	return &SearchHandler{
		retriever: retriever,
	}
}

// HandleSearch exposes raw retrieval without generation: the matched chunk
// texts plus their deduplicated sources.
func (h *SearchHandler) HandleSearch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodPost {
			sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req types.SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			sendError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Query) == "" {
			sendError(w, "Query is required", http.StatusBadRequest)
			return
		}
		if req.Limit == 0 {
			req.Limit = 5
		}

		chunks, sources, err := h.retriever.Retrieve(r.Context(), req.Query, req.Limit)
		if err != nil {
			log.Printf("Error during search: %v", err)
			sendError(w, "Search failed: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(types.SearchResponse{
			Chunks:  chunks,
			Sources: sources,
		})
	}
}
