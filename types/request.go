package types

type ChatRequest struct {
	Query string `json:"query"`
}

type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}
