package types

type ChatResponse struct {
	Answer  string       `json:"answer"`
	Sources []SourceInfo `json:"sources"`
}

type SearchResponse struct {
	Chunks  []string     `json:"chunks"`
	Sources []SourceInfo `json:"sources"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}
