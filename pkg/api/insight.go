package api

type AnalyzeRequest struct{}

type AnalyzeResponse struct {
	Insights string `json:"insights"`
}

// ChatRequest with an empty message streams the greeting.
type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Text string `json:"text"`
}
