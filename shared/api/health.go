package api

// HealthResponse answers /health and /ready.
type HealthResponse struct {
	Status    string `json:"status"`
	Storage   string `json:"storage,omitempty"`
	LatencyMs *int64 `json:"latencyMs,omitempty"`
}
