package http

import "github.com/randomtoy/sensoji-go/internal/domain"

// FortuneResponse is the JSON shape returned by GET /v1/fortune?format=json.
type FortuneResponse struct {
	Kind    domain.OutcomeKind `json:"kind"`
	Message string             `json:"message,omitempty"`
	Raw     string             `json:"raw,omitempty"`
	Oracle  *OracleResponse    `json:"oracle,omitempty"`
	Meta    MetaResp           `json:"meta"`
}

type OracleResponse struct {
	Verdict      string                    `json:"verdict"`
	Poem         []string                  `json:"poem"`
	Annotations  []domain.Annotation       `json:"annotations"`
	Explanations []domain.ExplanationBlock `json:"explanations"`
}

type MetaResp struct {
	RequestID string `json:"request_id"`
	LatencyMS int64  `json:"latency_ms"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
