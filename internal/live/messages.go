package live

import "encoding/json"

const (
	TypeEpoch  = "train:epoch"
	TypeReport = "eval:report"
)

// Envelope wraps every message with its type.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// EpochPayload carries one epoch of a model's training loss curve.
type EpochPayload struct {
	Model string  `json:"model"`
	Epoch int     `json:"epoch"`
	Loss  float64 `json:"loss"`
}

// ReportPayload carries a model's held-out metrics. R2 is null when the
// ground truth had zero variance.
type ReportPayload struct {
	Model string   `json:"model"`
	MAE   float64  `json:"mae"`
	RMSE  float64  `json:"rmse"`
	R2    *float64 `json:"r2"`
}

// NewEnvelope marshals a typed message.
func NewEnvelope(msgType string, payload any) ([]byte, error) {
	env := struct {
		Type    string `json:"type"`
		Payload any    `json:"payload,omitempty"`
	}{Type: msgType, Payload: payload}
	return json.Marshal(env)
}
