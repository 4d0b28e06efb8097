package boclient

import "encoding/json"

// Envelope is the backend response body shape shared by every endpoint:
// a business flag, an opaque data payload, and a human-readable message.
// The flag is authoritative: an HTTP 2xx with a false (or absent) flag is
// still a failure.
type Envelope struct {
	Status *bool           `json:"status"`
	Data   json.RawMessage `json:"data"`
	Msg    string          `json:"msg"`
}

// OK reports whether the business flag is present and true.
func (e Envelope) OK() bool {
	return e.Status != nil && *e.Status
}

// decodeEnvelope parses a response body best-effort. A body that is not a
// valid envelope decodes to the zero value (flag absent, empty message), so
// malformed 2xx bodies classify as business rejections and malformed error
// bodies fall back to the per-status message.
func decodeEnvelope(body []byte) Envelope {
	var env Envelope
	if len(body) == 0 {
		return env
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return Envelope{}
	}
	return env
}
