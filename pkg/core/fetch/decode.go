package fetch

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// envelope is the `{ "data": [...] }` shape every upstream source exposes.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// DecodeEnvelope extracts the data array from a source response body.
// Strict decoding is tried first; a malformed-but-recoverable body (trailing
// commas, unquoted keys, truncation) goes through json-repair before the
// decode is retried. A body that is a bare array is accepted as-is.
func DecodeEnvelope(body []byte) (json.RawMessage, error) {
	if payload, err := decodeOnce(body); err == nil {
		return payload, nil
	}

	repaired, err := jsonrepair.RepairJSON(string(body))
	if err != nil {
		return nil, fmt.Errorf("response body unrecoverable: %v", err)
	}
	payload, err := decodeOnce([]byte(repaired))
	if err != nil {
		return nil, fmt.Errorf("repaired body still undecodable: %v", err)
	}
	return payload, nil
}

func decodeOnce(body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 {
		return env.Data, nil
	}

	// Some endpoints skip the envelope and return the array directly.
	var arr []json.RawMessage
	if err := json.Unmarshal(body, &arr); err == nil {
		return json.RawMessage(body), nil
	}
	return nil, fmt.Errorf("no data array found")
}
