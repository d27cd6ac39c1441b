package wire

import "encoding/json"

// Request is the envelope every client request uses: an action token and
// an optional, action-specific data payload.
type Request struct {
	Action string         `json:"action"`
	Data   map[string]any `json:"data,omitempty"`
}

// Response is the envelope for a request/response reply. Status is "ok" or
// "error"; Reason carries an error token from the spec's taxonomy. Extra
// fields (rooms, users, game, ...) ride in Extra and are flattened back out
// on encode.
type Response struct {
	Status string         `json:"status"`
	Reason string         `json:"reason,omitempty"`
	Extra  map[string]any `json:"-"`
}

// Push is an unsolicited server→client message, distinguished from a
// Response by the presence of "type" instead of "status".
type Push struct {
	Type  string
	Extra map[string]any
}

// OK builds a successful response with no extra fields.
func OK() Response {
	return Response{Status: "ok"}
}

// OKWith builds a successful response carrying extra fields.
func OKWith(extra map[string]any) Response {
	return Response{Status: "ok", Extra: extra}
}

// Err builds an error response with the given reason token.
func Err(reason string) Response {
	return Response{Status: "error", Reason: reason}
}

// MarshalJSON flattens Extra alongside Status/Reason.
func (r Response) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(r.Extra)+2)
	for k, v := range r.Extra {
		m[k] = v
	}
	m["status"] = r.Status
	if r.Reason != "" {
		m["reason"] = r.Reason
	}
	return json.Marshal(m)
}

// UnmarshalJSON splits Status/Reason out of the flattened object, leaving
// everything else in Extra.
func (r *Response) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if v, ok := m["status"].(string); ok {
		r.Status = v
		delete(m, "status")
	}
	if v, ok := m["reason"].(string); ok {
		r.Reason = v
		delete(m, "reason")
	}
	r.Extra = m
	return nil
}

// MarshalJSON flattens Extra alongside Type.
func (p Push) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.Extra)+1)
	for k, v := range p.Extra {
		m[k] = v
	}
	m["type"] = p.Type
	return json.Marshal(m)
}

// IsOK reports whether a decoded Response has status "ok".
func (r Response) IsOK() bool {
	return r.Status == "ok"
}
