package wire

import (
	"encoding/json"
	"fmt"
	"io"
)

// SendJSON marshals v and writes it as one framed message.
func SendJSON(w io.Writer, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("wire: marshal: %w", err)
	}
	return WriteMessage(w, body)
}

// ReadJSON reads one framed message and unmarshals it into v.
func ReadJSON(r io.Reader, v any) error {
	body, err := ReadMessage(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("wire: unmarshal: %w", err)
	}
	return nil
}
