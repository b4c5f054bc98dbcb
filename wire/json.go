package wire

import (
	"encoding/json"
	"io"
)

// WriteJSON encodes v as JSON and writes it as one frame. The boolean
// follows WriteFrame's contract: false means the writer was absent or
// closed and nothing was sent.
func WriteJSON(w io.Writer, v any) (bool, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return false, err
	}
	return WriteFrame(w, payload)
}

// ReadJSON reads one frame and decodes its payload into v. It returns
// false with a nil error when there is no message to decode (peer closed
// or unusable header).
func ReadJSON(r io.Reader, v any) (bool, error) {
	payload, err := ReadFrame(r)
	if err != nil {
		return false, err
	}
	if payload == nil {
		return false, nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return false, err
	}
	return true, nil
}
