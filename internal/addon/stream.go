package addon

import "encoding/json"

// GetStreamsResponse is only built for empty and failure answers; successful
// StremThru responses are relayed as received.
type GetStreamsResponse struct {
	Streams []json.RawMessage `json:"streams"`
	Error   string            `json:"error,omitempty"`
}
