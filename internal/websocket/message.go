package websocket

import (
	"encoding/json"
	"time"
)

// Message types
const (
	TypeConnection     = "connection"
	TypeDocumentUpdate = "document_update"
)

// Message is the envelope of every frame sent to clients.
type Message struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	TraceID   string      `json:"trace_id,omitempty"`
}

// DocumentUpdate tells clients that the data file changed and views should
// be fetched again.
type DocumentUpdate struct {
	Change string `json:"change"`
	Path   string `json:"path,omitempty"`
}

func encode(msg Message) ([]byte, error) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	return json.Marshal(msg)
}
