package domain

import (
	"encoding/json"
	"time"
)

// Delivery is the record persisted sinks store for every result they receive.
type Delivery struct {
	ID        string          `json:"id"`
	Sink      string          `json:"sink"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}
