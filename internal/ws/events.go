package ws

import (
	"time"
)

type EventType string

const (
	EventConnected    EventType = "session.connected"
	EventStateChanged EventType = "state.changed"
)

type Event struct {
	Type      EventType `json:"type"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}
