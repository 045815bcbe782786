package models

import "time"

// MessageRole identifies which side of the conversation authored a message.
type MessageRole string

const (
	// RoleScammer marks a message received from the remote counterpart.
	RoleScammer MessageRole = "scammer"
	// RoleAgent marks a reply authored by the honeypot.
	RoleAgent MessageRole = "agent"
)

// Message is a single conversation entry. Messages are immutable once
// appended to a session.
type Message struct {
	Role      MessageRole `json:"role"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
}
