// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "encoding/json"

// HoneypotRequest represents the primary endpoint request body. Message is a
// tagged union at the boundary: callers send either a plain string or an
// object with a text field. It is resolved once at ingestion; the engine
// only ever sees plain text.
type HoneypotRequest struct {
	SessionID string          `json:"sessionId"`
	Message   json.RawMessage `json:"message"`
}

// messageObject is the structured message shape.
type messageObject struct {
	Text string `json:"text"`
}

// MessageText resolves the message union into plain text. A non-string,
// non-object message, or a missing/empty text field, yields fallback:
// malformed input is normalized, never rejected.
func (r *HoneypotRequest) MessageText(fallback string) string {
	if len(r.Message) == 0 {
		return fallback
	}

	var text string
	if err := json.Unmarshal(r.Message, &text); err == nil {
		if text != "" {
			return text
		}
		return fallback
	}

	var obj messageObject
	if err := json.Unmarshal(r.Message, &obj); err == nil && obj.Text != "" {
		return obj.Text
	}

	return fallback
}

// MessageEventRequest represents the debug endpoint request body.
type MessageEventRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Message   string `json:"message" binding:"required"`
}
