package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string message", `{"sessionId":"s1","message":"hello there"}`, "hello there"},
		{"object message", `{"sessionId":"s1","message":{"text":"pay me"}}`, "pay me"},
		{"empty string", `{"sessionId":"s1","message":""}`, "Hello"},
		{"object without text", `{"sessionId":"s1","message":{"kind":"ping"}}`, "Hello"},
		{"object empty text", `{"sessionId":"s1","message":{"text":""}}`, "Hello"},
		{"missing message", `{"sessionId":"s1"}`, "Hello"},
		{"null message", `{"sessionId":"s1","message":null}`, "Hello"},
		{"number message", `{"sessionId":"s1","message":42}`, "Hello"},
		{"array message", `{"sessionId":"s1","message":["a"]}`, "Hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req HoneypotRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.MessageText("Hello"))
		})
	}
}
