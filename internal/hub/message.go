package hub

import (
	"encoding/json"
	"fmt"
)

// Message types pushed to the browser.
const (
	TypeRegion      = "region"
	TypeAlert       = "alert"
	TypeSuggestions = "suggestions"
	TypeValue       = "value"
	TypePong        = "pong"
)

type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type RegionPayload struct {
	Region string `json:"region"`
	HTML   string `json:"html"`
}

type AlertPayload struct {
	Message string `json:"message"`
}

type Suggestion struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// SuggestionsPayload answers a search. Hint is set instead of results when
// the term was too short to search.
type SuggestionsPayload struct {
	Field   string       `json:"field"`
	Term    string       `json:"term"`
	Results []Suggestion `json:"results"`
	Hint    string       `json:"hint,omitempty"`
}

type ValuePayload struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Label string `json:"label"`
}

// SendMessage encodes a message and queues it for the client.
func (c *Client) SendMessage(msgType string, payload any) error {
	data, err := json.Marshal(Message{Type: msgType, Payload: payload})
	if err != nil {
		return fmt.Errorf("encode %s message: %w", msgType, err)
	}
	if err := c.Push(data); err != nil {
		return fmt.Errorf("send %s message to %s: %w", msgType, c.ID, err)
	}
	return nil
}
