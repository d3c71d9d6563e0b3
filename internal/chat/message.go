// Package chat implements the floating assistant: the reply resolvers and the
// widget controller that owns one visitor's transcript.
package chat

import "time"

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one transcript entry. IDs are unique within a widget and
// increase in creation order.
type Message struct {
	ID        uint64    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

func (m Message) FromUser() bool { return m.Sender == SenderUser }
