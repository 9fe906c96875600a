package queue

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Message is a single published value with its routing metadata.
// Messages are immutable once constructed; the queue, the replay buffers and
// the broadcast bridge all share the same value read-only.
type Message struct {
	// ID is the globally unique message identifier.
	ID string

	// TopicID is the local ID of the topic this message was published to.
	// IDs are private per instance; the bridge reconciles topics by name.
	TopicID uint32

	// OriginID is the client ID of the instance that first published the
	// message. Used by the bridge to suppress self-echo.
	OriginID string

	// Payload is the published value. The queue never inspects it.
	Payload any

	// Timestamp is the message creation time.
	Timestamp time.Time
}

// Handler processes messages delivered to a subscription. A returned error is
// logged and isolated per subscriber; it never aborts delivery to others and
// never reaches the publisher.
type Handler func(ctx context.Context, msg Message) error

func newMessage(topicID uint32, payload any, originID string) Message {
	return Message{
		ID:        uuid.New().String(),
		TopicID:   topicID,
		OriginID:  originID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}
