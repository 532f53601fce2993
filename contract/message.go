package contract

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

const (
	// MetadataTopic carries the rendered topic through watermill metadata.
	MetadataTopic = "topic"
	// MetadataContentType names the payload encoding.
	MetadataContentType = "content_type"

	ContentTypeJSON = "application/json"
)

// NewMessage wraps p in a watermill message addressed to topic. The payload is
// JSON encoded and the message gets a random UUID.
func NewMessage(topic string, p Payload) (*message.Message, error) {
	data, err := p.ToJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload for topic %s: %w", topic, err)
	}

	msg := message.NewMessage(uuid.NewString(), data)
	msg.Metadata.Set(MetadataTopic, topic)
	msg.Metadata.Set(MetadataContentType, ContentTypeJSON)
	return msg, nil
}

// Publish builds a message for p and publishes it on topic.
func Publish(pub message.Publisher, topic string, p Payload) error {
	msg, err := NewMessage(topic, p)
	if err != nil {
		return err
	}
	if err := pub.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// Decoder is implemented by pointers to generated payload types.
type Decoder[T any] interface {
	*T
	FromJSON(data []byte) error
}

// Decode reads the JSON payload of msg into a T.
func Decode[T any, PT Decoder[T]](msg *message.Message) (T, error) {
	var v T
	if ct := msg.Metadata.Get(MetadataContentType); ct != "" && ct != ContentTypeJSON {
		return v, fmt.Errorf("unsupported content type %q", ct)
	}
	if err := PT(&v).FromJSON(msg.Payload); err != nil {
		return v, err
	}
	return v, nil
}
