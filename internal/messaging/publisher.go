package messaging

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
)

// Publisher enqueues notification events for asynchronous delivery. Callers
// treat publishing as fire-and-forget: a failed enqueue is logged by the
// caller and never fails the triggering operation.
type Publisher interface {
	PublishUploadLiked(event UploadLikedEvent) error
	PublishMessageSent(event MessageSentEvent) error
}

// NatsPublisher implements Publisher on a NATS connection
type NatsPublisher struct {
	nc *nats.Conn
}

// NewNatsPublisher creates a new NatsPublisher
func NewNatsPublisher(nc *nats.Conn) *NatsPublisher {
	return &NatsPublisher{nc: nc}
}

// PublishUploadLiked publishes an upload-liked event
func (p *NatsPublisher) PublishUploadLiked(event UploadLikedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.nc.Publish(SubjectUploadLiked, data)
}

// PublishMessageSent publishes a message-sent event
func (p *NatsPublisher) PublishMessageSent(event MessageSentEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.nc.Publish(SubjectMessageSent, data)
}
