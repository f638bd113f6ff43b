package tasks

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// DefaultTopic is the tagging queue topic.
const DefaultTopic = "listings.tagging"

// NewQueue creates the in-process tagging queue. It is both the publisher
// side handed to the listing write path and the subscriber side consumed
// by the worker.
func NewQueue(log zerolog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{
		// Buffer so a burst of listing writes never blocks on the
		// CPU-bound consumer.
		OutputChannelBuffer: 64,
	}, newLoggerAdapter(log))
}

// Publisher enqueues tagging requests.
type Publisher struct {
	pub   message.Publisher
	topic string
}

// NewPublisher wraps a message publisher for the given topic.
func NewPublisher(pub message.Publisher, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{pub: pub, topic: topic}
}

// Enqueue publishes one tagging request. It returns as soon as the
// message is handed to the queue; the caller never waits for the
// prediction to run.
func (p *Publisher) Enqueue(req TaggingRequest) error {
	payload, err := req.marshal()
	if err != nil {
		return fmt.Errorf("encode tagging request: %w", err)
	}

	msg := message.NewMessage(ulid.Make().String(), payload)
	if err := p.pub.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("enqueue tagging for listing %d: %w", req.ListingID, err)
	}
	return nil
}
