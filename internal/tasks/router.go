package tasks

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/rs/zerolog"
)

// NewRouter wires the tagging handler onto the queue. Recoverer keeps a
// panicking prediction from taking the worker down with it.
func NewRouter(sub message.Subscriber, topic string, h *Handler, log zerolog.Logger) (*message.Router, error) {
	if topic == "" {
		topic = DefaultTopic
	}

	router, err := message.NewRouter(message.RouterConfig{}, newLoggerAdapter(log))
	if err != nil {
		return nil, err
	}

	router.AddMiddleware(middleware.Recoverer)
	router.AddNoPublisherHandler("listing-tagger", topic, sub, h.Handle)

	return router, nil
}
