package tasks

import (
	"errors"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/quadlist/tagger/internal/listings"
	"github.com/quadlist/tagger/pkg/tagger"
	"github.com/quadlist/tagger/pkg/tagger/inference"
	"github.com/quadlist/tagger/pkg/tagger/internalerr"
)

// Handler consumes tagging requests: predict tags for the listing text,
// then replace the listing's tag set. Errors are logged and swallowed,
// never returned: the triggering request has long since responded, a
// redelivery would not fix a deleted listing or a missing model, and one
// listing's failure must not poison the queue for the others.
type Handler struct {
	engine  *tagger.Engine
	store   listings.Store
	log     zerolog.Logger
	metrics *Metrics
}

// NewHandler creates a tagging handler. A nil metrics creates unregistered
// counters, which keeps tests free of a registry.
func NewHandler(engine *tagger.Engine, store listings.Store, log zerolog.Logger, metrics *Metrics) *Handler {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Handler{engine: engine, store: store, log: log, metrics: metrics}
}

// Handle processes one tagging request.
func (h *Handler) Handle(msg *message.Message) error {
	req, err := unmarshalRequest(msg.Payload)
	if err != nil {
		h.log.Error().Err(err).Str("message_id", msg.UUID).Msg("malformed tagging request dropped")
		h.metrics.Processed.WithLabelValues("failed").Inc()
		return nil
	}

	log := h.log.With().Int64("listing_id", req.ListingID).Logger()

	start := time.Now()
	preds, err := h.engine.Predict(req.Title, req.Description)
	h.metrics.Predict.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, internalerr.ErrModelNotFound) {
			log.Error().Err(err).Msg("no trained model available, run the trainer first")
		} else {
			log.Error().Err(err).Msg("tag prediction failed")
		}
		h.metrics.Processed.WithLabelValues("failed").Inc()
		return nil
	}

	tags := inference.Tags(preds)
	if err := h.store.AttachTags(msg.Context(), req.ListingID, tags); err != nil {
		if errors.Is(err, internalerr.ErrListingMissing) {
			// Deleted between enqueue and execution. Normal churn.
			log.Info().Msg("listing gone before tagging, skipping")
			h.metrics.Processed.WithLabelValues("listing_gone").Inc()
			return nil
		}
		log.Error().Err(err).Msg("attaching tags failed")
		h.metrics.Processed.WithLabelValues("failed").Inc()
		return nil
	}

	log.Info().Strs("tags", tags).Msg("listing tagged")
	h.metrics.Processed.WithLabelValues("tagged").Inc()
	return nil
}
