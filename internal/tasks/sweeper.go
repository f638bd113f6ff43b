package tasks

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/quadlist/tagger/internal/listings"
)

// Sweeper periodically enqueues untagged listings. Besides feeding the
// queue on a fresh database, it repairs listings whose original tagging
// task was lost to a crash: the attach step is a full tag-set replace, so
// re-enqueueing is always safe.
type Sweeper struct {
	store    listings.Store
	pub      *Publisher
	log      zerolog.Logger
	interval time.Duration
	batch    int
}

// NewSweeper creates a sweeper that scans every interval, enqueueing at
// most batch listings per pass.
func NewSweeper(store listings.Store, pub *Publisher, log zerolog.Logger, interval time.Duration, batch int) *Sweeper {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if batch <= 0 {
		batch = 100
	}
	return &Sweeper{store: store, pub: pub, log: log, interval: interval, batch: batch}
}

// Run sweeps until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one pass.
func (s *Sweeper) Sweep(ctx context.Context) {
	batch, err := s.store.Untagged(ctx, s.batch)
	if err != nil {
		s.log.Error().Err(err).Msg("untagged sweep query failed")
		return
	}

	for _, l := range batch {
		req := TaggingRequest{ListingID: l.ID, Title: l.Title, Description: l.Description}
		if err := s.pub.Enqueue(req); err != nil {
			s.log.Error().Err(err).Int64("listing_id", l.ID).Msg("enqueue failed")
		}
	}

	if len(batch) > 0 {
		s.log.Debug().Int("count", len(batch)).Msg("enqueued untagged listings")
	}
}
