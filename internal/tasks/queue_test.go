package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/quadlist/tagger/internal/listings"
)

// waitForTags polls until the listing has tags or the deadline passes.
func waitForTags(t *testing.T, store listings.Store, id int64) []string {
	t.Helper()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for tags")
			return nil
		case <-time.After(20 * time.Millisecond):
			tags, err := store.Tags(context.Background(), id)
			if err != nil {
				t.Fatalf("Tags: %v", err)
			}
			if len(tags) > 0 {
				return tags
			}
		}
	}
}

func TestQueueEndToEnd(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := listings.NewMemStore()
	l, _ := store.Create(ctx, "calculus textbook", "")

	log := zerolog.Nop()
	queue := NewQueue(log)
	defer queue.Close()

	h := NewHandler(trainedEngine(t), store, log, nil)
	router, err := NewRouter(queue, DefaultTopic, h, log)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}

	go func() {
		_ = router.Run(ctx)
	}()
	<-router.Running()

	pub := NewPublisher(queue, DefaultTopic)
	if err := pub.Enqueue(TaggingRequest{ListingID: l.ID, Title: l.Title}); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	tags := waitForTags(t, store, l.ID)
	if tags[0] == "" {
		t.Errorf("empty tag attached: %v", tags)
	}
}

func TestSweeperEnqueuesUntagged(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := listings.NewMemStore()
	l, _ := store.Create(ctx, "mechanical pencil set", "")

	log := zerolog.Nop()
	queue := NewQueue(log)
	defer queue.Close()

	h := NewHandler(trainedEngine(t), store, log, nil)
	router, err := NewRouter(queue, DefaultTopic, h, log)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}

	go func() {
		_ = router.Run(ctx)
	}()
	<-router.Running()

	sweeper := NewSweeper(store, NewPublisher(queue, DefaultTopic), log, time.Minute, 10)
	sweeper.Sweep(ctx)

	tags := waitForTags(t, store, l.ID)
	if len(tags) == 0 {
		t.Error("sweeper did not lead to tags")
	}
}
