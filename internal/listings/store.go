// Package listings holds the minimal listing persistence the tagging loop
// touches. The marketplace application owns the full listing schema; this
// store carries only the fields the classifier reads and the tag
// associations it writes.
package listings

import "context"

// Listing is the minimal listing shape the tagging loop needs.
type Listing struct {
	ID          int64
	Title       string
	Description string
}

// Store is the listing collaborator the tagging task calls back into.
type Store interface {
	// Create inserts a listing and returns it with its assigned ID.
	Create(ctx context.Context, title, description string) (Listing, error)

	// Update replaces a listing's title and description.
	Update(ctx context.Context, id int64, title, description string) error

	// Get fetches a listing. The bool reports whether it exists.
	Get(ctx context.Context, id int64) (Listing, bool, error)

	// Delete removes a listing and its tag associations.
	Delete(ctx context.Context, id int64) error

	// AttachTags replaces the listing's current tag set with tags.
	// Replace semantics make the operation idempotent, so duplicate or
	// reordered task deliveries converge on the last writer's set.
	// Reports ErrListingMissing when the listing no longer exists.
	AttachTags(ctx context.Context, id int64, tags []string) error

	// Tags returns the listing's current tags.
	Tags(ctx context.Context, id int64) ([]string, error)

	// Untagged returns up to limit listings with no tag associations,
	// oldest first. The worker sweeps these into the tagging queue.
	Untagged(ctx context.Context, limit int) ([]Listing, error)

	Close() error
}
