package listings

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/quadlist/tagger/pkg/tagger/internalerr"
)

// MemStore is an in-memory implementation of Store for tests.
type MemStore struct {
	mu       sync.RWMutex
	nextID   int64
	listings map[int64]Listing
	tags     map[int64][]string
}

// NewMemStore creates a new in-memory listing store.
func NewMemStore() *MemStore {
	return &MemStore{
		nextID:   1,
		listings: make(map[int64]Listing),
		tags:     make(map[int64][]string),
	}
}

// Close implements Store.
func (s *MemStore) Close() error { return nil }

func (s *MemStore) Create(ctx context.Context, title, description string) (Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := Listing{ID: s.nextID, Title: title, Description: description}
	s.nextID++
	s.listings[l.ID] = l
	return l, nil
}

func (s *MemStore) Update(ctx context.Context, id int64, title, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[id]; !ok {
		return fmt.Errorf("listing %d: %w", id, internalerr.ErrListingMissing)
	}
	s.listings[id] = Listing{ID: id, Title: title, Description: description}
	return nil
}

func (s *MemStore) Get(ctx context.Context, id int64) (Listing, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.listings[id]
	return l, ok, nil
}

func (s *MemStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.listings, id)
	delete(s.tags, id)
	return nil
}

func (s *MemStore) AttachTags(ctx context.Context, id int64, tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[id]; !ok {
		return fmt.Errorf("listing %d: %w", id, internalerr.ErrListingMissing)
	}

	set := make(map[string]struct{}, len(tags))
	replaced := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := set[tag]; ok {
			continue
		}
		set[tag] = struct{}{}
		replaced = append(replaced, tag)
	}
	sort.Strings(replaced)

	s.tags[id] = replaced
	return nil
}

func (s *MemStore) Untagged(ctx context.Context, limit int) ([]Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.listings))
	for id := range s.listings {
		if len(s.tags[id]) == 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []Listing
	for _, id := range ids {
		if len(out) >= limit {
			break
		}
		out = append(out, s.listings[id])
	}
	return out, nil
}

func (s *MemStore) Tags(ctx context.Context, id int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tags := make([]string, len(s.tags[id]))
	copy(tags, s.tags[id])
	return tags, nil
}
