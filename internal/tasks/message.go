// Package tasks dispatches listing-tagging work to a background queue,
// decoupled from the request that created or updated the listing. Tasks
// are fire-and-forget: the listing write has already committed by the time
// a task runs, and a tagging failure can never roll it back.
package tasks

import (
	"github.com/goccy/go-json"
)

// TaggingRequest is the payload enqueued after a listing's title or
// description changes.
type TaggingRequest struct {
	ListingID   int64  `json:"listing_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r TaggingRequest) marshal() ([]byte, error) {
	return json.Marshal(r)
}

func unmarshalRequest(data []byte) (TaggingRequest, error) {
	var r TaggingRequest
	err := json.Unmarshal(data, &r)
	return r, err
}
