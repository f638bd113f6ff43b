package label

import "github.com/quadlist/tagger/pkg/tagger/vocab"

// Vector is a fixed-width binary label vector, one entry per vocabulary
// tag, in vocabulary order.
type Vector []bool

// Encoder converts between tag sets and binary label vectors. The output
// width and index order are fixed to the full closed vocabulary, not just
// the tags observed in training, so models trained on partial corpora
// still produce full-width predictions.
type Encoder struct {
	Classes []string
}

// NewEncoder creates an encoder targeting the full tag vocabulary.
func NewEncoder() *Encoder {
	return &Encoder{Classes: vocab.Tags()}
}

// Fit scans the training tag sets and returns the distinct unknown tags
// found. The encoder's width is fixed to the vocabulary regardless, so
// unknown tags only matter as a data-quality signal for the caller to log.
func (e *Encoder) Fit(tagSets [][]string) []string {
	seen := make(map[string]struct{})
	var dropped []string
	for _, tags := range tagSets {
		for _, t := range tags {
			if vocab.Contains(t) {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			dropped = append(dropped, t)
		}
	}
	return dropped
}

// Encode converts a tag set into a binary vector. Tags outside the
// vocabulary are dropped and returned so the caller can surface them.
func (e *Encoder) Encode(tags []string) (Vector, []string) {
	vec := make(Vector, len(e.Classes))
	var dropped []string
	for _, t := range tags {
		idx := vocab.Index(t)
		if idx < 0 {
			dropped = append(dropped, t)
			continue
		}
		vec[idx] = true
	}
	return vec, dropped
}

// EncodeAll encodes a sequence of tag sets, collecting the distinct
// dropped tags in first-seen order.
func (e *Encoder) EncodeAll(tagSets [][]string) ([]Vector, []string) {
	vecs := make([]Vector, len(tagSets))
	seen := make(map[string]struct{})
	var dropped []string
	for i, tags := range tagSets {
		var d []string
		vecs[i], d = e.Encode(tags)
		for _, t := range d {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			dropped = append(dropped, t)
		}
	}
	return vecs, dropped
}

// Decode converts a binary vector back into tags, in vocabulary order.
func (e *Encoder) Decode(v Vector) []string {
	var tags []string
	for i, set := range v {
		if set && i < len(e.Classes) {
			tags = append(tags, e.Classes[i])
		}
	}
	return tags
}
