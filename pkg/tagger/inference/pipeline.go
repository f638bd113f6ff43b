// Package inference turns listing text into a ranked, thresholded tag
// list using a loaded model unit.
package inference

import (
	"fmt"
	"sort"

	"github.com/quadlist/tagger/pkg/tagger/modelstore"
	"github.com/quadlist/tagger/pkg/tagger/textproc"
	"github.com/quadlist/tagger/pkg/tagger/vocab"
)

const (
	// ConfidenceFloor: when even the top-ranked tag falls below this,
	// the model is not confident enough to commit to a specific
	// category and the fallback tag is returned instead. The boundary
	// is inclusive: exactly 0.25 keeps the specific-tag path.
	ConfidenceFloor = 0.25

	// TagCutoff: among the top-ranked candidates, only those above this
	// probability are returned (always at least one).
	TagCutoff = 0.5

	// MaxTags bounds the number of returned tags.
	MaxTags = 3
)

// Prediction is one ranked tag with its membership probability.
type Prediction struct {
	Tag         string
	Probability float64
}

// Predict composes the listing's feature text per the unit's persisted
// includeDescriptions flag, vectorizes it, and applies the tag-selection
// policy. It always returns between 1 and MaxTags predictions.
func Predict(unit *modelstore.Unit, title, description string) ([]Prediction, error) {
	if unit == nil {
		return nil, fmt.Errorf("nil model unit")
	}

	text := textproc.ComposeText(title, description, unit.IncludeDescriptions)

	vec, err := unit.Vectorizer.TransformOne(text)
	if err != nil {
		return nil, fmt.Errorf("vectorize listing: %w", err)
	}

	// No overlap with the fitted vocabulary means the model has no
	// evidence to rank on; fall through to the generic tag rather than
	// reading noise out of bias terms.
	if len(vec) == 0 {
		return []Prediction{{Tag: vocab.Fallback}}, nil
	}

	probs := unit.Model.Probabilities(vec)
	return SelectTags(probs, unit.Encoder.Classes), nil
}

// SelectTags applies the two-threshold selection policy to a per-tag
// probability vector: rank descending, keep the top MaxTags; if the best
// probability is below ConfidenceFloor return exactly the fallback tag;
// otherwise return the top candidates above TagCutoff, never fewer than
// one. The asymmetric thresholds trade recall of the generic fallback
// against precision of specific tags; they are a business rule, not a
// statistical artifact.
func SelectTags(probs []float64, classes []string) []Prediction {
	order := make([]int, len(probs))
	for i := range order {
		order[i] = i
	}
	// Ties break toward the earlier vocabulary entry for determinism.
	sort.SliceStable(order, func(a, b int) bool {
		return probs[order[a]] > probs[order[b]]
	})

	if len(order) > MaxTags {
		order = order[:MaxTags]
	}

	if len(order) == 0 || probs[order[0]] < ConfidenceFloor {
		return []Prediction{{Tag: vocab.Fallback, Probability: fallbackProb(probs, classes)}}
	}

	k := 0
	for _, idx := range order {
		if probs[idx] > TagCutoff {
			k++
		}
	}
	if k < 1 {
		k = 1
	}

	out := make([]Prediction, 0, k)
	for _, idx := range order[:k] {
		out = append(out, Prediction{Tag: tagName(classes, idx), Probability: probs[idx]})
	}
	return out
}

// Tags strips probabilities from a prediction list.
func Tags(preds []Prediction) []string {
	tags := make([]string, len(preds))
	for i, p := range preds {
		tags[i] = p.Tag
	}
	return tags
}

func tagName(classes []string, idx int) string {
	if idx < len(classes) {
		return classes[idx]
	}
	return vocab.Fallback
}

func fallbackProb(probs []float64, classes []string) float64 {
	for i, c := range classes {
		if c == vocab.Fallback && i < len(probs) {
			return probs[i]
		}
	}
	return 0
}
