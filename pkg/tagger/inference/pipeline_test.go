package inference

import (
	"reflect"
	"testing"

	"github.com/quadlist/tagger/pkg/tagger/classifier"
	"github.com/quadlist/tagger/pkg/tagger/label"
	"github.com/quadlist/tagger/pkg/tagger/modelstore"
	"github.com/quadlist/tagger/pkg/tagger/textproc"
	"github.com/quadlist/tagger/pkg/tagger/vocab"
)

func TestSelectTags(t *testing.T) {
	classes := []string{"math", "pencil", "desk", "lamp", "misc"}

	tests := []struct {
		name  string
		probs []float64
		want  []string
	}{
		{
			name:  "below floor returns exactly misc",
			probs: []float64{0.24, 0.10, 0.05, 0.01, 0.02},
			want:  []string{"misc"},
		},
		{
			name:  "floor is inclusive",
			probs: []float64{0.25, 0.10, 0.05, 0.01, 0.02},
			want:  []string{"math"},
		},
		{
			name:  "one confident tag",
			probs: []float64{0.90, 0.30, 0.10, 0.05, 0.02},
			want:  []string{"math"},
		},
		{
			name:  "two above cutoff",
			probs: []float64{0.90, 0.10, 0.80, 0.05, 0.02},
			want:  []string{"math", "desk"},
		},
		{
			name:  "never more than three",
			probs: []float64{0.90, 0.85, 0.80, 0.75, 0.02},
			want:  []string{"math", "pencil", "desk"},
		},
		{
			name:  "cutoff is exclusive",
			probs: []float64{0.90, 0.50, 0.50, 0.05, 0.02},
			want:  []string{"math"},
		},
		{
			name:  "top between floor and cutoff keeps top only",
			probs: []float64{0.05, 0.40, 0.30, 0.10, 0.02},
			want:  []string{"pencil"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preds := SelectTags(tt.probs, classes)
			if got := Tags(preds); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SelectTags = %v, want %v", got, tt.want)
			}

			// Ranked descending, no duplicates.
			seen := make(map[string]struct{})
			for i, p := range preds {
				if i > 0 && preds[i-1].Probability < p.Probability {
					t.Errorf("predictions not sorted descending: %v", preds)
				}
				if _, ok := seen[p.Tag]; ok {
					t.Errorf("duplicate tag %q", p.Tag)
				}
				seen[p.Tag] = struct{}{}
			}
		})
	}
}

func TestSelectTagsBounds(t *testing.T) {
	classes := []string{"math", "pencil", "misc"}

	// Whatever the probabilities, the result holds 1 to 3 known tags.
	cases := [][]float64{
		{0, 0, 0},
		{1, 1, 1},
		{0.25, 0.25, 0.25},
		{0.6, 0.5, 0.4},
	}
	for _, probs := range cases {
		preds := SelectTags(probs, classes)
		if len(preds) < 1 || len(preds) > MaxTags {
			t.Errorf("SelectTags(%v) returned %d predictions", probs, len(preds))
		}
		for _, p := range preds {
			if !vocab.Contains(p.Tag) {
				t.Errorf("unknown tag %q in result", p.Tag)
			}
		}
	}
}

// trainUnit fits a small real unit for pipeline-level tests.
func trainUnit(t *testing.T) *modelstore.Unit {
	t.Helper()

	titles := []string{
		"calculus textbook", "algebra textbook", "geometry textbook",
		"mechanical pencil", "wooden pencil pack", "pencil sharpener",
	}
	tagSets := [][]string{
		{"math"}, {"math"}, {"math"},
		{"pencil"}, {"pencil"}, {"pencil"},
	}

	encoder := label.NewEncoder()
	labels, _ := encoder.EncodeAll(tagSets)

	vectorizer := textproc.NewVectorizer(textproc.DefaultStopwords, 0.9)
	if err := vectorizer.Fit(titles); err != nil {
		t.Fatalf("fit vectorizer: %v", err)
	}
	features, err := vectorizer.Transform(titles)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}

	model, err := classifier.Train(features, labels, vectorizer.Size(), classifier.DefaultConfig())
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	return &modelstore.Unit{
		Vectorizer: vectorizer,
		Encoder:    encoder,
		Model:      model,
	}
}

func TestPredictKnownListing(t *testing.T) {
	unit := trainUnit(t)

	preds, err := Predict(unit, "calculus textbook", "")
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	if len(preds) < 1 || len(preds) > MaxTags {
		t.Fatalf("got %d predictions", len(preds))
	}
	if preds[0].Tag != "math" {
		t.Errorf("top tag = %q, want math (preds %v)", preds[0].Tag, preds)
	}
}

func TestPredictNoVocabularyOverlap(t *testing.T) {
	unit := trainUnit(t)

	preds, err := Predict(unit, "xyzzy qqq", "")
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	if got := Tags(preds); !reflect.DeepEqual(got, []string{vocab.Fallback}) {
		t.Errorf("unseen text = %v, want [%s]", got, vocab.Fallback)
	}
}
