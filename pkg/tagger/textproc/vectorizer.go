package textproc

import (
	"fmt"
	"math"
	"sort"

	"github.com/quadlist/tagger/pkg/tagger/internalerr"
)

// Vector is a sparse TF-IDF feature vector keyed by vocabulary index.
type Vector map[int]float64

// Dot returns the dot product of the vector with a dense weight slice.
func (v Vector) Dot(weights []float64) float64 {
	var sum float64
	for idx, val := range v {
		if idx < len(weights) {
			sum += weights[idx] * val
		}
	}
	return sum
}

// Vectorizer converts listing text into L2-normalized TF-IDF vectors over
// a vocabulary learned from the training corpus. Fit must be called exactly
// once, on the full corpus, before any Transform; the fitted vocabulary and
// IDF weights are part of the persisted model state.
type Vectorizer struct {
	// MaxDF drops terms appearing in more than this fraction of the
	// corpus. Such terms carry no discriminative signal.
	MaxDF float64

	// Stopwords are removed before counting.
	Stopwords []string

	// Vocabulary maps term to feature index, fixed at fit time.
	Vocabulary map[string]int

	// IDF holds the inverse-document-frequency weight per feature index.
	IDF []float64

	tok *Tokenizer
}

// NewVectorizer creates an unfitted vectorizer. A maxDF of 0 disables the
// document-frequency cutoff.
func NewVectorizer(stopwords []string, maxDF float64) *Vectorizer {
	return &Vectorizer{
		MaxDF:     maxDF,
		Stopwords: stopwords,
	}
}

func (v *Vectorizer) tokenizer() *Tokenizer {
	if v.tok == nil {
		v.tok = NewTokenizer(v.Stopwords)
	}
	return v.tok
}

// Fitted reports whether the vectorizer has a learned vocabulary.
func (v *Vectorizer) Fitted() bool {
	return len(v.Vocabulary) > 0
}

// Size returns the fitted vocabulary size.
func (v *Vectorizer) Size() int {
	return len(v.Vocabulary)
}

// Fit learns the vocabulary and IDF weights from the training corpus.
func (v *Vectorizer) Fit(texts []string) error {
	if v.Fitted() {
		return fmt.Errorf("vectorizer already fitted: %w", internalerr.ErrInvalidInput)
	}
	if len(texts) == 0 {
		return fmt.Errorf("empty corpus: %w", internalerr.ErrInvalidInput)
	}

	n := float64(len(texts))
	df := make(map[string]int)

	for _, text := range texts {
		seen := make(map[string]struct{})
		for _, tok := range v.tokenizer().Tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	// Sorted term order keeps feature indices, and therefore trained
	// weights, reproducible across runs.
	kept := make([]string, 0, len(df))
	for term, count := range df {
		if v.MaxDF > 0 && float64(count)/n > v.MaxDF {
			continue
		}
		kept = append(kept, term)
	}
	sort.Strings(kept)

	v.Vocabulary = make(map[string]int, len(kept))
	for i, term := range kept {
		v.Vocabulary[term] = i
	}

	if len(v.Vocabulary) == 0 {
		return fmt.Errorf("corpus produced no usable terms: %w", internalerr.ErrInvalidInput)
	}

	// Smoothed IDF: ln((1+N)/(1+df)) + 1
	v.IDF = make([]float64, len(v.Vocabulary))
	for term, idx := range v.Vocabulary {
		v.IDF[idx] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	return nil
}

// Transform converts texts into TF-IDF vectors using the fitted vocabulary.
// Terms outside the vocabulary are ignored.
func (v *Vectorizer) Transform(texts []string) ([]Vector, error) {
	if !v.Fitted() {
		return nil, fmt.Errorf("transform before fit: %w", internalerr.ErrNotFitted)
	}

	out := make([]Vector, len(texts))
	for i, text := range texts {
		out[i] = v.transformOne(text)
	}
	return out, nil
}

// TransformOne converts a single text into a TF-IDF vector.
func (v *Vectorizer) TransformOne(text string) (Vector, error) {
	if !v.Fitted() {
		return nil, fmt.Errorf("transform before fit: %w", internalerr.ErrNotFitted)
	}
	return v.transformOne(text), nil
}

func (v *Vectorizer) transformOne(text string) Vector {
	vec := make(Vector)
	for _, tok := range v.tokenizer().Tokenize(text) {
		if idx, ok := v.Vocabulary[tok]; ok {
			vec[idx] += v.IDF[idx]
		}
	}

	// L2 normalization keeps long and short titles comparable.
	var norm float64
	for _, val := range vec {
		norm += val * val
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range vec {
			vec[idx] /= norm
		}
	}

	return vec
}
