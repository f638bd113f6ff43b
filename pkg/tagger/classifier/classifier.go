package classifier

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/quadlist/tagger/pkg/tagger/internalerr"
	"github.com/quadlist/tagger/pkg/tagger/label"
	"github.com/quadlist/tagger/pkg/tagger/textproc"
)

// Config contains training hyperparameters for the one-vs-rest model.
type Config struct {
	// LearningRate is the SGD step size.
	// Default: 0.5.
	LearningRate float64

	// Regularization is the L2 regularization parameter.
	// Default: 1e-4.
	Regularization float64

	// Epochs is the number of passes over the training corpus.
	// Default: 300.
	Epochs int

	// Seed makes training reproducible.
	// Default: 1.
	Seed int64
}

// DefaultConfig returns default training configuration.
func DefaultConfig() Config {
	return Config{
		LearningRate:   0.5,
		Regularization: 1e-4,
		Epochs:         300,
		Seed:           1,
	}
}

func (c Config) withDefaults() Config {
	if c.LearningRate <= 0 {
		c.LearningRate = 0.5
	}
	if c.Regularization < 0 {
		c.Regularization = 1e-4
	}
	if c.Epochs <= 0 {
		c.Epochs = 300
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
	return c
}

// Model is a multi-label tag classifier: one independent calibrated linear
// binary classifier per vocabulary tag (one-vs-rest decomposition), trained
// on TF-IDF features. Probability outputs come from the logistic link, so
// predictions can be ranked and thresholded by confidence rather than by
// hard membership alone.
//
// A tag with zero positive training examples trains to a degenerate
// always-negative sub-classifier. That is an operator responsibility
// (ensure corpus coverage per tag), not a runtime error.
type Model struct {
	Config Config

	// Weights holds one dense weight row per tag (numTags x numFeatures).
	Weights [][]float64

	// Bias holds one intercept per tag.
	Bias []float64

	// NumFeatures is the feature dimensionality the model was trained
	// against. It must match the producing vectorizer.
	NumFeatures int
}

// Train fits one binary classifier per tag with seeded SGD on logistic
// loss. numFeatures is the fitted vectorizer's vocabulary size.
func Train(features []textproc.Vector, labels []label.Vector, numFeatures int, cfg Config) (*Model, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("no training examples: %w", internalerr.ErrInvalidInput)
	}
	if len(features) != len(labels) {
		return nil, fmt.Errorf("features/labels length mismatch (%d vs %d): %w",
			len(features), len(labels), internalerr.ErrInvalidInput)
	}
	if numFeatures <= 0 {
		return nil, fmt.Errorf("invalid feature dimensionality %d: %w",
			numFeatures, internalerr.ErrInvalidInput)
	}

	cfg = cfg.withDefaults()
	numTags := len(labels[0])

	m := &Model{
		Config:      cfg,
		Weights:     make([][]float64, numTags),
		Bias:        make([]float64, numTags),
		NumFeatures: numFeatures,
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	order := make([]int, len(features))
	for i := range order {
		order[i] = i
	}

	for tag := 0; tag < numTags; tag++ {
		w := make([]float64, numFeatures)
		var b float64

		for epoch := 0; epoch < cfg.Epochs; epoch++ {
			rng.Shuffle(len(order), func(i, j int) {
				order[i], order[j] = order[j], order[i]
			})

			for _, i := range order {
				y := 0.0
				if tag < len(labels[i]) && labels[i][tag] {
					y = 1.0
				}

				p := sigmoid(features[i].Dot(w) + b)
				g := p - y

				for idx, val := range features[i] {
					w[idx] -= cfg.LearningRate * (g*val + cfg.Regularization*w[idx])
				}
				b -= cfg.LearningRate * g
			}
		}

		m.Weights[tag] = w
		m.Bias[tag] = b
	}

	return m, nil
}

// Probabilities returns the per-tag membership probability vector for one
// feature vector, in vocabulary order.
func (m *Model) Probabilities(x textproc.Vector) []float64 {
	probs := make([]float64, len(m.Weights))
	for tag := range m.Weights {
		probs[tag] = sigmoid(x.Dot(m.Weights[tag]) + m.Bias[tag])
	}
	return probs
}

// PredictProbabilities returns per-tag probability vectors for a batch of
// feature vectors.
func (m *Model) PredictProbabilities(features []textproc.Vector) [][]float64 {
	out := make([][]float64, len(features))
	for i, x := range features {
		out[i] = m.Probabilities(x)
	}
	return out
}

// NumTags returns the number of per-tag sub-classifiers.
func (m *Model) NumTags() int {
	return len(m.Weights)
}

func sigmoid(z float64) float64 {
	if z > 30 {
		return 1
	}
	if z < -30 {
		return 0
	}
	return 1 / (1 + math.Exp(-z))
}
