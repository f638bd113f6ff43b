// Package training orchestrates the offline batch job that fits a new
// model unit from labeled listing datasets. It is operator-triggered and
// never part of the live tagging path.
package training

import (
	"fmt"

	"github.com/quadlist/tagger/pkg/tagger/classifier"
	"github.com/quadlist/tagger/pkg/tagger/internalerr"
	"github.com/quadlist/tagger/pkg/tagger/label"
	"github.com/quadlist/tagger/pkg/tagger/modelstore"
	"github.com/quadlist/tagger/pkg/tagger/textproc"
)

const (
	// holdOutFraction of the corpus is reserved for the evaluation
	// report when Evaluate is set.
	holdOutFraction = 0.2

	// splitSeed keeps evaluation splits reproducible across runs.
	splitSeed = 1
)

// Options configures a training run.
type Options struct {
	// DatasetPaths are JSON dataset files, concatenated in order.
	DatasetPaths []string

	// IncludeDescriptions composes feature text as title+description
	// instead of title alone. Title-only is the validated default;
	// descriptions add recall at the cost of noise. The choice is
	// persisted with the model so inference always matches.
	IncludeDescriptions bool

	// Evaluate reserves a held-out portion and produces a per-tag report.
	// The held-out examples are not trained on.
	Evaluate bool

	// ModelDir, when set, persists the trained unit there.
	ModelDir string

	// Stopwords overrides the default stopword list when non-nil.
	Stopwords []string

	// MaxDF overrides the document-frequency cutoff when > 0.
	MaxDF float64

	// Classifier holds training hyperparameters; zero values take
	// defaults.
	Classifier classifier.Config
}

// Result is the outcome of a training run.
type Result struct {
	Unit        *modelstore.Unit
	Report      *classifier.Report
	Examples    int
	DroppedTags []string
}

// Run executes the pipeline: load datasets, compose feature text, fit the
// encoder and vectorizer jointly on the full corpus, train the classifier,
// optionally evaluate, and persist. Any failure halts the run before
// anything is persisted.
func Run(opts Options) (*Result, error) {
	if len(opts.DatasetPaths) == 0 {
		return nil, fmt.Errorf("no dataset paths: %w", internalerr.ErrInvalidInput)
	}

	examples, err := LoadExamples(opts.DatasetPaths)
	if err != nil {
		return nil, err
	}
	if len(examples) == 0 {
		return nil, fmt.Errorf("datasets contain no examples: %w", internalerr.ErrInvalidInput)
	}

	texts := make([]string, len(examples))
	tagSets := make([][]string, len(examples))
	for i, ex := range examples {
		texts[i] = textproc.ComposeText(ex.Title, ex.Description, opts.IncludeDescriptions)
		tagSets[i] = ex.Tags
	}

	encoder := label.NewEncoder()
	labels, dropped := encoder.EncodeAll(tagSets)

	stopwords := opts.Stopwords
	if stopwords == nil {
		stopwords = textproc.DefaultStopwords
	}
	maxDF := opts.MaxDF
	if maxDF <= 0 {
		maxDF = 0.90
	}

	vectorizer := textproc.NewVectorizer(stopwords, maxDF)
	if err := vectorizer.Fit(texts); err != nil {
		return nil, fmt.Errorf("fit vectorizer: %w", err)
	}

	features, err := vectorizer.Transform(texts)
	if err != nil {
		return nil, fmt.Errorf("transform corpus: %w", err)
	}

	trainX, trainY := features, labels
	var testX []textproc.Vector
	var testY []label.Vector
	if opts.Evaluate {
		trainX, testX, trainY, testY = classifier.Split(features, labels, holdOutFraction, splitSeed)
	}

	model, err := classifier.Train(trainX, trainY, vectorizer.Size(), opts.Classifier)
	if err != nil {
		return nil, fmt.Errorf("train classifier: %w", err)
	}

	result := &Result{
		Unit: &modelstore.Unit{
			Vectorizer:          vectorizer,
			Encoder:             encoder,
			Model:               model,
			IncludeDescriptions: opts.IncludeDescriptions,
		},
		Examples:    len(examples),
		DroppedTags: dropped,
	}

	if opts.Evaluate {
		report := classifier.Evaluate(model, testX, testY, encoder.Classes)
		result.Report = &report
	}

	if opts.ModelDir != "" {
		if err := modelstore.Save(result.Unit, opts.ModelDir); err != nil {
			return nil, fmt.Errorf("persist model: %w", err)
		}
	}

	return result, nil
}
