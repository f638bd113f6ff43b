package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quadlist/tagger/pkg/tagger/internalerr"
	"github.com/quadlist/tagger/pkg/tagger/textproc"
)

// Config holds the settings shared by the training CLI and the tagging
// worker.
type Config struct {
	// ModelDir is where the trained model unit lives.
	ModelDir string `yaml:"model_dir"`

	// DatasetPaths are the JSON training data files, in training order.
	DatasetPaths []string `yaml:"dataset_paths"`

	// IncludeDescriptions composes training feature text as
	// title+description. Title-only is the validated default.
	IncludeDescriptions bool `yaml:"include_descriptions"`

	// Stopwords overrides the default stopword list when non-empty.
	Stopwords []string `yaml:"stopwords"`

	// MaxDF is the document-frequency cutoff for the vectorizer.
	MaxDF float64 `yaml:"max_df"`

	Classifier ClassifierConfig `yaml:"classifier"`
	Worker     WorkerConfig     `yaml:"worker"`
}

// ClassifierConfig holds training hyperparameters.
type ClassifierConfig struct {
	LearningRate   float64 `yaml:"learning_rate"`
	Regularization float64 `yaml:"regularization"`
	Epochs         int     `yaml:"epochs"`
	Seed           int64   `yaml:"seed"`
}

// WorkerConfig holds the tagging worker's settings.
type WorkerConfig struct {
	// DatabasePath is the listings SQLite database.
	DatabasePath string `yaml:"database_path"`

	// Topic is the tagging queue topic name.
	Topic string `yaml:"topic"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		ModelDir:  "model",
		MaxDF:     0.90,
		Stopwords: textproc.DefaultStopwords,
		Classifier: ClassifierConfig{
			LearningRate:   0.5,
			Regularization: 1e-4,
			Epochs:         300,
			Seed:           1,
		},
		Worker: WorkerConfig{
			Topic: "listings.tagging",
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for obvious mistakes.
func (c Config) Validate() error {
	if c.ModelDir == "" {
		return fmt.Errorf("model_dir is required: %w", internalerr.ErrInvalidConfig)
	}
	if c.MaxDF <= 0 || c.MaxDF > 1 {
		return fmt.Errorf("max_df must be in (0, 1], got %v: %w", c.MaxDF, internalerr.ErrInvalidConfig)
	}
	if c.Classifier.Epochs < 0 {
		return fmt.Errorf("classifier epochs must not be negative: %w", internalerr.ErrInvalidConfig)
	}
	if c.Worker.Topic == "" {
		return fmt.Errorf("worker topic is required: %w", internalerr.ErrInvalidConfig)
	}
	return nil
}
