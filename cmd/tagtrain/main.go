package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/quadlist/tagger/pkg/tagger/classifier"
	"github.com/quadlist/tagger/pkg/tagger/config"
	"github.com/quadlist/tagger/pkg/tagger/training"
)

func main() {
	var (
		configPath   = flag.String("config", "", "YAML config file (optional)")
		dataPaths    = flag.String("data", "", "Comma-separated JSON dataset files (required unless set in config)")
		modelDir     = flag.String("model", "", "Model output directory (overrides config)")
		includeDescs = flag.Bool("include-descriptions", false, "Train on title+description instead of title only")
		evaluate     = flag.Bool("evaluate", false, "Hold out 20% of the corpus and print a classification report")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal("Failed to load config: ", err)
		}
		cfg = loaded
	}

	if *dataPaths != "" {
		cfg.DatasetPaths = splitPaths(*dataPaths)
	}
	if *modelDir != "" {
		cfg.ModelDir = *modelDir
	}
	if *includeDescs {
		cfg.IncludeDescriptions = true
	}

	if len(cfg.DatasetPaths) == 0 {
		log.Fatal("--data required (or dataset_paths in config)")
	}

	result, err := training.Run(training.Options{
		DatasetPaths:        cfg.DatasetPaths,
		IncludeDescriptions: cfg.IncludeDescriptions,
		Evaluate:            *evaluate,
		ModelDir:            cfg.ModelDir,
		Stopwords:           cfg.Stopwords,
		MaxDF:               cfg.MaxDF,
		Classifier: classifier.Config{
			LearningRate:   cfg.Classifier.LearningRate,
			Regularization: cfg.Classifier.Regularization,
			Epochs:         cfg.Classifier.Epochs,
			Seed:           cfg.Classifier.Seed,
		},
	})
	if err != nil {
		log.Fatal("Training failed: ", err)
	}

	log.Printf("Trained on %d examples, model saved to %s", result.Examples, cfg.ModelDir)
	if len(result.DroppedTags) > 0 {
		log.Printf("Dropped unknown tags from training data: %s", strings.Join(result.DroppedTags, ", "))
	}
	if result.Report != nil {
		fmt.Print(result.Report.String())
	}
}

func splitPaths(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
