package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/quadlist/tagger/pkg/tagger"
	"github.com/quadlist/tagger/pkg/tagger/internalerr"
)

func main() {
	var (
		modelDir = flag.String("model", "model", "Model directory")
		title    = flag.String("title", "", "Listing title (required)")
		desc     = flag.String("desc", "", "Listing description (optional)")
	)
	flag.Parse()

	if *title == "" {
		log.Fatal("--title required")
	}

	engine := tagger.New(tagger.Options{ModelDir: *modelDir})

	preds, err := engine.Predict(*title, *desc)
	if err != nil {
		if errors.Is(err, internalerr.ErrModelNotFound) {
			log.Fatal("No trained model found. Run tagtrain first.")
		}
		log.Fatal("Prediction failed: ", err)
	}

	for _, p := range preds {
		fmt.Printf("%-20s %.3f\n", p.Tag, p.Probability)
	}
}
