package training

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// Example is one labeled listing from a training dataset file.
type Example struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// LoadExamples reads and concatenates all dataset files in argument order.
// Each file holds a JSON array of examples. A bad path or malformed file
// is fatal to the whole load; a partial corpus must never train silently.
func LoadExamples(paths []string) ([]Example, error) {
	var examples []Example
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read dataset %s: %w", path, err)
		}

		var batch []Example
		if err := json.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("parse dataset %s: %w", path, err)
		}

		examples = append(examples, batch...)
	}
	return examples, nil
}
