// Package tagger assigns category tags to marketplace listings from their
// title text using a trained multi-label model.
package tagger

import (
	"sync"

	"github.com/quadlist/tagger/pkg/tagger/inference"
	"github.com/quadlist/tagger/pkg/tagger/modelstore"
)

// Engine is the process-wide prediction facade. The model unit is loaded
// from the model directory on first use and treated as read-only for the
// rest of the process's life; retraining writes a new artifact that is
// only picked up by Reload or a restart, never by in-place mutation.
type Engine struct {
	modelDir string

	mu   sync.RWMutex
	unit *modelstore.Unit
}

// Options configures an Engine.
type Options struct {
	// ModelDir is the directory holding the persisted model unit.
	ModelDir string
}

// New creates an Engine. The model is not loaded until the first Predict.
func New(opts Options) *Engine {
	return &Engine{modelDir: opts.ModelDir}
}

// Predict returns 1-3 ranked tags for a listing. Text composition follows
// the includeDescriptions flag persisted with the model, so inference can
// never drift from how the model was trained.
func (e *Engine) Predict(title, description string) ([]inference.Prediction, error) {
	unit, err := e.load()
	if err != nil {
		return nil, err
	}
	return inference.Predict(unit, title, description)
}

// Reload discards the in-memory unit and loads the current artifact,
// e.g. after an operator retrains.
func (e *Engine) Reload() error {
	unit, err := modelstore.Load(e.modelDir)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.unit = unit
	e.mu.Unlock()
	return nil
}

func (e *Engine) load() (*modelstore.Unit, error) {
	e.mu.RLock()
	unit := e.unit
	e.mu.RUnlock()
	if unit != nil {
		return unit, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.unit == nil {
		loaded, err := modelstore.Load(e.modelDir)
		if err != nil {
			return nil, err
		}
		e.unit = loaded
	}
	return e.unit, nil
}
