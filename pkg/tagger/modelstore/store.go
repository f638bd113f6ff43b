// Package modelstore persists the jointly-fitted model unit (vectorizer,
// label encoder, classifier) to a model directory and restores it.
//
// The three components are always written and read together: feature
// dimensionality and label order only line up when they were fitted on the
// same corpus, so partial substitution is never allowed.
package modelstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/gofrs/flock"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/quadlist/tagger/pkg/tagger/classifier"
	"github.com/quadlist/tagger/pkg/tagger/internalerr"
	"github.com/quadlist/tagger/pkg/tagger/label"
	"github.com/quadlist/tagger/pkg/tagger/textproc"
	"github.com/quadlist/tagger/pkg/tagger/vocab"
)

const (
	vectorizerFile = "vectorizer.bin"
	encoderFile    = "encoder.bin"
	classifierFile = "classifier.bin"
	lockFile       = "model.lock"
)

// Unit is the atomic model triple plus the text-composition flag it was
// trained with. Never mutated after load; retraining produces a brand-new
// unit that overwrites the stored one.
type Unit struct {
	Vectorizer *textproc.Vectorizer
	Encoder    *label.Encoder
	Model      *classifier.Model

	// IncludeDescriptions records whether feature text was composed as
	// title+description at training time. Persisting it with the unit
	// keeps inference-time text composition from drifting out of sync.
	IncludeDescriptions bool
}

// persistedExtractor bundles the vectorizer with the text-composition
// flag: both govern how raw listing text becomes features.
type persistedExtractor struct {
	Vectorizer          *textproc.Vectorizer
	IncludeDescriptions bool
}

// Save writes the unit to dir. All three artifacts are staged as temp
// files first and renamed only when every write succeeded, so a failed
// save never leaves a partial model behind.
func Save(unit *Unit, dir string) error {
	if unit == nil || unit.Vectorizer == nil || unit.Encoder == nil || unit.Model == nil {
		return fmt.Errorf("incomplete model unit: %w", internalerr.ErrInvalidInput)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	lock := flock.New(filepath.Join(dir, lockFile))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock model dir: %w", err)
	}
	defer lock.Unlock()

	staged := map[string]interface{}{
		vectorizerFile: persistedExtractor{
			Vectorizer:          unit.Vectorizer,
			IncludeDescriptions: unit.IncludeDescriptions,
		},
		encoderFile:    unit.Encoder,
		classifierFile: unit.Model,
	}

	var temps []string
	cleanup := func() {
		for _, t := range temps {
			os.Remove(t)
		}
	}

	for name, artifact := range staged {
		data, err := msgpack.Marshal(artifact)
		if err != nil {
			cleanup()
			return fmt.Errorf("encode %s: %w", name, err)
		}

		tmp := filepath.Join(dir, name+".tmp")
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			cleanup()
			return fmt.Errorf("stage %s: %w", name, err)
		}
		temps = append(temps, tmp)
	}

	for _, tmp := range temps {
		final := tmp[:len(tmp)-len(".tmp")]
		if err := os.Rename(tmp, final); err != nil {
			cleanup()
			return fmt.Errorf("commit %s: %w", filepath.Base(final), err)
		}
	}

	return nil
}

// Load restores the unit from dir.
//
// A missing artifact reports ErrModelNotFound ("train first"), distinct
// from a decode failure which reports ErrModelCorrupt. A model persisted
// against a different tag vocabulary than the one currently configured
// reports ErrVocabMismatch.
func Load(dir string) (*Unit, error) {
	lock := flock.New(filepath.Join(dir, lockFile))
	locked, err := lock.TryRLock()
	if err == nil && locked {
		defer lock.Unlock()
	}

	var ext persistedExtractor
	if err := readArtifact(filepath.Join(dir, vectorizerFile), &ext); err != nil {
		return nil, err
	}

	enc := &label.Encoder{}
	if err := readArtifact(filepath.Join(dir, encoderFile), enc); err != nil {
		return nil, err
	}

	model := &classifier.Model{}
	if err := readArtifact(filepath.Join(dir, classifierFile), model); err != nil {
		return nil, err
	}

	if !slices.Equal(enc.Classes, vocab.Tags()) {
		return nil, fmt.Errorf("stored model was trained against a different tag vocabulary (%d stored, %d configured): %w",
			len(enc.Classes), vocab.Size(), internalerr.ErrVocabMismatch)
	}

	return &Unit{
		Vectorizer:          ext.Vectorizer,
		Encoder:             enc,
		Model:               model,
		IncludeDescriptions: ext.IncludeDescriptions,
	}, nil
}

func readArtifact(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", filepath.Base(path), internalerr.ErrModelNotFound)
		}
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	if err := msgpack.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %v: %w", filepath.Base(path), err, internalerr.ErrModelCorrupt)
	}

	return nil
}
