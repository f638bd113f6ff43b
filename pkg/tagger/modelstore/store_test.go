package modelstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/quadlist/tagger/pkg/tagger/classifier"
	"github.com/quadlist/tagger/pkg/tagger/internalerr"
	"github.com/quadlist/tagger/pkg/tagger/label"
	"github.com/quadlist/tagger/pkg/tagger/textproc"
)

func trainedUnit(t *testing.T) *Unit {
	t.Helper()

	titles := []string{
		"calculus textbook", "algebra textbook",
		"mechanical pencil", "pencil sharpener",
	}
	tagSets := [][]string{{"math"}, {"math"}, {"pencil"}, {"pencil"}}

	encoder := label.NewEncoder()
	labels, _ := encoder.EncodeAll(tagSets)

	vectorizer := textproc.NewVectorizer(textproc.DefaultStopwords, 0.9)
	if err := vectorizer.Fit(titles); err != nil {
		t.Fatalf("fit: %v", err)
	}
	features, err := vectorizer.Transform(titles)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}

	model, err := classifier.Train(features, labels, vectorizer.Size(), classifier.DefaultConfig())
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	return &Unit{
		Vectorizer:          vectorizer,
		Encoder:             encoder,
		Model:               model,
		IncludeDescriptions: true,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	unit := trainedUnit(t)

	if err := Save(unit, dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.IncludeDescriptions != unit.IncludeDescriptions {
		t.Error("IncludeDescriptions flag lost in round trip")
	}

	// The restored unit must predict identically to the in-memory one.
	for _, text := range []string{"calculus textbook", "pencil sharpener", "algebra pencil"} {
		before, err := unit.Vectorizer.TransformOne(text)
		if err != nil {
			t.Fatalf("transform before: %v", err)
		}
		after, err := loaded.Vectorizer.TransformOne(text)
		if err != nil {
			t.Fatalf("transform after: %v", err)
		}

		p1 := unit.Model.Probabilities(before)
		p2 := loaded.Model.Probabilities(after)
		if len(p1) != len(p2) {
			t.Fatalf("probability width changed: %d vs %d", len(p1), len(p2))
		}
		for i := range p1 {
			if p1[i] != p2[i] {
				t.Fatalf("probabilities diverged for %q at tag %d: %v vs %v", text, i, p1[i], p2[i])
			}
		}
	}
}

func TestLoadMissingModel(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, internalerr.ErrModelNotFound) {
		t.Errorf("Load(empty dir) = %v, want ErrModelNotFound", err)
	}
}

func TestLoadCorruptModel(t *testing.T) {
	dir := t.TempDir()
	unit := trainedUnit(t)
	if err := Save(unit, dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "classifier.bin"), []byte("not msgpack"), 0o644); err != nil {
		t.Fatalf("corrupt artifact: %v", err)
	}

	_, err := Load(dir)
	if !errors.Is(err, internalerr.ErrModelCorrupt) {
		t.Errorf("Load(corrupt) = %v, want ErrModelCorrupt", err)
	}
	if errors.Is(err, internalerr.ErrModelNotFound) {
		t.Error("corruption must not be reported as not-found")
	}
}

func TestLoadVocabularyMismatch(t *testing.T) {
	dir := t.TempDir()
	unit := trainedUnit(t)
	unit.Encoder = &label.Encoder{Classes: []string{"alpha", "beta"}}

	if err := Save(unit, dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, err := Load(dir)
	if !errors.Is(err, internalerr.ErrVocabMismatch) {
		t.Errorf("Load(mismatched vocab) = %v, want ErrVocabMismatch", err)
	}
}

func TestSaveIncompleteUnit(t *testing.T) {
	err := Save(&Unit{}, t.TempDir())
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Save(incomplete) = %v, want ErrInvalidInput", err)
	}
}

func TestSaveOverwrite(t *testing.T) {
	dir := t.TempDir()
	unit := trainedUnit(t)

	if err := Save(unit, dir); err != nil {
		t.Fatalf("first Save: %v", err)
	}

	unit.IncludeDescriptions = false
	if err := Save(unit, dir); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.IncludeDescriptions {
		t.Error("retraining should overwrite the stored unit")
	}
}
