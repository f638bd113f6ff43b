package classifier

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/quadlist/tagger/pkg/tagger/label"
	"github.com/quadlist/tagger/pkg/tagger/textproc"
)

// TagMetrics holds held-out evaluation metrics for a single tag.
type TagMetrics struct {
	Tag       string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report is a per-tag classification report over a held-out set.
// Zero-division cases (no predictions, or no positives in the held-out
// set) report as zero rather than being an error.
type Report struct {
	PerTag []TagMetrics
}

// String renders the report as an aligned table.
func (r Report) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-20s %9s %9s %9s %9s\n", "tag", "precision", "recall", "f1", "support"))
	for _, m := range r.PerTag {
		b.WriteString(fmt.Sprintf("%-20s %9.2f %9.2f %9.2f %9d\n",
			m.Tag, m.Precision, m.Recall, m.F1, m.Support))
	}
	return b.String()
}

// Split partitions a corpus into train and held-out portions with a seeded
// shuffle, so evaluation runs are reproducible. testFraction of the corpus
// (at least one example when the corpus is non-empty and testFraction > 0)
// goes to the held-out set.
func Split(features []textproc.Vector, labels []label.Vector, testFraction float64, seed int64) (trainX, testX []textproc.Vector, trainY, testY []label.Vector) {
	n := len(features)
	order := rand.New(rand.NewSource(seed)).Perm(n)

	testN := int(float64(n) * testFraction)
	if testFraction > 0 && testN == 0 && n > 1 {
		testN = 1
	}

	for i, idx := range order {
		if i < testN {
			testX = append(testX, features[idx])
			testY = append(testY, labels[idx])
		} else {
			trainX = append(trainX, features[idx])
			trainY = append(trainY, labels[idx])
		}
	}
	return trainX, testX, trainY, testY
}

// Evaluate predicts the held-out set with a 0.5 membership cutoff per tag
// and computes per-tag precision, recall and F1.
func Evaluate(m *Model, features []textproc.Vector, labels []label.Vector, classes []string) Report {
	numTags := m.NumTags()
	tp := make([]int, numTags)
	fp := make([]int, numTags)
	fn := make([]int, numTags)

	for i, x := range features {
		probs := m.Probabilities(x)
		for tag := 0; tag < numTags; tag++ {
			predicted := probs[tag] >= 0.5
			actual := tag < len(labels[i]) && labels[i][tag]
			switch {
			case predicted && actual:
				tp[tag]++
			case predicted && !actual:
				fp[tag]++
			case !predicted && actual:
				fn[tag]++
			}
		}
	}

	report := Report{PerTag: make([]TagMetrics, numTags)}
	for tag := 0; tag < numTags; tag++ {
		name := fmt.Sprintf("tag-%d", tag)
		if tag < len(classes) {
			name = classes[tag]
		}

		precision := safeDiv(float64(tp[tag]), float64(tp[tag]+fp[tag]))
		recall := safeDiv(float64(tp[tag]), float64(tp[tag]+fn[tag]))
		f1 := safeDiv(2*precision*recall, precision+recall)

		report.PerTag[tag] = TagMetrics{
			Tag:       name,
			Precision: precision,
			Recall:    recall,
			F1:        f1,
			Support:   tp[tag] + fn[tag],
		}
	}
	return report
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
