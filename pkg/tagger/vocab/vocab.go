package vocab

// Fallback is the tag assigned when the model is not confident enough
// to commit to a specific category.
const Fallback = "misc"

// All is the closed set of listing tags, in canonical order. The order
// defines the label index mapping used by the encoder and classifier, so
// reordering or editing this list invalidates any persisted model.
var All = []string{
	"english", "math", "science", "social studies", "history", "music",
	"biology", "chemistry", "composition", "health", "speech",
	"physical education", "computer science", "business", "psychology",
	"spanish", "chinese", "japanese", "russian", "french",
	"pen", "pencil", "paper", "notebook", "drawing", "art",
	"textbook", "book", "tech", "computer", "calculator", "marker",
	"highlighter", "writing", "dry-erase", "laptop", "keyboard", "mouse",
	"headphones", "airpods", "earbuds", "desktop", "mini-fridge",
	"furniture", "shelf", "table", "pet", "manga", "silverware", "kitchen",
	"decoration", "chair", "desk", "speaker", "clothing", "backpack",
	"videogame", "tv", "bag", "entertainment", "education", "household",
	"dorm", "misc", "accessory", "sports", "phone", "tablet",
	"waterbottle", "cooler",
}

var index = buildIndex(All)

func buildIndex(tags []string) map[string]int {
	m := make(map[string]int, len(tags))
	for i, t := range tags {
		m[t] = i
	}
	return m
}

// Size returns the number of tags in the vocabulary.
func Size() int {
	return len(All)
}

// Contains reports whether tag is a member of the vocabulary.
func Contains(tag string) bool {
	_, ok := index[tag]
	return ok
}

// Index returns the canonical position of tag, or -1 if unknown.
func Index(tag string) int {
	if i, ok := index[tag]; ok {
		return i
	}
	return -1
}

// Tags returns a copy of the vocabulary so callers cannot mutate the
// canonical order.
func Tags() []string {
	out := make([]string, len(All))
	copy(out, All)
	return out
}
