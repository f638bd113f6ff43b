package textproc

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML reduces user-submitted listing text to its visible text.
// Descriptions arrive from the web frontend and may carry markup that
// would otherwise pollute the token stream.
func StripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return strings.TrimSpace(s)
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// Fallback to the raw string if parsing fails
		return strings.TrimSpace(s)
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String())
}

// ComposeText builds the feature text for one listing. The same
// composition must be used at training and inference time, which is why
// the includeDescriptions choice travels with the persisted model.
func ComposeText(title, description string, includeDescriptions bool) string {
	title = strings.TrimSpace(title)
	if !includeDescriptions {
		return title
	}

	description = StripHTML(description)
	if description == "" {
		return title
	}
	return title + " " + description
}
