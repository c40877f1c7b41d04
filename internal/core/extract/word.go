package extract

import (
	"strings"
)

const (
	wordNamespace     = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	wordDocumentEntry = "word/document.xml"
)

// extractWord reads the main document body and emits one line per text
// run, in document order. Paragraphs, tables, and headers are flattened
// identically; runs holding only whitespace are dropped. A missing body
// entry yields an empty result, not an error.
func extractWord(c *container) (string, error) {
	data, ok, err := c.entry(wordDocumentEntry)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	root, err := parseXML(data)
	if err != nil {
		return "", err
	}

	var runs []string
	for _, node := range root.descendants(wordNamespace, "t") {
		if strings.TrimSpace(node.Text) == "" {
			continue
		}
		runs = append(runs, node.Text)
	}
	return strings.Join(runs, "\n"), nil
}
