package extract

import (
	"strings"
)

var entityReplacer = strings.NewReplacer(
	"&quot;", `"`,
	"&apos;", "'",
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
)

var controlReplacer = strings.NewReplacer(
	"\r", " ",
	"\n", " ",
	"\t", " ",
)

// flatten recovers a best-effort bag of text from every XML entry in the
// archive, ignoring structure entirely. It runs only when structured
// extraction produced nothing.
func flatten(raw []byte) (string, error) {
	c, err := openContainer(raw)
	if err != nil {
		return "", err
	}

	var lines []string
	for _, name := range c.names() {
		if !strings.HasSuffix(strings.ToLower(name), ".xml") {
			continue
		}
		data, ok, err := c.entry(name)
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}
		if flattened := flattenEntry(data); flattened != "" {
			lines = append(lines, flattened)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// flattenEntry strips tags from one entry: decode the five standard XML
// entities, turn CR/LF/TAB into spaces, split tag tokens from content
// tokens, and collapse whitespace runs. Invalid byte sequences are
// dropped rather than failing.
func flattenEntry(data []byte) string {
	text := strings.ToValidUTF8(string(data), "")
	text = entityReplacer.Replace(text)
	text = controlReplacer.Replace(text)
	text = strings.ReplaceAll(text, "<", " <")
	text = strings.ReplaceAll(text, ">", "> ")
	return strings.Join(strings.Fields(text), " ")
}
