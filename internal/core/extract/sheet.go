package extract

import (
	"strconv"
	"strings"
)

const (
	sheetNamespace     = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	sharedStringsEntry = "xl/sharedStrings.xml"
	worksheetDir       = "xl/worksheets/"
)

// extractSpreadsheet resolves every worksheet cell against the shared
// string table and emits one space-joined line per non-empty row. Sheets
// are visited in archive order; cells keep their order of appearance in
// the file, so gaps in sparse rows are simply absent.
func extractSpreadsheet(c *container) (string, error) {
	shared, err := loadSharedStrings(c)
	if err != nil {
		return "", err
	}

	var rows []string
	for _, name := range c.names() {
		if !strings.HasPrefix(name, worksheetDir) || !strings.HasSuffix(name, ".xml") {
			continue
		}
		data, ok, err := c.entry(name)
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}

		root, err := parseXML(data)
		if err != nil {
			return "", err
		}

		for _, row := range root.descendants(sheetNamespace, "row") {
			var cells []string
			for _, cell := range row.children(sheetNamespace, "c") {
				if value := strings.TrimSpace(resolveCell(cell, shared)); value != "" {
					cells = append(cells, value)
				}
			}
			if len(cells) > 0 {
				rows = append(rows, strings.Join(cells, " "))
			}
		}
	}
	return strings.Join(rows, "\n"), nil
}

// loadSharedStrings builds the index-addressed shared string table. An
// absent entry means an empty table; a malformed one aborts the whole
// spreadsheet extraction.
func loadSharedStrings(c *container) ([]string, error) {
	data, ok, err := c.entry(sharedStringsEntry)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	root, err := parseXML(data)
	if err != nil {
		return nil, err
	}

	var values []string
	for _, node := range root.descendants(sheetNamespace, "t") {
		values = append(values, node.Text)
	}
	return values, nil
}

// resolveCell returns the string value of one cell, in priority order:
// shared-string reference, inline string, literal value. An out-of-range
// or unparsable shared-string index resolves to empty, never an error.
func resolveCell(cell *xmlNode, shared []string) string {
	if cellType, _ := cell.attr("t"); cellType == "s" {
		if v := cell.child(sheetNamespace, "v"); v != nil {
			index, err := strconv.Atoi(strings.TrimSpace(v.Text))
			if err == nil && index >= 0 && index < len(shared) {
				return shared[index]
			}
		}
		return ""
	}

	if inline := cell.child(sheetNamespace, "is"); inline != nil {
		parts := inline.descendants(sheetNamespace, "t")
		if len(parts) > 0 {
			var sb strings.Builder
			for _, t := range parts {
				sb.WriteString(t.Text)
			}
			return sb.String()
		}
	}

	if v := cell.child(sheetNamespace, "v"); v != nil {
		return v.Text
	}
	return ""
}
