package extract

import (
	"strings"

	"github.com/kirillkom/office-text-extractor/internal/core/domain"
)

// DetectKind picks the extraction strategy family from the filename
// suffix and the declared MIME type. The word-family check runs first,
// so it wins when both families would match.
func DetectKind(filename, mimeType string) domain.DocumentKind {
	name := strings.ToLower(filename)
	mime := strings.ToLower(mimeType)

	switch {
	case strings.HasSuffix(name, ".docx"),
		strings.HasSuffix(name, ".doc"),
		strings.Contains(mime, "wordprocessingml"):
		return domain.KindWord
	case strings.HasSuffix(name, ".xlsx"),
		strings.HasSuffix(name, ".xls"),
		strings.Contains(mime, "spreadsheetml"):
		return domain.KindSpreadsheet
	}
	return domain.KindUnknown
}
