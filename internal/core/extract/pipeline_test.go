package extract

import (
	"encoding/base64"
	"testing"

	"github.com/kirillkom/office-text-extractor/internal/core/domain"
)

func encodeArchive(t *testing.T, entries []archiveEntry) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString(buildArchive(t, entries))
}

func TestPipelineExtractsWordDocument(t *testing.T) {
	pipe := New(Config{})
	payload := encodeArchive(t, []archiveEntry{
		{"word/document.xml", wordDocument(`<w:p><w:r><w:t>hello</w:t></w:r><w:r><w:t>world</w:t></w:r></w:p>`)},
	})

	result, report := pipe.ExtractWithReport(domain.ExtractionRequest{
		Data:     payload,
		Filename: "report.docx",
	})
	if result.Text != "hello\nworld" {
		t.Fatalf("expected structured word text, got %q", result.Text)
	}
	if report.Kind != domain.KindWord || report.Strategy != StrategyStructured {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestPipelineFallsBackWhenStructuredYieldsNothing(t *testing.T) {
	pipe := New(Config{})
	// No word/document.xml entry; the fallback should still find text in
	// the remaining xml entries.
	payload := encodeArchive(t, []archiveEntry{
		{"word/footnotes.xml", "<note>recovered content</note>"},
	})

	result, report := pipe.ExtractWithReport(domain.ExtractionRequest{
		Data:     payload,
		Filename: "broken.docx",
	})
	if result.Text == "" {
		t.Fatalf("expected fallback text")
	}
	if report.Strategy != StrategyFallback {
		t.Fatalf("expected fallback strategy, got %q", report.Strategy)
	}
}

func TestPipelineFallsBackOnMalformedStructuredEntry(t *testing.T) {
	pipe := New(Config{})
	payload := encodeArchive(t, []archiveEntry{
		{"word/document.xml", `<w:document><w:t>truncated`},
		{"docProps/app.xml", "<props>salvage me</props>"},
	})

	result, report := pipe.ExtractWithReport(domain.ExtractionRequest{
		Data:     payload,
		Filename: "corrupt.docx",
	})
	if report.Strategy != StrategyFallback {
		t.Fatalf("expected fallback after structured parse failure, got %q", report.Strategy)
	}
	if result.Text == "" {
		t.Fatalf("expected salvaged text from fallback")
	}
}

func TestPipelineExtractsSpreadsheet(t *testing.T) {
	pipe := New(Config{})
	sheet := sheetHeader +
		`<row><c t="s"><v>0</v></c><c><v>42</v></c></row>` +
		sheetFooter
	payload := encodeArchive(t, []archiveEntry{
		{"xl/sharedStrings.xml", sharedStringsTable("total")},
		{"xl/worksheets/sheet1.xml", sheet},
	})

	result, report := pipe.ExtractWithReport(domain.ExtractionRequest{
		Data:     payload,
		Filename: "numbers.xlsx",
	})
	if result.Text != "total 42" {
		t.Fatalf("expected spreadsheet text, got %q", result.Text)
	}
	if report.Kind != domain.KindSpreadsheet || report.Strategy != StrategyStructured {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestPipelineWordClassificationWinsOverSpreadsheet(t *testing.T) {
	pipe := New(Config{})
	payload := encodeArchive(t, []archiveEntry{
		{"word/document.xml", wordDocument(`<w:p><w:r><w:t>word wins</w:t></w:r></w:p>`)},
	})

	result, report := pipe.ExtractWithReport(domain.ExtractionRequest{
		Data:     payload,
		Filename: "ambiguous.docx",
		MimeType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	})
	if report.Kind != domain.KindWord {
		t.Fatalf("expected word classification to win, got %q", report.Kind)
	}
	if result.Text != "word wins" {
		t.Fatalf("unexpected text: %q", result.Text)
	}
}

func TestPipelineShortCircuits(t *testing.T) {
	pipe := New(Config{})
	valid := encodeArchive(t, []archiveEntry{
		{"word/document.xml", wordDocument(`<w:p><w:r><w:t>ignored</w:t></w:r></w:p>`)},
	})

	cases := map[string]domain.ExtractionRequest{
		"empty payload":       {Data: "", Filename: "report.docx"},
		"whitespace payload":  {Data: "   \n", Filename: "report.docx"},
		"unknown kind":        {Data: valid, Filename: "notes.txt"},
		"no filename no mime": {Data: valid},
	}

	for name, req := range cases {
		result, report := pipe.ExtractWithReport(req)
		if result.Text != "" {
			t.Fatalf("%s: expected empty text, got %q", name, result.Text)
		}
		if report.Strategy != StrategyNone {
			t.Fatalf("%s: expected no strategy, got %q", name, report.Strategy)
		}
	}
}

func TestPipelineDegradesOnUndecodableInput(t *testing.T) {
	pipe := New(Config{})

	cases := map[string]string{
		"not base64":     "%%%garbage%%%",
		"not an archive": base64.StdEncoding.EncodeToString([]byte("plain text bytes")),
		"empty archive":  encodeArchive(t, nil),
	}

	for name, data := range cases {
		result := pipe.Extract(domain.ExtractionRequest{Data: data, Filename: "report.docx"})
		if result.Text != "" {
			t.Fatalf("%s: expected empty text, got %q", name, result.Text)
		}
	}
}

func TestPipelineDataURIEquivalence(t *testing.T) {
	pipe := New(Config{})
	bare := encodeArchive(t, []archiveEntry{
		{"word/document.xml", wordDocument(`<w:p><w:r><w:t>same either way</w:t></w:r></w:p>`)},
	})
	uri := "data:application/vnd.openxmlformats-officedocument.wordprocessingml.document;base64," + bare

	fromBare := pipe.Extract(domain.ExtractionRequest{Data: bare, Filename: "a.docx"})
	fromURI := pipe.Extract(domain.ExtractionRequest{Data: uri, Filename: "a.docx"})
	if fromBare.Text != fromURI.Text {
		t.Fatalf("expected identical results, got %q vs %q", fromBare.Text, fromURI.Text)
	}
	if fromBare.Text != "same either way" {
		t.Fatalf("unexpected text: %q", fromBare.Text)
	}
}

func TestPipelineIsIdempotent(t *testing.T) {
	pipe := New(Config{})
	req := domain.ExtractionRequest{
		Data: encodeArchive(t, []archiveEntry{
			{"word/document.xml", wordDocument(`<w:p><w:r><w:t>stable</w:t></w:r></w:p>`)},
		}),
		Filename: "report.docx",
	}

	first := pipe.Extract(req)
	second := pipe.Extract(req)
	if first.Text != second.Text {
		t.Fatalf("expected identical results across runs, got %q vs %q", first.Text, second.Text)
	}
}
