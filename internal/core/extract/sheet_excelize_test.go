package extract

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/office-text-extractor/internal/core/domain"
)

// A workbook produced by a real writer, not a hand-built archive, keeps
// the structured path honest about shared strings and sheet layout.
func TestPipelineExtractsRealWorkbook(t *testing.T) {
	wb := excelize.NewFile()
	defer wb.Close()

	cells := map[string]any{
		"A1": "quarter",
		"B1": "revenue",
		"A2": "Q1",
		"B2": 1250,
		"A3": "Q2",
		"B3": 1740,
	}
	for ref, value := range cells {
		if err := wb.SetCellValue("Sheet1", ref, value); err != nil {
			t.Fatalf("set cell %s: %v", ref, err)
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	pipe := New(Config{})
	result, report := pipe.ExtractWithReport(domain.ExtractionRequest{
		Data:     base64.StdEncoding.EncodeToString(buf.Bytes()),
		Filename: "revenue.xlsx",
	})

	if report.Kind != domain.KindSpreadsheet {
		t.Fatalf("expected spreadsheet kind, got %q", report.Kind)
	}
	if report.Strategy != StrategyStructured {
		t.Fatalf("expected structured strategy, got %q", report.Strategy)
	}

	lines := strings.Split(result.Text, "\n")
	want := []string{"quarter revenue", "Q1 1250", "Q2 1740"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d rows, got %d: %q", len(want), len(lines), result.Text)
	}
	for i, line := range want {
		if lines[i] != line {
			t.Fatalf("row %d: expected %q, got %q", i, line, lines[i])
		}
	}
}
