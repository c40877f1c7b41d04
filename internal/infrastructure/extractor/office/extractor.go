package office

import (
	"context"
	"fmt"
	"io"

	"github.com/kirillkom/office-text-extractor/internal/core/domain"
	"github.com/kirillkom/office-text-extractor/internal/core/extract"
	"github.com/kirillkom/office-text-extractor/internal/core/ports"
)

// Extractor adapts the extraction pipeline to the TextExtractor port:
// it loads the stored payload and feeds it through the pipeline together
// with the job's filename and MIME hint.
type Extractor struct {
	store ports.PayloadStore
	pipe  *extract.Pipeline
}

func NewExtractor(store ports.PayloadStore, pipe *extract.Pipeline) *Extractor {
	return &Extractor{store: store, pipe: pipe}
}

func (e *Extractor) Extract(ctx context.Context, ext *domain.Extraction) (domain.ExtractionResult, domain.DocumentKind, error) {
	reader, err := e.store.Open(ctx, ext.StoragePath)
	if err != nil {
		return domain.ExtractionResult{}, domain.KindUnknown, fmt.Errorf("open stored payload: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return domain.ExtractionResult{}, domain.KindUnknown, fmt.Errorf("read stored payload: %w", err)
	}

	result, report := e.pipe.ExtractWithReport(domain.ExtractionRequest{
		Data:     string(raw),
		Filename: ext.Filename,
		MimeType: ext.MimeType,
	})
	return result, report.Kind, nil
}
