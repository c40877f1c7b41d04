package ports

import (
	"context"

	"github.com/kirillkom/office-text-extractor/internal/core/domain"
)

// ExtractionSubmitter is the inbound contract for accepting payloads for
// asynchronous extraction.
type ExtractionSubmitter interface {
	Submit(ctx context.Context, req domain.ExtractionRequest) (*domain.Extraction, error)
}

// ExtractionProcessor is the inbound contract for asynchronous job
// processing.
type ExtractionProcessor interface {
	ProcessByID(ctx context.Context, extractionID string) error
}

// ExtractionReader is the inbound read model for job state.
type ExtractionReader interface {
	GetByID(ctx context.Context, id string) (*domain.Extraction, error)
}
