package ports

import (
	"context"
	"io"

	"github.com/kirillkom/office-text-extractor/internal/core/domain"
)

// ExtractionRepository persists and reads extraction job state.
type ExtractionRepository interface {
	Create(ctx context.Context, ext *domain.Extraction) error
	GetByID(ctx context.Context, id string) (*domain.Extraction, error)
	UpdateStatus(ctx context.Context, id string, status domain.ExtractionStatus, errMessage string) error
	SaveResult(ctx context.Context, id string, kind domain.DocumentKind, text string) error
}

// PayloadStore stores submitted payloads until the worker picks them up.
type PayloadStore interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes submission events.
type MessageQueue interface {
	PublishExtractionSubmitted(ctx context.Context, extractionID string) error
	SubscribeExtractionSubmitted(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor runs the extraction pipeline over a stored payload. The
// pipeline itself never fails; the error covers payload retrieval only.
type TextExtractor interface {
	Extract(ctx context.Context, ext *domain.Extraction) (domain.ExtractionResult, domain.DocumentKind, error)
}
