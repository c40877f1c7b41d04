package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/office-text-extractor/internal/core/domain"
	"github.com/kirillkom/office-text-extractor/internal/core/ports"
)

type SubmitExtractionUseCase struct {
	repo  ports.ExtractionRepository
	store ports.PayloadStore
	queue ports.MessageQueue
}

func NewSubmitExtractionUseCase(
	repo ports.ExtractionRepository,
	store ports.PayloadStore,
	queue ports.MessageQueue,
) *SubmitExtractionUseCase {
	return &SubmitExtractionUseCase{
		repo:  repo,
		store: store,
		queue: queue,
	}
}

// Submit stores the raw payload as received, records the job, and hands
// it to the queue. The payload is not decoded here; the pipeline owns
// all interpretation, including rejecting malformed base64 as an empty
// result.
func (uc *SubmitExtractionUseCase) Submit(
	ctx context.Context,
	req domain.ExtractionRequest,
) (*domain.Extraction, error) {
	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s.b64", id, sanitizeFilename(req.Filename))
	now := time.Now().UTC()

	if err := uc.store.Save(ctx, storageKey, strings.NewReader(req.Data)); err != nil {
		return nil, fmt.Errorf("save payload: %w", err)
	}

	ext := &domain.Extraction{
		ID:          id,
		Filename:    req.Filename,
		MimeType:    req.MimeType,
		StoragePath: storageKey,
		Status:      domain.StatusReceived,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.repo.Create(ctx, ext); err != nil {
		return nil, fmt.Errorf("create extraction record: %w", err)
	}

	if err := uc.queue.PublishExtractionSubmitted(ctx, ext.ID); err != nil {
		return nil, fmt.Errorf("publish submission event: %w", err)
	}

	return ext, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." {
		return "document.bin"
	}
	return base
}
