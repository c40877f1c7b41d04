package usecase

import (
	"context"
	"fmt"

	"github.com/kirillkom/office-text-extractor/internal/core/domain"
	"github.com/kirillkom/office-text-extractor/internal/core/ports"
)

type ProcessExtractionUseCase struct {
	repo      ports.ExtractionRepository
	extractor ports.TextExtractor
}

func NewProcessExtractionUseCase(
	repo ports.ExtractionRepository,
	extractor ports.TextExtractor,
) *ProcessExtractionUseCase {
	return &ProcessExtractionUseCase{
		repo:      repo,
		extractor: extractor,
	}
}

// ProcessByID runs the pipeline for a stored payload. Only host failures
// (repository, payload store) mark the job failed; the pipeline itself
// always yields a result, possibly empty.
func (uc *ProcessExtractionUseCase) ProcessByID(ctx context.Context, extractionID string) error {
	if err := uc.markStatus(ctx, extractionID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	ext, err := uc.repo.GetByID(ctx, extractionID)
	if err != nil {
		return uc.fail(ctx, extractionID, fmt.Errorf("fetch extraction by id: %w", err))
	}

	result, kind, err := uc.extractor.Extract(ctx, ext)
	if err != nil {
		return uc.fail(ctx, extractionID, fmt.Errorf("extract text: %w", err))
	}

	if err := uc.repo.SaveResult(ctx, ext.ID, kind, result.Text); err != nil {
		return uc.fail(ctx, extractionID, fmt.Errorf("save result: %w", err))
	}

	if err := uc.markStatus(ctx, extractionID, domain.StatusDone, ""); err != nil {
		return fmt.Errorf("set status=done: %w", err)
	}
	return nil
}

func (uc *ProcessExtractionUseCase) markStatus(ctx context.Context, id string, status domain.ExtractionStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, id, status, errMessage)
}

func (uc *ProcessExtractionUseCase) fail(ctx context.Context, id string, processErr error) error {
	if failErr := uc.markStatus(ctx, id, domain.StatusFailed, processErr.Error()); failErr != nil {
		return fmt.Errorf("%w; mark failed status: %v", processErr, failErr)
	}
	return processErr
}
