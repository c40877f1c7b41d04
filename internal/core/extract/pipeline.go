// Package extract implements the office-document text extraction
// pipeline: payload decoding, kind classification, structured word and
// spreadsheet extraction over the ZIP container, and a tag-stripping
// fallback for payloads the structured path cannot read.
//
// The pipeline is pure and stateless: one request in, one result out,
// with no shared state between invocations. It also never fails — every
// stage error degrades to an empty intermediate value, and the final
// result's empty text covers every failure mode. Callers cannot
// distinguish "empty document" from "corrupt input"; that trade-off is
// part of the external contract.
package extract

import (
	"log/slog"
	"strings"

	"github.com/kirillkom/office-text-extractor/internal/core/domain"
)

// Strategy names which extraction path produced the result.
type Strategy string

const (
	StrategyNone       Strategy = "none"
	StrategyStructured Strategy = "structured"
	StrategyFallback   Strategy = "fallback"
)

// Report describes how a result was obtained, for observability only.
type Report struct {
	Kind     domain.DocumentKind
	Strategy Strategy
}

// Config configures the pipeline.
type Config struct {
	// Logger for per-stage debug messages.
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Pipeline is the extraction engine. Safe for concurrent use.
type Pipeline struct {
	logger *slog.Logger
}

// New creates a Pipeline with the given configuration.
func New(cfg Config) *Pipeline {
	cfg.defaults()
	return &Pipeline{logger: cfg.Logger}
}

// Extract runs the full pipeline and always returns a result; failure is
// indistinguishable from "no extractable text found".
func (p *Pipeline) Extract(req domain.ExtractionRequest) domain.ExtractionResult {
	result, _ := p.ExtractWithReport(req)
	return result
}

// ExtractWithReport is Extract plus a Report of the kind detected and
// the strategy that produced the text.
func (p *Pipeline) ExtractWithReport(req domain.ExtractionRequest) (domain.ExtractionResult, Report) {
	report := Report{Strategy: StrategyNone}

	payload := normalizePayload(req.Data)
	if payload == "" {
		return domain.ExtractionResult{}, report
	}

	kind := DetectKind(req.Filename, req.MimeType)
	report.Kind = kind
	if kind == domain.KindUnknown {
		return domain.ExtractionResult{}, report
	}

	raw, err := decodePayload(payload)
	if err != nil {
		p.logger.Debug("payload decode failed", "error", err)
		return domain.ExtractionResult{}, report
	}

	text, err := p.extractStructured(kind, raw)
	if err != nil {
		p.logger.Debug("structured extraction failed", "kind", kind, "error", err)
		text = ""
	}
	if strings.TrimSpace(text) != "" {
		report.Strategy = StrategyStructured
		return domain.ExtractionResult{Text: text}, report
	}

	flattened, err := flatten(raw)
	if err != nil {
		p.logger.Debug("fallback flattening failed", "error", err)
		flattened = ""
	}
	if flattened != "" {
		report.Strategy = StrategyFallback
	}
	return domain.ExtractionResult{Text: flattened}, report
}

func (p *Pipeline) extractStructured(kind domain.DocumentKind, raw []byte) (string, error) {
	c, err := openContainer(raw)
	if err != nil {
		return "", err
	}
	switch kind {
	case domain.KindWord:
		return extractWord(c)
	case domain.KindSpreadsheet:
		return extractSpreadsheet(c)
	}
	return "", nil
}
