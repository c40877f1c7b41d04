// Command extract reads one JSON request from stdin and writes the
// extraction result to stdout. A malformed request behaves as an empty
// one, so the command always emits a text field and exits zero.
package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/kirillkom/office-text-extractor/internal/config"
	"github.com/kirillkom/office-text-extractor/internal/core/domain"
	"github.com/kirillkom/office-text-extractor/internal/core/extract"
	"github.com/kirillkom/office-text-extractor/internal/observability/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.NewStderrJSONLogger("extract", cfg.LogLevel)

	// "base64" is an accepted alias for "data" and wins when both are set.
	var in struct {
		Base64 string `json:"base64"`
		Data   string `json:"data"`
		Name   string `json:"name"`
		Mime   string `json:"mime"`
	}
	if raw, err := io.ReadAll(os.Stdin); err == nil {
		_ = json.Unmarshal(raw, &in)
	} else {
		logger.Debug("stdin read failed", "error", err)
	}

	data := in.Base64
	if data == "" {
		data = in.Data
	}

	pipeline := extract.New(extract.Config{Logger: logger})
	result := pipeline.Extract(domain.ExtractionRequest{
		Data:     data,
		Filename: in.Name,
		MimeType: in.Mime,
	})

	encoder := json.NewEncoder(os.Stdout)
	_ = encoder.Encode(result)
}
