// Command mcp serves the extraction tools over stdio for Model Context
// Protocol clients.
package main

import (
	"os"

	"github.com/mark3labs/mcp-go/server"

	mcpadapter "github.com/kirillkom/office-text-extractor/internal/adapters/mcp"
	"github.com/kirillkom/office-text-extractor/internal/config"
	"github.com/kirillkom/office-text-extractor/internal/core/extract"
	"github.com/kirillkom/office-text-extractor/internal/observability/logging"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	logger := logging.NewStderrJSONLogger("mcp", cfg.LogLevel)

	pipeline := extract.New(extract.Config{Logger: logger})
	srv := mcpadapter.NewServer(pipeline).MCPServer(version)

	if err := server.ServeStdio(srv); err != nil {
		logger.Error("mcp server failed", "error", err)
		os.Exit(1)
	}
}
