// Package mcpadapter exposes the extraction pipeline as Model Context
// Protocol tools over stdio, so agent runtimes can call it without the
// HTTP surface.
package mcpadapter

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kirillkom/office-text-extractor/internal/core/domain"
	"github.com/kirillkom/office-text-extractor/internal/core/extract"
)

type Server struct {
	pipeline *extract.Pipeline
}

func NewServer(pipeline *extract.Pipeline) *Server {
	return &Server{pipeline: pipeline}
}

// MCPServer builds the tool server. Run it with server.ServeStdio.
func (s *Server) MCPServer(version string) *server.MCPServer {
	srv := server.NewMCPServer(
		"office-text-extractor",
		version,
		server.WithToolCapabilities(false),
	)

	srv.AddTool(mcp.NewTool("extract_text",
		mcp.WithDescription("Extract plain text from a base64-encoded office document (docx or xlsx). Always returns a text field; empty text means nothing could be extracted."),
		mcp.WithString("data",
			mcp.Required(),
			mcp.Description("Base64 payload or data-URI (data:<mime>;base64,<payload>)"),
		),
		mcp.WithString("name", mcp.Description("Original filename, used to pick the extraction strategy")),
		mcp.WithString("mime", mcp.Description("Declared MIME type, consulted when the filename is ambiguous")),
	), s.handleExtractText)

	srv.AddTool(mcp.NewTool("detect_kind",
		mcp.WithDescription("Classify a document as word, spreadsheet, or unknown from its filename and MIME type."),
		mcp.WithString("name", mcp.Description("Filename to classify")),
		mcp.WithString("mime", mcp.Description("Declared MIME type")),
	), s.handleDetectKind)

	return srv
}

func (s *Server) handleExtractText(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := req.RequireString("data")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := s.pipeline.Extract(domain.ExtractionRequest{
		Data:     data,
		Filename: req.GetString("name", ""),
		MimeType: req.GetString("mime", ""),
	})

	payload, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

func (s *Server) handleDetectKind(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := extract.DetectKind(req.GetString("name", ""), req.GetString("mime", ""))

	label := string(kind)
	if label == "" {
		label = "unknown"
	}
	payload, err := json.Marshal(map[string]string{"kind": label})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
