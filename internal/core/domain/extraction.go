package domain

import "time"

// DocumentKind identifies which extraction strategy family applies.
// It is derived from the filename and declared MIME type, never stored
// by the core pipeline.
type DocumentKind string

const (
	KindWord        DocumentKind = "word"
	KindSpreadsheet DocumentKind = "spreadsheet"
	KindUnknown     DocumentKind = ""
)

// ExtractionRequest carries one payload through the pipeline. All fields
// are optional; absent fields behave as empty strings.
type ExtractionRequest struct {
	// Data is either a bare base64 payload or a data-URI
	// ("data:<mime>;base64,<payload>").
	Data     string `json:"data"`
	Filename string `json:"name"`
	MimeType string `json:"mime"`
}

// ExtractionResult is the only output shape the pipeline produces.
// An empty Text means "nothing extracted", never an error.
type ExtractionResult struct {
	Text string `json:"text"`
}

type ExtractionStatus string

const (
	StatusReceived   ExtractionStatus = "received"
	StatusProcessing ExtractionStatus = "processing"
	StatusDone       ExtractionStatus = "done"
	StatusFailed     ExtractionStatus = "failed"
)

// Extraction is the host-level job record for asynchronous extraction.
// Status failed covers infrastructure failures only; the pipeline itself
// degrades to an empty result instead of failing.
type Extraction struct {
	ID          string           `json:"id"`
	Filename    string           `json:"filename"`
	MimeType    string           `json:"mime_type"`
	Kind        DocumentKind     `json:"kind,omitempty"`
	StoragePath string           `json:"storage_path"`
	Status      ExtractionStatus `json:"status"`
	Text        string           `json:"text,omitempty"`
	Error       string           `json:"error,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
