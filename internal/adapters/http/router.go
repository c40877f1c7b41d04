package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/office-text-extractor/internal/config"
	"github.com/kirillkom/office-text-extractor/internal/core/domain"
	"github.com/kirillkom/office-text-extractor/internal/core/extract"
	"github.com/kirillkom/office-text-extractor/internal/core/ports"
	"github.com/kirillkom/office-text-extractor/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	cfg       config.Config
	logger    *slog.Logger
	pipeline  *extract.Pipeline
	submitter ports.ExtractionSubmitter
	reader    ports.ExtractionReader
	metrics   *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	logger *slog.Logger,
	pipeline *extract.Pipeline,
	submitter ports.ExtractionSubmitter,
	reader ports.ExtractionReader,
	m *metrics.HTTPServerMetrics,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		cfg:       cfg,
		logger:    logger,
		pipeline:  pipeline,
		submitter: submitter,
		reader:    reader,
		metrics:   m,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/extract", rt.extractSync)
	mux.HandleFunc("/v1/extractions", rt.submitExtraction)
	mux.HandleFunc("/v1/extractions/", rt.getExtractionByID)
	mux.Handle("/metrics", rt.metrics.Handler())

	var handler http.Handler = mux
	handler = rt.metrics.Middleware(serviceName, handler)
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxConcurrentRequest, 50*time.Millisecond)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	handler = instrumentRequests(rt.logger, handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// extractionPayload is the wire shape both extraction endpoints accept.
// "base64" is an alias for "data" and wins when both are present.
type extractionPayload struct {
	Base64 string `json:"base64"`
	Data   string `json:"data"`
	Name   string `json:"name"`
	Mime   string `json:"mime"`
}

func (p extractionPayload) toRequest() domain.ExtractionRequest {
	data := p.Base64
	if data == "" {
		data = p.Data
	}
	return domain.ExtractionRequest{
		Data:     data,
		Filename: p.Name,
		MimeType: p.Mime,
	}
}

// extractSync runs the pipeline inline and always answers 200 with a
// text field. A malformed body behaves as an empty request; the caller
// cannot distinguish it from a document with no extractable text.
func (rt *Router) extractSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var payload extractionPayload
	body := http.MaxBytesReader(w, r.Body, rt.cfg.MaxPayloadBytes)
	_ = json.NewDecoder(body).Decode(&payload)
	req := payload.toRequest()

	start := time.Now()
	result, report := rt.pipeline.ExtractWithReport(req)
	rt.metrics.RecordExtraction(
		serviceName,
		string(report.Kind),
		string(report.Strategy),
		len(result.Text),
		time.Since(start),
	)

	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) submitExtraction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var payload extractionPayload
	body := http.MaxBytesReader(w, r.Body, rt.cfg.MaxPayloadBytes)
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	req := payload.toRequest()
	if strings.TrimSpace(req.Data) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "data is required"})
		return
	}

	ext, err := rt.submitter.Submit(r.Context(), req)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusAccepted, ext)
}

func (rt *Router) getExtractionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/extractions/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "extraction id is required"})
		return
	}

	ext, err := rt.reader.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ext)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
