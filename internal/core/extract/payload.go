package extract

import (
	"encoding/base64"
	"strings"

	"github.com/kirillkom/office-text-extractor/internal/core/domain"
)

// normalizePayload strips a data-URI envelope from the input, returning
// the bare base64 payload. A "data:" prefix without a comma keeps the
// whole trimmed string; anything else is already a bare payload.
func normalizePayload(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "data:") {
		return trimmed
	}
	comma := strings.IndexByte(trimmed, ',')
	if comma < 0 {
		return trimmed
	}
	return trimmed[comma+1:]
}

// decodePayload decodes the base64 payload to raw bytes. Every byte
// outside the standard alphabet is discarded first, so folded or
// lightly mangled payloads still yield their document; what remains
// after filtering must decode cleanly or it is a decode error.
func decodePayload(payload string) ([]byte, error) {
	compact := strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == '+', r == '/', r == '=':
			return r
		}
		return -1
	}, payload)

	raw, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return nil, domain.WrapError(domain.ErrDecode, "decode base64", err)
	}
	return raw, nil
}
