package extract

import (
	"archive/zip"
	"bytes"
	"io"

	"github.com/kirillkom/office-text-extractor/internal/core/domain"
)

// container wraps a ZIP archive held fully in memory. Entry iteration
// follows the archive's central directory order; no sorting is imposed.
type container struct {
	reader *zip.Reader
}

func openContainer(raw []byte) (*container, error) {
	r, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, domain.WrapError(domain.ErrArchive, "open container", err)
	}
	return &container{reader: r}, nil
}

// entry returns the content of the exact-named entry. A missing entry is
// not an error: callers probe optional entries and treat ok=false as
// "no data, continue".
func (c *container) entry(name string) ([]byte, bool, error) {
	for _, f := range c.reader.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, false, domain.WrapError(domain.ErrArchive, "open entry "+name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, false, domain.WrapError(domain.ErrArchive, "read entry "+name, err)
		}
		return data, true, nil
	}
	return nil, false, nil
}

// names lists every entry path in directory order.
func (c *container) names() []string {
	out := make([]string, 0, len(c.reader.File))
	for _, f := range c.reader.File {
		out = append(out, f.Name)
	}
	return out
}
