package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/kirillkom/office-text-extractor/internal/core/domain"
)

type archiveEntry struct {
	name string
	body string
}

// buildArchive builds an in-memory ZIP with entries in the given order,
// so tests can assert on central-directory iteration.
func buildArchive(t *testing.T, entries []archiveEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		f, err := zw.Create(e.name)
		if err != nil {
			t.Fatalf("create entry %s: %v", e.name, err)
		}
		if _, err := f.Write([]byte(e.body)); err != nil {
			t.Fatalf("write entry %s: %v", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return buf.Bytes()
}

func TestOpenContainerRejectsNonArchive(t *testing.T) {
	_, err := openContainer([]byte("this is not a zip file"))
	if err == nil {
		t.Fatalf("expected error for non-archive bytes")
	}
	if !domain.IsKind(err, domain.ErrArchive) {
		t.Fatalf("expected archive error kind, got %v", err)
	}
}

func TestEntryMissingIsNotAnError(t *testing.T) {
	raw := buildArchive(t, []archiveEntry{{"present.xml", "<a/>"}})
	c, err := openContainer(raw)
	if err != nil {
		t.Fatalf("open container: %v", err)
	}

	data, ok, err := c.entry("absent.xml")
	if err != nil {
		t.Fatalf("expected no error for missing entry, got %v", err)
	}
	if ok || data != nil {
		t.Fatalf("expected ok=false and nil data for missing entry")
	}
}

func TestNamesPreserveArchiveOrder(t *testing.T) {
	raw := buildArchive(t, []archiveEntry{
		{"z/last.xml", "<a/>"},
		{"a/first.xml", "<b/>"},
		{"m/middle.xml", "<c/>"},
	})
	c, err := openContainer(raw)
	if err != nil {
		t.Fatalf("open container: %v", err)
	}

	names := c.names()
	want := []string{"z/last.xml", "a/first.xml", "m/middle.xml"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected names in archive order %v, got %v", want, names)
		}
	}
}
