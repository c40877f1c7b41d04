package extract

import (
	"strings"
	"testing"
)

func TestFlattenEntryTokenizesTagsAndContent(t *testing.T) {
	got := flattenEntry([]byte("<a>hello</a>"))
	if got != "<a> hello </a>" {
		t.Fatalf("expected tag and content tokens separated, got %q", got)
	}
}

func TestFlattenEntryDecodesEntitiesAndCollapsesWhitespace(t *testing.T) {
	in := "value&quot;d&quot; &amp;\t&lt;tag&gt;\r\n  spaced   out"
	got := flattenEntry([]byte(in))
	if got != `value"d" & <tag> spaced out` {
		t.Fatalf("unexpected flattened text: %q", got)
	}
}

func TestFlattenEntryDropsInvalidBytes(t *testing.T) {
	in := append([]byte("ok "), 0xff, 0xfe)
	in = append(in, []byte(" still ok")...)
	got := flattenEntry(in)
	if got != "ok still ok" {
		t.Fatalf("expected invalid bytes dropped, got %q", got)
	}
}

func TestFlattenVisitsOnlyXMLEntriesCaseInsensitive(t *testing.T) {
	raw := buildArchive(t, []archiveEntry{
		{"word/document.xml", "<doc>lower</doc>"},
		{"META.XML", "<meta>upper</meta>"},
		{"readme.txt", "skipped entirely"},
	})

	got, err := flatten(raw)
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	if !strings.Contains(got, "lower") || !strings.Contains(got, "upper") {
		t.Fatalf("expected both xml entries flattened, got %q", got)
	}
	if strings.Contains(got, "skipped") {
		t.Fatalf("expected non-xml entry ignored, got %q", got)
	}
}

func TestFlattenJoinsEntriesWithNewlines(t *testing.T) {
	raw := buildArchive(t, []archiveEntry{
		{"a.xml", "<a>one</a>"},
		{"b.xml", "<b>two</b>"},
	})

	got, err := flatten(raw)
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	if got != "<a> one </a>\n<b> two </b>" {
		t.Fatalf("expected one line per entry, got %q", got)
	}
}

func TestFlattenRejectsNonArchive(t *testing.T) {
	if _, err := flatten([]byte("plain bytes, not a zip")); err == nil {
		t.Fatalf("expected error for non-archive input")
	}
}
