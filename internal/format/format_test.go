package format

import (
	"testing"

	"github.com/hyperjump/briefpipe/internal/models"
)

func TestDetect_byExtension(t *testing.T) {
	cases := []struct {
		name string
		want models.Format
	}{
		{"petition.pdf", models.FormatPDF},
		{"Petition.PDF", models.FormatPDF},
		{"arguments.docx", models.FormatDOCX},
		{"old-plaint.doc", models.FormatDoc},
		{"accounts.xlsx", models.FormatSpreadsheet},
		{"ledger.xls", models.FormatSpreadsheet},
		{"payments.csv", models.FormatSpreadsheet},
		{"notes.txt", models.FormatText},
		{"README.md", models.FormatText},
		{"reply.rtf", models.FormatRTF},
		{"scan.png", models.FormatImage},
		{"evidence.JPG", models.FormatImage},
		{"exhibit.tiff", models.FormatImage},
	}
	for _, tc := range cases {
		if got := Detect(tc.name, nil); got != tc.want {
			t.Errorf("Detect(%q) = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestDetect_sniffFallback(t *testing.T) {
	pdf := []byte("%PDF-1.7\n%âãÏÓ\n1 0 obj\n")
	if got := Detect("upload", pdf); got != models.FormatPDF {
		t.Errorf("pdf sniff: %s", got)
	}
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	if got := Detect("attachment", png); got != models.FormatImage {
		t.Errorf("png sniff: %s", got)
	}
	if got := Detect("statement", []byte("Plain prose with no extension at all.")); got != models.FormatText {
		t.Errorf("text sniff: %s", got)
	}
}

func TestDetect_unknown(t *testing.T) {
	if got := Detect("blob.xyz", []byte{0x00, 0x01, 0x02, 0x03}); got != models.FormatUnsupported {
		t.Errorf("got %s", got)
	}
	if got := Detect("empty", nil); got != models.FormatUnsupported {
		t.Errorf("empty content: %s", got)
	}
}

func TestDetect_extensionBeatsContent(t *testing.T) {
	// A CSV exported with a .txt extension stays text; the caller chose the name.
	if got := Detect("data.txt", []byte("a,b,c\n1,2,3\n")); got != models.FormatText {
		t.Errorf("got %s", got)
	}
}
