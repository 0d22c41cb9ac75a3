package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func sampleSubtitle() *Subtitle {
	return &Subtitle{
		Entries: []Entry{
			{Index: 1, StartTime: 1500 * time.Millisecond, EndTime: 4 * time.Second, Text: "Hello"},
			{Index: 2, StartTime: 61 * time.Second, EndTime: 63*time.Second + 250*time.Millisecond, Text: "Two\nrows"},
		},
	}
}

func TestSRTWriter(t *testing.T) {
	var sb strings.Builder
	if err := (&SRTWriter{}).Write(sampleSubtitle(), &sb); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	want := "1\n00:00:01,500 --> 00:00:04,000\nHello\n\n" +
		"2\n00:01:01,000 --> 00:01:03,250\nTwo\nrows\n\n"
	if sb.String() != want {
		t.Errorf("SRT output:\n%q\nwant:\n%q", sb.String(), want)
	}
}

func TestVTTWriter(t *testing.T) {
	var sb strings.Builder
	if err := (&VTTWriter{}).Write(sampleSubtitle(), &sb); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := sb.String()
	if !strings.HasPrefix(out, "WEBVTT\n\n") {
		t.Errorf("missing WEBVTT header: %q", out)
	}
	if !strings.Contains(out, "00:00:01.500 --> 00:00:04.000") {
		t.Errorf("missing cue timing: %q", out)
	}
}

func TestASSWriter(t *testing.T) {
	writer, err := NewWriter(FormatASS)
	if err != nil {
		t.Fatalf("NewWriter error: %v", err)
	}

	var sb strings.Builder
	if err := writer.Write(sampleSubtitle(), &sb); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := sb.String()
	if !strings.Contains(out, "Dialogue: 0,0:00:01.50,0:00:04.00,Default,,0,0,0,,Hello\n") {
		t.Errorf("missing first dialogue line:\n%s", out)
	}
	if !strings.Contains(out, `Two\Nrows`) {
		t.Errorf("line break not escaped:\n%s", out)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "preview.srt")

	if err := WriteFile(sampleSubtitle(), path); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read preview: %v", err)
	}
	if !strings.HasPrefix(string(data), "1\n00:00:01,500 --> ") {
		t.Errorf("unexpected preview content:\n%s", data)
	}
}

func TestGetFormatFromExtension(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.srt", FormatSRT, false},
		{"a.VTT", FormatVTT, false},
		{"a.ass", FormatASS, false},
		{"a.ssa", FormatASS, false},
		{"a.scc", "", true},
		{"preview", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := GetFormatFromExtension(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetFormatFromExtension(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("GetFormatFromExtension(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}

	if _, err := NewWriter(Format("scc")); err == nil {
		t.Error("expected error for unsupported writer format")
	}
}
