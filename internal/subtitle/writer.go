package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SubRip format
type SRTWriter struct{}

// WebVTT format
type VTTWriter struct{}

// Advanced SubStation Alpha format
type ASSWriter struct {
	Title    string
	FontName string
	FontSize int
}

func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatSRT:
		return &SRTWriter{}, nil
	case FormatVTT:
		return &VTTWriter{}, nil
	case FormatASS:
		return &ASSWriter{
			Title:    "Caption Timing Preview",
			FontName: "Courier New",
			FontSize: 20,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteFile renders sub in the format implied by the extension of path.
func WriteFile(sub *Subtitle, path string) error {
	format, err := GetFormatFromExtension(path)
	if err != nil {
		return err
	}
	writer, err := NewWriter(format)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create preview directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := writer.Write(sub, bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write preview file: %w", err)
	}
	return f.Close()
}

func (w *SRTWriter) Write(sub *Subtitle, out io.Writer) error {
	var sb strings.Builder
	for i, entry := range sub.Entries {
		// index (1-based)
		fmt.Fprintf(&sb, "%d\n", i+1)

		// timestamps: 00:00:00,000 --> 00:00:00,000
		fmt.Fprintf(&sb, "%s --> %s\n",
			formatClock(entry.StartTime, ","),
			formatClock(entry.EndTime, ","))

		sb.WriteString(entry.Text)
		sb.WriteString("\n\n")
	}

	_, err := io.WriteString(out, sb.String())
	return err
}

func (w *VTTWriter) Write(sub *Subtitle, out io.Writer) error {
	var sb strings.Builder

	sb.WriteString("WEBVTT\n\n")

	for i, entry := range sub.Entries {
		// optional cue identifier
		fmt.Fprintf(&sb, "%d\n", i+1)

		// timestamps: 00:00:00.000 --> 00:00:00.000
		fmt.Fprintf(&sb, "%s --> %s\n",
			formatClock(entry.StartTime, "."),
			formatClock(entry.EndTime, "."))

		sb.WriteString(entry.Text)
		sb.WriteString("\n\n")
	}

	_, err := io.WriteString(out, sb.String())
	return err
}

func (w *ASSWriter) Write(sub *Subtitle, out io.Writer) error {
	var sb strings.Builder

	// script info section
	sb.WriteString("[Script Info]\n")
	fmt.Fprintf(&sb, "Title: %s\n", w.Title)
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString("Collisions: Normal\n")
	sb.WriteString("PlayDepth: 0\n\n")

	// v4+ styles section; boxed white-on-black like a 608 decoder
	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	fmt.Fprintf(&sb, "Style: Default,%s,%d,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,3,2,0,2,10,10,10,1\n\n",
		w.FontName, w.FontSize)

	// events section
	sb.WriteString("[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, entry := range sub.Entries {
		fmt.Fprintf(&sb, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			formatASSTime(entry.StartTime),
			formatASSTime(entry.EndTime),
			escapeASSText(entry.Text))
	}

	_, err := io.WriteString(out, sb.String())
	return err
}

// HH:MM:SS plus milliseconds after sep
func formatClock(d time.Duration, sep string) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d%s%03d", hours, minutes, seconds, sep, millis)
}

func formatASSTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	centis := (int(d.Milliseconds()) % 1000) / 10

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}

func escapeASSText(text string) string {
	return strings.ReplaceAll(text, "\n", "\\N")
}

// preview format based on file extension
func GetFormatFromExtension(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return FormatSRT, nil
	case ".vtt":
		return FormatVTT, nil
	case ".ass", ".ssa":
		return FormatASS, nil
	default:
		return "", fmt.Errorf("unsupported preview format %q: use .srt, .vtt, or .ass", ext)
	}
}
