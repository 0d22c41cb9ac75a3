package stream

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dimchansky/utfbom"
)

// ProcessFile adjusts inPath into outPath. The output is written to a
// temporary file next to outPath and only renamed into place on success,
// so a fatal error never leaves a partial caption file behind.
func (p *Processor) ProcessFile(inPath, outPath string) (*Report, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer in.Close()

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(outPath)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary output file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	report, err := p.Process(utfbom.SkipOnly(in), tmp)
	if err != nil {
		return nil, err
	}

	if err := tmp.Chmod(0644); err != nil {
		return nil, fmt.Errorf("failed to set output file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close output file: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		committed = true
		return nil, fmt.Errorf("failed to move output into place: %w", err)
	}
	committed = true
	return report, nil
}
