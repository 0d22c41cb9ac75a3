package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mgpai22/sccadjust/internal/config"
	"github.com/mgpai22/sccadjust/internal/stream"
	"github.com/mgpai22/sccadjust/internal/subtitle"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.Flags().
		StringP("report", "r", "", "Write a YAML report of every adjustment to this path")
	rootCmd.Flags().
		StringP("preview", "p", "", "Write the adjusted captions as a subtitle preview (.srt, .vtt, .ass)")
}

func runAdjust(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputPath := args[1]

	reportPath, _ := cmd.Flags().GetString("report")
	previewPath, _ := cmd.Flags().GetString("preview")

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}
	if same, _ := samePath(inputPath, outputPath); same {
		return fmt.Errorf("output path must differ from input path: %s", outputPath)
	}
	if previewPath != "" {
		if _, err := subtitle.GetFormatFromExtension(previewPath); err != nil {
			return err
		}
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger.Infow("Adjusting caption timecodes",
		"input", inputPath,
		"output", outputPath,
		"frames_per_char", cfg.FramesPerChar,
		"allow_clear_removal", cfg.AllowClearRemoval,
	)

	processor := stream.NewProcessor(cfg, logger)
	report, err := processor.ProcessFile(inputPath, outputPath)
	if err != nil {
		return fmt.Errorf("adjustment failed: %w", err)
	}

	if reportPath != "" {
		if err := writeReport(report, reportPath); err != nil {
			return err
		}
		logger.Infow("Wrote report", "path", reportPath)
	}

	if previewPath != "" {
		if err := subtitle.WriteFile(report.Preview(), previewPath); err != nil {
			return fmt.Errorf("failed to write preview: %w", err)
		}
		logger.Infow("Wrote preview", "path", previewPath)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Captions adjusted successfully: %s\n", absOutput)
	fmt.Printf("  Captions: %d\n", len(report.Captions()))
	fmt.Printf("  Partial shifts: %d\n", report.PartialShifts)
	if len(report.MalformedLines) > 0 {
		fmt.Printf("  Lines passed through without timecode: %d\n", len(report.MalformedLines))
	}
	fmt.Printf("  Removed clears: %d\n", len(report.Retracted))
	for i, tc := range report.Retracted {
		fmt.Printf("    %d: %s\n", i, tc.Format(cfg.DropFrame))
	}

	return nil
}

// resolveConfig layers explicitly set flags over the config file over the defaults.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("frame-rate") {
		cfg.FrameRate, _ = flags.GetInt("frame-rate")
	}
	if flags.Changed("frames-per-char") {
		cfg.FramesPerChar, _ = flags.GetFloat64("frames-per-char")
	}
	if flags.Changed("min-caption-seconds") {
		cfg.MinCaptionSeconds, _ = flags.GetFloat64("min-caption-seconds")
	}
	if flags.Changed("min-gap-seconds") {
		cfg.MinGapSeconds, _ = flags.GetFloat64("min-gap-seconds")
	}
	if flags.Changed("large-caption-extra-frames") {
		cfg.LargeCaptionExtraFrames, _ = flags.GetInt("large-caption-extra-frames")
	}
	if flags.Changed("large-caption-chars") {
		cfg.LargeCaptionChars, _ = flags.GetInt("large-caption-chars")
	}
	if flags.Changed("allow-clear-removal") {
		cfg.AllowClearRemoval, _ = flags.GetBool("allow-clear-removal")
	}
	if flags.Changed("drop-frame") {
		cfg.DropFrame, _ = flags.GetBool("drop-frame")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func writeReport(report *stream.Report, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := report.WriteYAML(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return f.Close()
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}
