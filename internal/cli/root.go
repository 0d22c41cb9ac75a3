package cli

import (
	"github.com/mgpai22/sccadjust/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger

	newLogger = logging.NewLogger
)

var rootCmd = &cobra.Command{
	Use:   "sccadjust [input.scc] [output.scc]",
	Short: "Compensate SCC caption timecodes for decoder buffer loading",
	Long: `sccadjust rewrites the timecodes of a Scenarist (SCC) pop-on caption file
so that captions reach the screen at their intended moment.

A decoder needs time to load a caption into its buffer, roughly in proportion
to the number of characters it carries. Each caption is moved earlier by that
estimated load time, without breaking the minimum caption duration after the
previous caption or the minimum gap after a clear. A clear that ends up too
close to the following caption is removed.

Examples:
  sccadjust episode.scc episode.adjusted.scc
  sccadjust episode.scc out.scc --frames-per-char 0.9 --report report.yaml
  sccadjust episode.scc out.scc --config sccadjust.yaml --preview out.srt -v`,
	Args:         cobra.ExactArgs(2),
	RunE:         runAdjust,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(verbose)
	},
}

// Execute runs the root command. The logger is flushed on every exit path,
// including failed runs.
func Execute() error {
	defer syncLogger()
	return rootCmd.Execute()
}

func syncLogger() {
	if logger != nil {
		_ = logger.Sync()
	}
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (per-event trace)")
	rootCmd.PersistentFlags().
		StringP("config", "c", "", "YAML configuration file")

	rootCmd.PersistentFlags().
		Int("frame-rate", 30, "Logical frames per second of the timecodes")
	rootCmd.PersistentFlags().
		Float64("frames-per-char", 0.8, "Decoder buffer load frames per displayed character")
	rootCmd.PersistentFlags().
		Float64("min-caption-seconds", 1.0, "Minimum time a caption stays up before the next one")
	rootCmd.PersistentFlags().
		Float64("min-gap-seconds", 2.0, "Minimum gap after a clear for the clear to be kept")
	rootCmd.PersistentFlags().
		Int("large-caption-extra-frames", 15, "Extra frames of display time after a large caption")
	rootCmd.PersistentFlags().
		Int("large-caption-chars", 32, "Character count at which a caption counts as large")
	rootCmd.PersistentFlags().
		Bool("allow-clear-removal", true, "Remove a clear that ends up too close to the next caption")
	rootCmd.PersistentFlags().
		Bool("drop-frame", true, "Write ';' before the frame field of adjusted timecodes")
}
