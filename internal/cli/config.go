package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration that an adjustment run would use, after applying
the --config file and any flags, as YAML. The output can be saved and passed
back with --config.

Examples:
  sccadjust config > sccadjust.yaml
  sccadjust config --min-gap-seconds 1.5 -o sccadjust.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
}

func runConfig(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	if outputPath == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	logger.Infow("Wrote configuration", "path", outputPath)
	return nil
}
