package cli

import (
	"fmt"

	"github.com/mgpai22/subsync/internal/config"
	"github.com/mgpai22/subsync/internal/logging"
	"github.com/spf13/cobra"
)

const version = "0.2.0"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
	logger     *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "subsync",
	Short: "Synchronize SubRip subtitles to a video",
	Long: `Subsync re-times a SubRip (.srt) file so that its first and last
subtitles start at the given times. Every subtitle in between is moved
and stretched linearly, which fixes both constant offsets and frame-rate
drift.

If -f or -l is omitted, the current start of the first or last subtitle
is kept. Use - as input or output for stdin/stdout.

Examples:
  subsync -f 00:01:33,492 -l 01:39:23,561 -i file.srt
  subsync -f 00:00:05,000 -i file.srt -o synced.srt
  cat file.srt | subsync -l 01:39:23.561 -i - -o -`,
	Version:      version,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runSync,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		if !cmd.Flags().Changed("verbose") {
			verbose = cfg.Verbose
		}
		logger = logging.NewLogger(verbose)

		if cfg.Path() != "" {
			logger.Debugw("Loaded config", "path", cfg.Path())
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", fmt.Sprintf("Config file (default %s)", config.DefaultPath()))
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
