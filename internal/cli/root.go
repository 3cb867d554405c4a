package cli

import (
	"github.com/dcptools/cinecanvas/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cinecanvas",
	Short: "Convert between ASS subtitles and CineCanvas XML for DCPs",
	Long: `Cinecanvas converts Advanced SubStation Alpha subtitles to the
CineCanvas XML format used by Digital Cinema Packages, and back.

Inline bold/italic runs, fade tags and multi-line layout survive the
conversion; features without a DCP analog are reported before export.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "ISO 639 language code (e.g., en, fr, deu)")
}
