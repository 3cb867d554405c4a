package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dcptools/cinecanvas/internal/ass"
	"github.com/dcptools/cinecanvas/internal/cinecanvas"
	"github.com/dcptools/cinecanvas/internal/vfr"
)

var checkCmd = &cobra.Command{
	Use:   "check [subtitle_file]",
	Short: "Report what a CineCanvas export would lose or flag",
	Long: `Check an ASS subtitle file against DCP guidance before exporting.

Prints the same warnings the convert command logs: subtitle count per
reel, animation and effect tags without a DCP analog, vector drawings,
long lines, and font reference problems. Warnings never block an export.

Examples:
  cinecanvas check film.ass
  cinecanvas check film.ass --font-uri fonts/Arial.ttf --include-font-ref`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().String("font-uri", "", "Font file to reference from the DCP")
	checkCmd.Flags().Bool("include-font-ref", false, "Write a LoadFont reference to the font file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	var doc *ass.Document
	codec := cinecanvas.New()
	if codec.CanRead(inputPath) {
		read, err := codec.Read(inputPath, vfr.Framerate{})
		if err != nil {
			return err
		}
		doc = read
	} else {
		parsed, err := ass.Parse(inputPath)
		if err != nil {
			return err
		}
		doc = parsed
	}

	settings := cinecanvas.NewSettings(inputPath, vfr.Framerate{})
	settings.FontURI, _ = cmd.Flags().GetString("font-uri")
	settings.IncludeFontReference, _ = cmd.Flags().GetBool("include-font-ref")

	for _, w := range strings.Split(settings.Validate(doc), "\n") {
		fmt.Println(w)
	}
	return nil
}
