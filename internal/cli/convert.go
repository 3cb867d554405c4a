package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dcptools/cinecanvas/internal/ass"
	"github.com/dcptools/cinecanvas/internal/cinecanvas"
	"github.com/dcptools/cinecanvas/internal/vfr"
)

var convertCmd = &cobra.Command{
	Use:   "convert [subtitle_file]",
	Short: "Convert a subtitle file between ASS and CineCanvas XML",
	Long: `Convert a subtitle file between ASS and CineCanvas XML.

The direction is inferred from the input: a CineCanvas XML file becomes an
.ass document, anything else is treated as ASS and exported to XML.

Export settings come from flags, from an optional config file
(cinecanvas.yaml, or --config) and CINECANVAS_* environment variables;
values not set anywhere fall back to DCP defaults.

Examples:
  cinecanvas convert film.ass
  cinecanvas convert film.ass -o reel1.xml --fps 24 --reel 1
  cinecanvas convert film.ass --title "My Film" --language fr
  cinecanvas convert subtitles.xml -o film.ass`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().Float64("fps", 0, "Video frame rate used for frame-accurate timing")
	convertCmd.Flags().String("title", "", "Movie title for the DCP header")
	convertCmd.Flags().Int("reel", 0, "Reel number")
	convertCmd.Flags().String("font-uri", "", "Font file to reference from the DCP")
	convertCmd.Flags().Bool("include-font-ref", false, "Write a LoadFont reference to the font file")
	convertCmd.Flags().String("config", "", "Config file with export settings")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	outputPath, _ := cmd.Flags().GetString("output")
	fpsValue, _ := cmd.Flags().GetFloat64("fps")

	var fps vfr.Framerate
	if fpsValue > 0 {
		fps = framerateFromFloat(fpsValue)
	}

	codec := cinecanvas.New()
	codec.NewSubtitleID = func() string {
		return "urn:uuid:" + uuid.NewString()
	}

	if codec.CanRead(inputPath) {
		return importXML(codec, inputPath, outputPath, fps)
	}
	return exportXML(cmd, codec, inputPath, outputPath, fps)
}

func importXML(codec *cinecanvas.Codec, inputPath, outputPath string, fps vfr.Framerate) error {
	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".ass"
	}

	logger.Infow("Reading CineCanvas XML",
		"input", inputPath,
		"output", outputPath,
	)

	doc, err := codec.Read(inputPath, fps)
	if err != nil {
		return err
	}
	if err := doc.Write(outputPath); err != nil {
		return err
	}

	logger.Infow("Conversion complete", "events", len(doc.Events))
	return nil
}

func exportXML(cmd *cobra.Command, codec *cinecanvas.Codec, inputPath, outputPath string, fps vfr.Framerate) error {
	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".xml"
	}

	doc, err := ass.Parse(inputPath)
	if err != nil {
		return err
	}

	settings := cinecanvas.NewSettings(outputPath, fps)
	configPath, _ := cmd.Flags().GetString("config")
	if err := applyConfig(&settings, configPath); err != nil {
		return err
	}
	applyFlags(cmd, &settings)

	logger.Infow("Writing CineCanvas XML",
		"input", inputPath,
		"output", outputPath,
		"frame_rate", settings.FrameRate,
		"movie_title", settings.MovieTitle,
		"language", settings.LanguageCode,
	)

	if warnings := settings.Validate(doc); warnings != "" {
		for _, w := range strings.Split(warnings, "\n") {
			logger.Warnw(w)
		}
	}

	if err := codec.WriteWithSettings(doc, outputPath, settings); err != nil {
		return err
	}

	logger.Infow("Conversion complete", "events", len(doc.Events))
	return nil
}

func applyFlags(cmd *cobra.Command, settings *cinecanvas.Settings) {
	if cmd.Flags().Changed("fps") {
		fps, _ := cmd.Flags().GetFloat64("fps")
		settings.FrameRate = cinecanvas.ValidateFrameRate(fps)
	}
	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		settings.MovieTitle = cinecanvas.ValidateMovieTitle(title)
	}
	if cmd.Flags().Changed("reel") {
		reel, _ := cmd.Flags().GetInt("reel")
		settings.ReelNumber = cinecanvas.ValidateReelNumber(reel)
	}
	if lang, _ := cmd.Flags().GetString("language"); lang != "" {
		settings.LanguageCode = cinecanvas.ValidateLanguageCode(lang)
	}
	if cmd.Flags().Changed("font-uri") {
		settings.FontURI, _ = cmd.Flags().GetString("font-uri")
	}
	if cmd.Flags().Changed("include-font-ref") {
		settings.IncludeFontReference, _ = cmd.Flags().GetBool("include-font-ref")
	}
}

// framerateFromFloat maps a flag value onto the exact rational rate,
// keeping the NTSC-family rates frame accurate.
func framerateFromFloat(fps float64) vfr.Framerate {
	settings := cinecanvas.Settings{FrameRate: cinecanvas.ValidateFrameRate(fps)}
	return settings.Framerate()
}
