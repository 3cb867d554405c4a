package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/dcptools/cinecanvas/internal/cinecanvas"
)

// applyConfig overlays export settings from an optional host config: a
// cinecanvas.yaml in the working directory (or an explicit --config
// file) plus CINECANVAS_* environment variables. Frame rate, title, reel
// number and language pass through the clamping validators; the font
// settings are taken as given.
func applyConfig(settings *cinecanvas.Settings, configPath string) error {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("cinecanvas")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("CINECANVAS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if configPath != "" {
			return fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
		// the implicit config file is optional, but a broken one is an error
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read cinecanvas config: %w", err)
		}
	}

	if v.IsSet("frame_rate") {
		settings.FrameRate = cinecanvas.ValidateFrameRate(v.GetFloat64("frame_rate"))
	}
	if v.IsSet("movie_title") {
		settings.MovieTitle = cinecanvas.ValidateMovieTitle(v.GetString("movie_title"))
	}
	if v.IsSet("reel_number") {
		settings.ReelNumber = cinecanvas.ValidateReelNumber(v.GetInt("reel_number"))
	}
	if v.IsSet("language") {
		settings.LanguageCode = cinecanvas.ValidateLanguageCode(v.GetString("language"))
	}
	if v.IsSet("font_uri") {
		settings.FontURI = v.GetString("font_uri")
	}
	if v.IsSet("include_font_reference") {
		settings.IncludeFontReference = v.GetBool("include_font_reference")
	}

	return nil
}
