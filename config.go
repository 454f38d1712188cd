package artframe

import (
	"github.com/hannesrauhe/artframe/compose"
	"github.com/hannesrauhe/artframe/geometry"
	"github.com/hannesrauhe/artframe/providers/automatic"
	"github.com/hannesrauhe/artframe/providers/dalle"
	"github.com/hannesrauhe/artframe/providers/localdir"
	"github.com/hannesrauhe/artframe/providers/stability"
)

// ProvidersConfig configures the image sources and their selection weights.
// A weight of 0 disables the source, if no source carries any weight the
// run falls back to the built-in test image.
type ProvidersConfig struct {
	TestEnabled     bool
	ExternalAmount  int
	HistoricAmount  int
	StabilityAmount int
	DalleAmount     int
	AutomaticAmount int

	// GeneratedLocation is where generated images are saved and where the
	// historic source picks them up again
	GeneratedLocation string
	SaveGenerated     bool

	Local     localdir.Config
	Dalle     dalle.Config
	Stability stability.Config
	Automatic automatic.Config
}

func defaultProvidersConfig() ProvidersConfig {
	return ProvidersConfig{
		TestEnabled:       true,
		GeneratedLocation: "images/generated",
		SaveGenerated:     true,
		Local: localdir.Config{
			Location:      "images/external",
			ParseText:     true,
			PreambleRegex: ".*- ",
			ArtistRegex:   " by ",
		},
		Stability: stability.DefaultConfig(),
		Automatic: automatic.DefaultConfig(),
	}
}

// PromptConfig configures how generation prompts and captions are built
type PromptConfig struct {
	// Mode: 0 random, 1 subject/artist, 2 prompt file
	Mode       int
	Preamble   string
	Connector  string
	Postscript string

	ArtistsFile  string
	SubjectsFile string
	PromptsFile  string

	// ParseBrackets declares the template bracket pairs outermost-first
	ParseBrackets []string
	// ParseRandomText resolves bracket templates in all prompt parts
	ParseRandomText bool
}

func defaultPromptConfig() PromptConfig {
	return PromptConfig{
		Mode:            1,
		Connector:       " by ",
		ArtistsFile:     "prompts/artists.txt",
		SubjectsFile:    "prompts/subjects.txt",
		PromptsFile:     "prompts/prompts.txt",
		ParseBrackets:   []string{"()", "[]", "{}"},
		ParseRandomText: true,
	}
}

// IconsConfig configures the icon strip, ShowBattery adds a battery glyph
// for the charge level handed to the run
type IconsConfig struct {
	compose.IconConfig
	ShowBattery bool
}

func defaultIconsConfig() IconsConfig {
	return IconsConfig{
		IconConfig: compose.IconConfig{
			Corner:  geometry.TopRight,
			Padding: 10,
			Size:    20,
			Gap:     5,
			Stroke:  3,
			Opacity: 150,
			Color:   "#ffffff",
		},
	}
}

func defaultTextConfig() compose.TextConfig {
	return compose.TextConfig{
		Enabled:    true,
		TitleSize:  20,
		ArtistSize: 14,
		TitleLoc:   30,
		ArtistLoc:  10,
		Padding:    10,
		Opacity:    150,
		BoxToFloor: true,
		BoxToEdge:  true,
	}
}

// DisplayConfig selects the panel profile, Width/Height override the mock
// profile for testing arbitrary resolutions
type DisplayConfig struct {
	Type       string
	OutputPath string
	Width      int
	Height     int
}

func defaultDisplayConfig() DisplayConfig {
	return DisplayConfig{Type: "mock", OutputPath: "artframe.png", Width: 800, Height: 480}
}
