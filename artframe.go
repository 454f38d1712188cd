// Package artframe wires config, image acquisition, composition and the
// display into one frame run.
package artframe

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hannesrauhe/artframe/acquire"
	"github.com/hannesrauhe/artframe/base"
	"github.com/hannesrauhe/artframe/compose"
	"github.com/hannesrauhe/artframe/display"
	"github.com/hannesrauhe/artframe/icons"
	"github.com/hannesrauhe/artframe/prompt"
	"github.com/hannesrauhe/artframe/providers/automatic"
	"github.com/hannesrauhe/artframe/providers/dalle"
	"github.com/hannesrauhe/artframe/providers/history"
	"github.com/hannesrauhe/artframe/providers/localdir"
	"github.com/hannesrauhe/artframe/providers/stability"
	"github.com/hannesrauhe/artframe/providers/testimage"
	"github.com/hannesrauhe/artframe/selector"
	"github.com/hannesrauhe/artframe/utils"
)

// Overrides carries command line values that take precedence over the config file
type Overrides struct {
	StabilityKey string
	DalleKey     string
}

// RunOptions are the per-run inputs from the surrounding system
type RunOptions struct {
	// Shape is an optional status glyph for headless setups
	Shape *icons.Icon
	// ChargeLevel is the battery percentage, -1 if unknown
	ChargeLevel int
}

// Frame holds everything needed for one acquire-and-compose pass
type Frame struct {
	providersCfg ProvidersConfig
	promptCfg    PromptConfig
	iconsCfg     IconsConfig

	iconSeq      *icons.Sequence
	orchestrator *acquire.Orchestrator
	composer     *compose.Composer
	disp         display.Display
}

// NewFrame reads all config sections and builds the provider registry, the
// prompt builder and the composer. Config defaults are written back so the
// user finds every knob in the file after the first run.
func NewFrame(ctx *base.Context, cr *utils.ConfigReader, overrides Overrides) (*Frame, error) {
	f := &Frame{
		providersCfg: defaultProvidersConfig(),
		promptCfg:    defaultPromptConfig(),
		iconsCfg:     defaultIconsConfig(),
		iconSeq:      &icons.Sequence{},
	}
	textCfg := defaultTextConfig()
	displayCfg := defaultDisplayConfig()

	for section, target := range map[string]interface{}{
		"providers": &f.providersCfg,
		"prompt":    &f.promptCfg,
		"text":      &textCfg,
		"icons":     &f.iconsCfg,
		"display":   &displayCfg,
	} {
		if err := cr.ReadSectionWithDefaults(section, target); err != nil {
			return nil, err
		}
	}
	if overrides.StabilityKey != "" {
		f.providersCfg.Stability.Key = overrides.StabilityKey
	}
	if overrides.DalleKey != "" {
		f.providersCfg.Dalle.Key = overrides.DalleKey
	}

	profile, err := display.LoadProfile(displayCfg.Type)
	if err != nil {
		return nil, err
	}
	if profile.Name == "mock" && displayCfg.Width > 0 && displayCfg.Height > 0 {
		profile.Width, profile.Height = displayCfg.Width, displayCfg.Height
	}
	f.disp = display.NewFileDisplay(profile, cr.GetFullPath(displayCfg.OutputPath))

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	pairs, err := prompt.ParseBracketPairs(f.promptCfg.ParseBrackets)
	if err != nil {
		return nil, err
	}
	builder := prompt.NewBuilder(prompt.NewEngine(pairs, rnd), prompt.NewLineStore(rnd), rnd)
	builder.ArtistsFile = cr.GetFullPath(f.promptCfg.ArtistsFile)
	builder.SubjectsFile = cr.GetFullPath(f.promptCfg.SubjectsFile)
	builder.PromptsFile = cr.GetFullPath(f.promptCfg.PromptsFile)
	builder.Preamble = f.promptCfg.Preamble
	builder.Connector = f.promptCfg.Connector
	builder.Postscript = f.promptCfg.Postscript
	builder.ParseText = f.promptCfg.ParseRandomText

	localCfg := f.providersCfg.Local
	localCfg.Location = cr.GetFullPath(localCfg.Location)
	generatedLocation := cr.GetFullPath(f.providersCfg.GeneratedLocation)

	providers := map[selector.Source]acquire.Provider{
		selector.SourceLocal:     localdir.NewProvider(localCfg, rnd),
		selector.SourceHistory:   history.NewProvider(history.Config{Location: generatedLocation}, rnd),
		selector.SourceStability: stability.NewProvider(f.providersCfg.Stability),
		selector.SourceDalle:     dalle.NewProvider(f.providersCfg.Dalle),
		selector.SourceAutomatic: automatic.NewProvider(f.providersCfg.Automatic),
	}
	if f.providersCfg.TestEnabled {
		providers[selector.SourceTest] = &testimage.Provider{}
	}

	f.orchestrator = acquire.NewOrchestrator(providers, builder, prompt.Mode(f.promptCfg.Mode), f.iconSeq, profile.Width, profile.Height, rnd)
	if f.providersCfg.SaveGenerated {
		f.orchestrator.SaveLocation = generatedLocation
	}

	f.composer = &compose.Composer{
		Canvas: compose.CanvasSpec{Width: profile.Width, Height: profile.Height},
		Text:   textCfg,
		Icons:  f.iconsCfg.IconConfig,
	}
	return f, nil
}

// Table builds the weight table for one run from the configured amounts
func (f *Frame) Table() selector.Table {
	return selector.Table{
		{ID: selector.SourceLocal, Weight: f.providersCfg.ExternalAmount},
		{ID: selector.SourceHistory, Weight: f.providersCfg.HistoricAmount},
		{ID: selector.SourceStability, Weight: f.providersCfg.StabilityAmount},
		{ID: selector.SourceDalle, Weight: f.providersCfg.DalleAmount},
		{ID: selector.SourceAutomatic, Weight: f.providersCfg.AutomaticAmount},
	}
}

// RunOnce acquires one image, composes the frame and updates the display.
// The display is never touched when acquisition fails, so an exhausted run
// leaves the previously shown frame intact.
func (f *Frame) RunOnce(ctx *base.Context, opts RunOptions) error {
	img, meta, src, err := f.orchestrator.AcquireImage(ctx, f.Table())
	if err != nil {
		return err
	}
	ctx.GetLogger().Infof("Acquired image from source %q", src)

	if f.iconsCfg.ShowBattery {
		f.iconSeq.Append(icons.BatteryIcon(opts.ChargeLevel))
	}

	frame, err := f.composer.Compose(ctx, img, meta, f.iconSeq, opts.Shape)
	if err != nil {
		return fmt.Errorf("composing frame: %w", err)
	}
	if err := f.disp.Render(frame); err != nil {
		return fmt.Errorf("updating display: %w", err)
	}
	return f.disp.Close()
}
