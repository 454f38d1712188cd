package main

import (
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	logrus "github.com/sirupsen/logrus"

	"github.com/hannesrauhe/artframe"
	"github.com/hannesrauhe/artframe/acquire"
	"github.com/hannesrauhe/artframe/base"
	"github.com/hannesrauhe/artframe/icons"
	"github.com/hannesrauhe/artframe/utils"
)

type loggingConfig struct {
	Level            logrus.Level
	DisableTimestamp bool
	DisableQuote     bool
}

func configureLogging(cr *utils.ConfigReader, logger *logrus.Logger) {
	loggingConfig := loggingConfig{Level: logrus.InfoLevel, DisableTimestamp: false, DisableQuote: false}
	cr.ReadSectionWithDefaults("logging", &loggingConfig)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: loggingConfig.DisableTimestamp,
		DisableQuote:     loggingConfig.DisableQuote,
	})
	logger.SetLevel(loggingConfig.Level)
}

// statusShape maps the -displayshape flag to a glyph, -1 disables it
func statusShape(flagValue int) *icons.Icon {
	shapes := []icons.Icon{icons.Square, icons.Cross, icons.Triangle, icons.Circle}
	if flagValue < 0 || flagValue >= len(shapes) {
		return nil
	}
	return &shapes[flagValue]
}

func main() {
	var configpath, stabilityKey, dalleKey string
	var norun, verbose bool
	var displayShape, charge int
	flag.StringVar(&configpath, "c", "artframe_config.json", "Specify config file to use")
	flag.BoolVar(&norun, "norun", false, "Initialize config and exit without updating the display")
	flag.IntVar(&displayShape, "displayshape", -1, "Draw a status shape (0 square, 1 cross, 2 triangle, 3 circle)")
	flag.IntVar(&charge, "charge", -1, "Battery charge percentage reported by the power HAT")
	flag.StringVar(&stabilityKey, "stabilitykey", "", "Stability API key, overrides the config file")
	flag.StringVar(&dalleKey, "dallekey", "", "OpenAI API key, overrides the config file")
	flag.BoolVar(&verbose, "v", false, "Verbose output")
	flag.Parse()

	logger := logrus.StandardLogger()
	cr, err := utils.NewConfigReader(logger.WithField("component", "config"), configpath)
	if err != nil {
		logger.Fatal(err)
	}
	configureLogging(cr, logger)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	ctx, cancel := base.NewBaseContext(logger)
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Interrupted, aborting run")
		cancel()
	}()

	frame, err := artframe.NewFrame(ctx, cr, artframe.Overrides{StabilityKey: stabilityKey, DalleKey: dalleKey})
	if err != nil {
		logger.Fatal(err)
	}
	if err := cr.WriteBackConfigIfChanged(); err != nil {
		logger.Errorf("Could not write back config: %v", err)
	}

	if norun {
		logger.Info("-norun option used, exiting without updating the display")
		return
	}

	runCtx := base.WithTrigger(ctx, "scheduled run")
	err = frame.RunOnce(runCtx, artframe.RunOptions{Shape: statusShape(displayShape), ChargeLevel: charge})
	if errors.Is(err, acquire.ErrAllSourcesExhausted) {
		logger.Error("No image source produced an image, leaving the display untouched")
		os.Exit(1)
	}
	if err != nil {
		logger.Fatal(err)
	}
}
