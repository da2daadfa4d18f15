package cmd

import (
	"fmt"
	"os"

	"github.com/fumin/ppm"
	"github.com/fumin/ppm/ac"
	"github.com/fumin/ppm/console"
	"github.com/fumin/ppm/utils"
	"github.com/pkg/errors"
	"github.com/smira/commander"
	"github.com/smira/flag"
)

// FatalError is a panic value carrying the process exit code
type FatalError struct {
	ReturnCode int
	Message    string
}

// Fatal panics and aborts execution with exit code 1, or 2 for usage errors
func Fatal(err error) {
	returnCode := 1
	if err == commander.ErrFlagError || err == commander.ErrCommandError {
		returnCode = 2
	}
	panic(&FatalError{ReturnCode: returnCode, Message: err.Error()})
}

// Common context shared by all commands
var context struct {
	flags    *flag.FlagSet
	config   utils.ConfigStructure
	mode     ac.Mode
	progress *console.Progress
}

// InitContext loads the configuration, applies the flags given on the command line and sets up logging
func InitContext(flags *flag.FlagSet) error {
	context.flags = flags
	context.config = utils.Config

	if err := loadConfig(flags.Lookup("config").Value.String(), &context.config); err != nil {
		return err
	}

	if flags.IsSet("len") {
		context.config.WordLength = uint(flags.Lookup("len").Value.Get().(int))
	}
	if flags.IsSet("mode") {
		context.config.Mode = flags.Lookup("mode").Value.String()
	}
	if flags.IsSet("order") {
		context.config.MaxContextOrder = flags.Lookup("order").Value.Get().(int)
	}
	if flags.IsSet("log-level") {
		context.config.LogLevel = flags.Lookup("log-level").Value.String()
	}
	if flags.IsSet("log-format") {
		context.config.LogFormat = flags.Lookup("log-format").Value.String()
	}
	if flags.IsSet("progress") {
		context.config.ShowProgress = flags.Lookup("progress").Value.Get().(bool)
	}

	utils.SetupLogger(context.config.LogFormat, context.config.LogLevel)

	mode, err := context.config.Validate()
	if err != nil {
		return err
	}
	context.mode = mode
	context.progress = console.NewProgress(context.config.ShowProgress)
	return nil
}

// ShutdownContext hides the progress bar, if any
func ShutdownContext() {
	if context.progress != nil {
		context.progress.ShutdownBar()
	}
}

func loadConfig(location string, config *utils.ConfigStructure) error {
	if location != "" {
		return errors.Wrapf(utils.LoadConfig(location, config), "loading config file %s", location)
	}

	for _, location := range utils.ConfigLocations() {
		err := utils.LoadConfig(location, config)
		if err == nil {
			return nil
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("error loading config file %s: %s", location, err)
		}
	}
	return nil
}

func options() ppm.Options {
	opts := ppm.Options{
		WordLength: context.config.WordLength,
		Mode:       context.mode,
		Order:      context.config.MaxContextOrder,
	}
	if context.progress.Enabled() {
		opts.Progress = context.progress
	}
	return opts
}
