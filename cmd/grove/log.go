package main

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func setupLogging(verbose bool, level string) error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	l := zerolog.WarnLevel
	if level != "" {
		var err error
		if l, err = zerolog.ParseLevel(level); err != nil {
			return errors.Wrapf(err, "invalid log level %q", level)
		}
	}
	if verbose {
		l = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(l)
	return nil
}

// fail logs the error and exits with the given code
func fail(code int, err error, msg string) {
	log.Error().Err(err).Msg(msg)
	os.Exit(code)
}
