// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the run logger.
package logging

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// New returns a console logger writing to w. Debug output is enabled only
// when debug is true; otherwise the logger is silent. Every line carries a
// fresh run ID.
func New(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.Disabled
	if debug {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("run", uuid.NewString()).
		Logger()
}
