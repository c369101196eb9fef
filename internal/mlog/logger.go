// Package mlog holds the process-wide logger. The codec only emits
// diagnostics (e.g. trailing bytes after a decoded message); the default
// level suppresses them.
package mlog

import (
	"os"
	"strconv"

	"github.com/rs/zerolog"
)

var l = initLogger()

func initLogger() zerolog.Logger {
	var out zerolog.LevelWriter
	if ok, _ := strconv.ParseBool(os.Getenv("DNSMSG_JSONLOGGER")); ok {
		out = zerolog.MultiLevelWriter(os.Stderr)
	} else {
		out = zerolog.MultiLevelWriter(zerolog.NewConsoleWriter())
	}

	lvl := zerolog.WarnLevel
	if s := os.Getenv("DNSMSG_LOG_LVL"); len(s) > 0 {
		if parsed, err := zerolog.ParseLevel(s); err == nil {
			lvl = parsed
		}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

func L() *zerolog.Logger {
	return &l
}
