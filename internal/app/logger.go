package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskboard/internal/config"
)

var globalLogger zerolog.Logger

// logOutput is stderr so that CLI commands can print results to stdout.
var logOutput io.Writer = os.Stderr

func InitDefaultLogger() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimestampFieldName = "timestamp"

	globalLogger = zerolog.New(logOutput).
		With().
		Timestamp().
		Caller().
		Int("pid", os.Getpid()).
		Logger()

	globalLogger.Debug().Msg("initialized default logger")
}

func MustInitApplicationLogger() {
	cfg := config.Global()

	w := logOutput
	switch cfg.Env {
	case config.EnvDev:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case config.EnvProd:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case config.EnvLocal:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)

		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = logOutput
		w = consoleWriter
	default:
		globalLogger.Error().
			Str("env", cfg.Env).
			Msg("unknown env")
		panic(fmt.Errorf("unknown env: %s", cfg.Env))
	}

	if cfg.Log.Level != "" {
		level, err := zerolog.ParseLevel(cfg.Log.Level)
		if err != nil {
			globalLogger.Error().
				Err(err).
				Str("level", cfg.Log.Level).
				Msg("invalid log level")
			panic(err)
		}
		zerolog.SetGlobalLevel(level)
	}

	globalLogger = globalLogger.Output(w)
	globalLogger.Debug().
		Str("level", zerolog.GlobalLevel().String()).
		Msg("initialized application logger")
}

// componentLogger derives a logger tagged with the component field, so
// lines from a store or driver can be told apart from process logs.
func componentLogger(name string) zerolog.Logger {
	return globalLogger.With().
		Str("component", name).
		Logger()
}
