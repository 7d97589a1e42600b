package app

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/adanyl0v/taskboard/internal/config"
)

func MustReadEnv() {
	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to read env")
		panic(err)
	}
	globalLogger.Debug().
		Str("env", cfg.Env).
		Str("backend_driver", cfg.Backend.Driver).
		Msg("read env")

	config.SetGlobal(cfg)
}
