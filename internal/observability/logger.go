package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xclockdac/xclockd/internal/logging"
)

// InitLogger builds the process logger tagged with the app name and
// installs it as the zerolog global. It is the single owner of the global
// level: the config-file level is the baseline and XCLOCKD_LOG_LEVEL
// still wins over it.
func InitLogger(app string, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	zerolog.SetGlobalLevel(logging.LevelFromEnv(level))
	logger := zerolog.New(output).With().Timestamp().Str("app", app).Logger()
	log.Logger = logger
	return logger
}
