package logging

import (
	"io"
	"os"

	"github.com/drewfoos/rift-stats/internal/config"
	"github.com/sirupsen/logrus"
)

// New builds the process logger from the config.
// Lambda collects stdout, so JSON lines are used there regardless of LogFormat.
func New(cfg *config.Config, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.LogFormat == "json" || onLambda() {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}

func onLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}
