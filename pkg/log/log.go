package log

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// Tests import packages that log without going through main, so the logger
// must be usable before InitLogger is called explicitly.
func init() {
	InitLogger(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
}

// InitLogger (re)configures the global logger. Production uses JSON output,
// everything else the text formatter.
func InitLogger(env, level string) {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)

	if env == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	Log = logger.WithFields(logrus.Fields{
		"service":        "scriblyn-api",
		"is_development": env != "production",
	})
}
