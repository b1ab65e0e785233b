package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Init configures the standard logrus logger from LOG_LEVEL and LOG_FORMAT.
func Init() {
	logrus.SetOutput(os.Stdout)
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func Component(name string) *logrus.Entry {
	return logrus.WithField("component", name)
}

func Room(id string) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{"component": "game", "room": id})
}
