package logging

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger = logrus.New()

type CustomFormatter struct {
	SystemName string
}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	b.WriteString(fmt.Sprintf("Date: %s, Time: %s, ", entry.Time.Format("2006-01-02"), entry.Time.Format("15:04:05")))
	b.WriteString(fmt.Sprintf("Event Source: %s, ", f.SystemName))
	b.WriteString(fmt.Sprintf("Event Type: %s, ", strings.ToUpper(entry.Level.String())))
	b.WriteString(fmt.Sprintf("Event ID: %s, ", uuid.New().String()))
	b.WriteString(fmt.Sprintf("Message: %s", entry.Message))
	b.WriteByte('\n')

	return b.Bytes(), nil
}

// InitLogger configures the package logger: rotating file output (LOG_FILE,
// default logs/server.log), level from LOG_LEVEL. Falls back to stdout when
// the log directory cannot be created.
func InitLogger() {
	logPath := os.Getenv("LOG_FILE")
	if logPath == "" {
		logPath = "logs/server.log"
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		Logger.SetOutput(os.Stdout)
		Logger.Warnf("Failed to create log directory, logging to stdout: %v", err)
	} else {
		Logger.SetOutput(&lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		})
	}

	Logger.SetFormatter(&CustomFormatter{SystemName: "task-tracker-backend"})

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)
}
