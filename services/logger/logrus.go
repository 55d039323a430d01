package logsvc

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/walimuhq/walimu/core"
)

// LogrusLogger adapts logrus to the core.Logger contract.
type LogrusLogger struct {
	log *logrus.Logger
}

var _ core.Logger = (*LogrusLogger)(nil)

func NewLogrusLogger(conf *core.Config) *LogrusLogger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if conf.Debug {
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	}
	return &LogrusLogger{log: log}
}

// expected args fmt: error, map[string]interface{}, ...
func (l *LogrusLogger) entry(args []interface{}) *logrus.Entry {
	entry := logrus.NewEntry(l.log)
	for _, arg := range args {
		switch v := arg.(type) {
		case error:
			entry = entry.WithError(v)
		case map[string]interface{}:
			entry = entry.WithFields(v)
		default:
			entry = entry.WithField("detail", v)
		}
	}
	return entry
}

func (l *LogrusLogger) Debug(msg string, args ...interface{}) { l.entry(args).Debug(msg) }
func (l *LogrusLogger) Info(msg string, args ...interface{})  { l.entry(args).Info(msg) }
func (l *LogrusLogger) Warn(msg string, args ...interface{})  { l.entry(args).Warn(msg) }
func (l *LogrusLogger) Error(msg string, args ...interface{}) { l.entry(args).Error(msg) }
func (l *LogrusLogger) Fatal(msg string, args ...interface{}) { l.entry(args).Fatal(msg) }
