package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/IvanBrykalov/localmemcache/memcache"
)

// Logger adapts a *logrus.Entry to memcache.Logger.
type Logger struct{ E *logrus.Entry }

var _ memcache.Logger = Logger{}

func (l Logger) Debug(msg string, f memcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
func (l Logger) Info(msg string, f memcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Info(msg)
}
func (l Logger) Warn(msg string, f memcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Warn(msg)
}
func (l Logger) Error(msg string, f memcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
