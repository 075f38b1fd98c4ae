package zap

import (
	"go.uber.org/zap"

	"github.com/IvanBrykalov/localmemcache/memcache"
)

// Logger adapts a *zap.Logger to memcache.Logger.
type Logger struct{ L *zap.Logger }

var _ memcache.Logger = Logger{}

func (z Logger) Debug(msg string, f memcache.Fields) { z.L.Debug(msg, zf(f)...) }
func (z Logger) Info(msg string, f memcache.Fields)  { z.L.Info(msg, zf(f)...) }
func (z Logger) Warn(msg string, f memcache.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z Logger) Error(msg string, f memcache.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f memcache.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
