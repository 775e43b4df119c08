// Package zap adapts a go.uber.org/zap logger to bitwire.Logger.
package zap

import (
	"sort"

	"go.uber.org/zap"

	"github.com/unkn0wn-root/bitwire"
)

type Logger struct{ L *zap.Logger }

var _ bitwire.Logger = Logger{}

// New wraps l, skipping the adapter frame in caller annotations. A nil l
// discards everything.
func New(l *zap.Logger) Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return Logger{L: l.WithOptions(zap.AddCallerSkip(1))}
}

func (z Logger) Debug(msg string, f bitwire.Fields) { z.L.Debug(msg, fields(f)...) }
func (z Logger) Info(msg string, f bitwire.Fields)  { z.L.Info(msg, fields(f)...) }
func (z Logger) Warn(msg string, f bitwire.Fields)  { z.L.Warn(msg, fields(f)...) }
func (z Logger) Error(msg string, f bitwire.Fields) { z.L.Error(msg, fields(f)...) }

// fields sorts keys so output is stable across runs.
func fields(f bitwire.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(f))
	for _, k := range keys {
		out = append(out, zap.Any(k, f[k]))
	}
	return out
}
