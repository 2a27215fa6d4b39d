package queue

import (
	"github.com/ThreeDotsLabs/watermill"
	"go.uber.org/zap"
)

// zapLogger adapts zap to watermill.LoggerAdapter.
type zapLogger struct {
	l *zap.Logger
}

// NewZapLogger returns a watermill logger writing through l.
func NewZapLogger(l *zap.Logger) watermill.LoggerAdapter {
	if l == nil {
		l = zap.NewNop()
	}
	return &zapLogger{l: l}
}

func (z *zapLogger) Error(msg string, err error, fields watermill.LogFields) {
	z.l.Error(msg, append(toZap(fields), zap.Error(err))...)
}

func (z *zapLogger) Info(msg string, fields watermill.LogFields) {
	z.l.Info(msg, toZap(fields)...)
}

func (z *zapLogger) Debug(msg string, fields watermill.LogFields) {
	z.l.Debug(msg, toZap(fields)...)
}

// Trace maps to debug; zap has no lower level.
func (z *zapLogger) Trace(msg string, fields watermill.LogFields) {
	z.l.Debug(msg, toZap(fields)...)
}

func (z *zapLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &zapLogger{l: z.l.With(toZap(fields)...)}
}

func toZap(fields watermill.LogFields) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+1)
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}
