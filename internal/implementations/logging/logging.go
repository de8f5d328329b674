package logging

import (
	"context"
	"pms/internal/core/domain/logging"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ZapLogger struct {
	logger *zap.Logger
	sugar  *zap.SugaredLogger
}

func NewZapLogger() *ZapLogger {
	logger, err := zap.NewProduction(zap.AddCallerSkip(1))
	if err != nil {
		panic("Could not create Zap logger.")
	}
	return FromZap(logger)
}

// NewZapDevelopmentLogger writes human readable lines at debug level.
func NewZapDevelopmentLogger() *ZapLogger {
	logger, err := zap.NewDevelopment(zap.AddCallerSkip(1))
	if err != nil {
		panic("Could not create Zap logger.")
	}
	return FromZap(logger)
}

// NewZap picks the development logger when development is set.
func NewZap(development bool) *ZapLogger {
	if development {
		return NewZapDevelopmentLogger()
	}
	return NewZapLogger()
}

func FromZap(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: logger, sugar: logger.Sugar()}
}

func (l *ZapLogger) Sync() {
	l.logger.Sync()
}

func (l *ZapLogger) Debug(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.log(zapcore.DebugLevel, msg, entries)
}

func (l *ZapLogger) Info(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.log(zapcore.InfoLevel, msg, entries)
}

func (l *ZapLogger) Warning(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.log(zapcore.WarnLevel, msg, entries)
}

func (l *ZapLogger) Error(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.log(zapcore.ErrorLevel, msg, entries)
}

func (l *ZapLogger) log(level zapcore.Level, msg string, entries []logging.LogEntry) {
	switch level {
	case zapcore.DebugLevel:
		l.sugar.Debugw(msg, prepareArgs(entries...)...)
	case zapcore.InfoLevel:
		l.sugar.Infow(msg, prepareArgs(entries...)...)
	case zapcore.WarnLevel:
		l.sugar.Warnw(msg, prepareArgs(entries...)...)
	default:
		l.sugar.Errorw(msg, prepareArgs(entries...)...)
	}
}

func prepareArgs(entries ...logging.LogEntry) []interface{} {
	args := make([]interface{}, 0, len(entries)*2)
	for _, e := range entries {
		args = append(args, e.Key, e.Value)
	}
	return args
}
