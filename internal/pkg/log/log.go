package log

import (
	"context"
	"sync"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Logger is the ctx-aware logging interface used by the usecase and
// repository layers. Handlers hold the underlying *otelzap.Logger directly.
type Logger interface {
	Info(ctx context.Context, message string, args ...interface{})
	Warn(ctx context.Context, message string, args ...interface{})
	Error(ctx context.Context, message string, args ...interface{})
}

var (
	global *otelzap.Logger
	once   sync.Once
)

func Setup() *otelzap.Logger {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		zapLogger = zap.NewNop()
	}
	return otelzap.New(zapLogger, otelzap.WithMinLevel(zap.InfoLevel))
}

func SetupLogger() *otelzap.Logger {
	return Setup()
}

func Init(l *otelzap.Logger) {
	once.Do(func() {
		global = l
	})
}

func GetLogger() Logger {
	if global == nil {
		Init(Setup())
	}
	return &logger{z: global}
}

type logger struct {
	z *otelzap.Logger
}

func (l *logger) Info(ctx context.Context, message string, args ...interface{}) {
	l.z.Ctx(ctx).Info(message, fields(args)...)
}

func (l *logger) Warn(ctx context.Context, message string, args ...interface{}) {
	l.z.Ctx(ctx).Warn(message, fields(args)...)
}

func (l *logger) Error(ctx context.Context, message string, args ...interface{}) {
	l.z.Ctx(ctx).Error(message, fields(args)...)
}

func fields(args []interface{}) []zap.Field {
	if len(args) == 0 {
		return nil
	}
	fs := make([]zap.Field, 0, len(args))
	for _, arg := range args {
		fs = append(fs, zap.Any("detail", arg))
	}
	return fs
}
