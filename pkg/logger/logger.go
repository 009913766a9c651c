package logger

import (
	"context"
	"os"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/instill-ai/detection-backend/config"
)

type ctxKey struct{}

var once sync.Once
var core zapcore.Core

// ParseLevel accepts the level names of the LOG_LEVEL variable. An empty
// value keeps the debug default.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return zapcore.DebugLevel, nil
	case "warning":
		return zapcore.WarnLevel, nil
	case "critical":
		return zapcore.FatalLevel, nil
	}
	return zapcore.ParseLevel(level)
}

func newCore(minLevel zapcore.Level, debug bool) zapcore.Core {
	// debug and info level enabler
	debugInfoLevel := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
		return level >= minLevel && level < zapcore.WarnLevel
	})

	// warn, error and fatal level enabler
	warnErrorFatalLevel := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
		return level >= minLevel && level >= zapcore.WarnLevel
	})

	// write syncers
	stdoutSyncer := zapcore.Lock(os.Stdout)
	stderrSyncer := zapcore.Lock(os.Stderr)

	encoderConfig := zap.NewProductionEncoderConfig()
	if debug {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	return zapcore.NewTee(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			stdoutSyncer,
			debugInfoLevel,
		),
		zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			stderrSyncer,
			warnErrorFatalLevel,
		),
	)
}

// GetZapLogger returns the request-scoped logger stored in ctx, or an
// instance of the process logger configured from config.Config.
func GetZapLogger(ctx context.Context) (*zap.Logger, error) {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
		return l, nil
	}

	var err error
	once.Do(func() {
		var level zapcore.Level
		level, err = ParseLevel(config.Config.Log.Level)
		if err != nil {
			level = zapcore.DebugLevel
		}
		core = newCore(level, config.Config.Server.Debug)
	})

	// finally construct the logger with the tee core
	// and add hooks to inject logs to traces
	logger := zap.New(core).WithOptions(zap.Hooks(TraceHook(ctx)))

	return logger, err
}

// WithLogger returns a copy of ctx carrying l; GetZapLogger(ctx) returns it.
func WithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// TraceHook copies every log entry into the span carried by ctx as a "log"
// event. Error entries also mark the span as failed.
func TraceHook(ctx context.Context) func(zapcore.Entry) error {
	return func(entry zapcore.Entry) error {
		span := trace.SpanFromContext(ctx)
		if !span.IsRecording() {
			return nil
		}

		span.AddEvent("log", trace.WithAttributes(
			attribute.KeyValue{
				Key:   "log.severity",
				Value: attribute.StringValue(entry.Level.String()),
			},
			attribute.KeyValue{
				Key:   "log.message",
				Value: attribute.StringValue(entry.Message),
			},
		))
		if entry.Level >= zap.ErrorLevel {
			span.SetStatus(codes.Error, entry.Message)
		}

		return nil
	}
}
