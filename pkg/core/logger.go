package core

import (
	"log/slog"
	"os"

	"github.com/bdbl/loan-verification-api/pkg/choice"
	slogmulti "github.com/samber/slog-multi"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

func newStdoutHandler(cfg Config) slog.Handler {
	return choice.FuncTernary[slog.Handler](
		cfg.IsProd(),
		func() slog.Handler { return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{}) },
		func() slog.Handler { return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}) },
	)
}

func NewLogger(cfg Config) *slog.Logger {
	stdoutHandler := newStdoutHandler(cfg)
	return slog.New(stdoutHandler)
}

func NewLoggerWithOtel(cfg Config, otel OtelService) *slog.Logger {
	stdoutHandler := newStdoutHandler(cfg)
	otelHandler := otelslog.NewHandler(
		"loan-verification-api",
		otelslog.WithLoggerProvider(otel.LoggerProvider()),
	)

	return slog.New(
		slogmulti.Fanout(
			stdoutHandler,
			otelHandler,
		),
	)
}
