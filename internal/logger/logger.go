package logger

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
)

// New creates a new slog.Logger writing to w.
// Kubernetes/Production: JSONHandler (structured logging for log aggregation)
// Local development: TextHandler with colored ERROR messages
func New(env string, w io.Writer) *slog.Logger {
	_, inK8s := os.LookupEnv("KUBERNETES_SERVICE_HOST")

	useJSON := inK8s || env == "prod" || env == "dev"

	var handler slog.Handler
	if useJSON {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: true,
		})
	} else {
		handler = newColorTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}
	return slog.New(handler)
}

// NewWithServiceContext writes to stderr; stdout carries the report.
func NewWithServiceContext(serviceName, version, env string) *slog.Logger {
	return New(env, os.Stderr).With(
		slog.String("service", serviceName),
		slog.String("version", version),
		slog.String("environment", env),
	)
}

const (
	colorRed   = "\x1b[31m"
	colorReset = "\x1b[0m"
)

// colorTextHandler renders ERROR records through a second TextHandler whose
// writer wraps each line in red.
type colorTextHandler struct {
	plain   slog.Handler
	colored slog.Handler
}

func newColorTextHandler(w io.Writer, opts *slog.HandlerOptions) *colorTextHandler {
	return &colorTextHandler{
		plain:   slog.NewTextHandler(w, opts),
		colored: slog.NewTextHandler(&colorWriter{w: w}, opts),
	}
}

func (h *colorTextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.plain.Enabled(ctx, level)
}

func (h *colorTextHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return h.colored.Handle(ctx, r)
	}
	return h.plain.Handle(ctx, r)
}

func (h *colorTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &colorTextHandler{
		plain:   h.plain.WithAttrs(attrs),
		colored: h.colored.WithAttrs(attrs),
	}
}

func (h *colorTextHandler) WithGroup(name string) slog.Handler {
	return &colorTextHandler{
		plain:   h.plain.WithGroup(name),
		colored: h.colored.WithGroup(name),
	}
}

// colorWriter relies on TextHandler emitting one record per Write.
type colorWriter struct {
	w io.Writer
}

func (cw *colorWriter) Write(p []byte) (int, error) {
	line := bytes.TrimSuffix(p, []byte("\n"))

	buf := make([]byte, 0, len(line)+len(colorRed)+len(colorReset)+1)
	buf = append(buf, colorRed...)
	buf = append(buf, line...)
	buf = append(buf, colorReset...)
	buf = append(buf, '\n')

	if _, err := cw.w.Write(buf); err != nil {
		return 0, err
	}
	return len(p), nil
}
