package client

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type logContextKey string

const loggerKey = logContextKey("logger")

// loggingTransport tags each outbound request with a correlation id and
// logs it before and after the round trip.
type loggingTransport struct {
	base http.RoundTripper
}

func newLoggingTransport(base http.RoundTripper) *loggingTransport {
	return &loggingTransport{base: base}
}

func (t *loggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {

	start := time.Now()

	// Correlation ID
	correlationID := r.Header.Get("X-Request-ID")
	if correlationID == "" {
		correlationID = uuid.NewString()
		r = r.Clone(r.Context())
		r.Header.Set("X-Request-ID", correlationID)
	}

	// Request-scoped logger, every log line would contain these fields
	requestLogger := LoggerFromContext(r.Context()).With(
		slog.String("correlation_id", correlationID),
		slog.String("http_method", r.Method),
		slog.String("http_url", r.URL.Redacted()),
	)

	requestLogger.Debug("Outgoing request")

	resp, err := t.base.RoundTrip(r)
	if err != nil {
		requestLogger.Warn("Request failed", slog.String("error", err.Error()), slog.Duration("duration", time.Since(start)))
		return nil, err
	}

	requestLogger.Info("Request completed", slog.Int("http_status", resp.StatusCode), slog.Duration("duration", time.Since(start)))

	return resp, nil
}

// WithLogger attaches a logger that every request made with ctx will log through.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func LoggerFromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}

	return slog.Default()
}
