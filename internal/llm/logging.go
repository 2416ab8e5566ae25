package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LoggingProvider is a decorator that logs every request with its purpose,
// latency and token usage.
type LoggingProvider struct {
	inner   Provider
	backend string
	logger  *zap.Logger
}

// WithLogging wraps a Provider with structured request logging.
func WithLogging(p Provider, backend string, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{inner: p, backend: backend, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	fields := []zap.Field{
		zap.String("provider", l.backend),
		zap.String("model", l.inner.ModelID()),
		zap.String("purpose", PurposeFrom(ctx)),
		zap.Bool("structured", req.Schema != nil),
		zap.Int("prompt_chars", promptChars(req)),
		zap.Duration("latency", time.Since(start)),
	}
	if resp != nil {
		fields = append(fields,
			zap.String("served_by", resp.Model),
			zap.Int("input_tokens", resp.Usage.InputTokens),
			zap.Int("output_tokens", resp.Usage.OutputTokens),
			zap.String("stop_reason", resp.StopReason),
		)
	}

	if err != nil {
		l.logger.Warn("llm request failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	l.logger.Info("llm request", fields...)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func promptChars(req Request) int {
	n := len(req.System)
	for _, m := range req.Messages {
		n += len(m.Content)
	}
	return n
}

// timeoutProvider bounds each Generate call with a deadline.
type timeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps p so each call fails once d elapses. A non-positive d
// returns p unchanged.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &timeoutProvider{inner: p, timeout: d}
}

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *timeoutProvider) ModelID() string {
	return t.inner.ModelID()
}
