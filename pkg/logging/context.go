package logging

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
)

type ctxKey struct{}

// WithContext stores log in ctx for code below the transport layer.
func WithContext(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext returns the logger stored in ctx, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

// Scoped extends the logger carried by ctx with attrs and stores the result
// back, so everything downstream of a request or socket logs the same ids.
func Scoped(ctx context.Context, attrs ...slog.Attr) (context.Context, *slog.Logger) {
	log := FromContext(ctx).With(lo.ToAnySlice(attrs)...)
	return WithContext(ctx, log), log
}
