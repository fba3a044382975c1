package connector

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/domain"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/logging"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/providers"
)

type outcome int

const (
	outcomeOK outcome = iota
	outcomeEmpty
	outcomeFailed
)

func (o outcome) String() string {
	switch o {
	case outcomeOK:
		return "ok"
	case outcomeEmpty:
		return "empty"
	default:
		return "failed"
	}
}

// attempt is the result of asking one provider.
type attempt[T any] struct {
	source  domain.Source
	value   T
	outcome outcome
	kind    providers.ErrorKind
	err     error
}

// run walks the chain and returns the first ok value. Every provider that fails or
// comes back empty produces exactly one warning before the next is tried.
func run[T any](ctx context.Context, c *Connector, operation string, pinned domain.Source, fetch func(context.Context, providers.DataProvider) (T, error), empty func(T) bool) T {
	logger := logging.FromContext(ctx, c.logger)
	chain := c.chain(pinned)
	if len(chain) == 0 {
		logging.Warn(logger, "no provider for source",
			slog.String(logging.FieldOperation, operation),
			slog.String(logging.FieldProvider, string(pinned)),
		)
	}

	for _, p := range chain {
		a := try(ctx, c, p, fetch, empty)
		if a.outcome == outcomeOK {
			return a.value
		}
		logging.Warn(logger, "provider attempt "+a.outcome.String(),
			slog.String(logging.FieldOperation, operation),
			slog.String(logging.FieldProvider, string(a.source)),
			slog.String(logging.FieldErrorKind, string(a.kind)),
			slog.Any("err", a.err),
		)
		c.metrics.RecordFallback(operation, string(a.source), string(a.kind))
		if ctx.Err() != nil {
			break
		}
	}

	c.metrics.RecordExhausted(operation)
	logging.Info(logger, "no provider returned data", slog.String(logging.FieldOperation, operation))
	var zero T
	return zero
}

func try[T any](ctx context.Context, c *Connector, p providers.DataProvider, fetch func(context.Context, providers.DataProvider) (T, error), empty func(T) bool) attempt[T] {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	a := attempt[T]{source: p.Source()}
	a.value, a.err = fetch(ctx, p)
	switch {
	case a.err != nil:
		a.kind = providers.KindOf(a.err)
		a.outcome = outcomeFailed
		if a.kind == providers.KindEmpty {
			a.outcome = outcomeEmpty
		}
	case empty(a.value):
		a.kind = providers.KindEmpty
		a.outcome = outcomeEmpty
	default:
		a.outcome = outcomeOK
	}
	return a
}

func isEmptySlice[E any](items []E) bool {
	return len(items) == 0
}

type validator interface {
	Validate() error
}

// keepValid drops entities that break domain invariants.
func keepValid[E validator](items []E) []E {
	out := items[:0:0]
	for _, item := range items {
		if item.Validate() == nil {
			out = append(out, item)
		}
	}
	return out
}
