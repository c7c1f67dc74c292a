// Package fallback runs an ordered list of acquisition strategies and keeps the
// first one that yields data.
package fallback

import (
	"context"
	"errors"
	"fmt"
)

// ErrExhausted is returned when every strategy produced no items.
var ErrExhausted = errors.New("all strategies returned no items")

// StrategyFunc produces items for in. An empty slice with a nil error counts as a miss.
type StrategyFunc[In, Out any] func(ctx context.Context, in In) ([]Out, error)

// Strategy is a named rung of the ladder.
type Strategy[In, Out any] struct {
	Name string
	Fn   StrategyFunc[In, Out]
}

// Attempt records how one strategy went.
type Attempt struct {
	Strategy string
	Items    int
	Err      error
}

// Result carries the winning items and the attempts made to get them.
type Result[Out any] struct {
	Items    []Out
	Strategy string
	Attempts []Attempt
}

// FailureFunc observes a strategy that errored or came back empty.
type FailureFunc func(strategy string, err error)

// Ladder tries strategies sequentially, stopping at the first non-empty result.
type Ladder[In, Out any] struct {
	strategies []Strategy[In, Out]
	onFailure  FailureFunc
}

// New builds a ladder; nil strategy funcs are skipped.
func New[In, Out any](strategies ...Strategy[In, Out]) *Ladder[In, Out] {
	l := &Ladder[In, Out]{}
	for _, s := range strategies {
		if s.Fn == nil {
			continue
		}
		l.strategies = append(l.strategies, s)
	}
	return l
}

// OnFailure registers a hook called for every failed rung.
func (l *Ladder[In, Out]) OnFailure(fn FailureFunc) *Ladder[In, Out] {
	l.onFailure = fn
	return l
}

// Len returns the number of strategies.
func (l *Ladder[In, Out]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.strategies)
}

// Run executes the ladder. Strategy errors are absorbed; only a cancelled
// context or total exhaustion is reported.
func (l *Ladder[In, Out]) Run(ctx context.Context, in In) (Result[Out], error) {
	var res Result[Out]
	if l == nil {
		return res, ErrExhausted
	}

	for _, s := range l.strategies {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("ladder interrupted before %s: %w", s.Name, err)
		}

		items, err := s.Fn(ctx, in)
		res.Attempts = append(res.Attempts, Attempt{Strategy: s.Name, Items: len(items), Err: err})
		if err == nil && len(items) > 0 {
			res.Items = items
			res.Strategy = s.Name
			return res, nil
		}

		if l.onFailure != nil {
			if err == nil {
				err = errors.New("no items")
			}
			l.onFailure(s.Name, err)
		}
	}

	return res, ErrExhausted
}
