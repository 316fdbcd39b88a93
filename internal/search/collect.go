package search

import (
	"context"

	"github.com/Paintersrp/kf/internal/query"
	"github.com/Paintersrp/kf/internal/rank"
)

// Collect runs a one-shot search and returns the top results in display
// order along with the traversal stats. A limit of zero or less keeps
// every match.
func (e *Engine) Collect(ctx context.Context, raw string, scope Scope, limit int) ([]rank.Result, Stats, error) {
	s, err := e.Run(ctx, query.Parse(raw), scope)
	if err != nil {
		return nil, Stats{}, err
	}

	top := rank.NewTopK(limit)
	for r := range s.Results() {
		top.Insert(r)
	}
	if err := s.Wait(); err != nil {
		return nil, s.Stats(), err
	}
	return top.Sorted(), s.Stats(), nil
}
