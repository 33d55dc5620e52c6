package museum

import (
	"context"
)

// FetchFunc loads up to n items.
type FetchFunc func(ctx context.Context, n int) ([]Item, error)

// SupplementFunc produces exactly remaining items from a local source.
type SupplementFunc func(ctx context.Context, remaining int) []Item

// Strategy is the two-stage load used for every collection: run Primary, and
// when it yields fewer than requested, top up from Supplement.
type Strategy struct {
	Primary    FetchFunc
	Supplement SupplementFunc
}

// Run returns at most n items. The primary error is returned alongside the
// supplemented result so the caller can log it; the items are usable either
// way.
func (s Strategy) Run(ctx context.Context, n int) ([]Item, error) {
	if n <= 0 {
		return []Item{}, nil
	}

	var (
		items []Item
		err   error
	)
	if s.Primary != nil {
		items, err = s.Primary(ctx, n)
	}
	if len(items) > n {
		items = items[:n]
	}

	if remaining := n - len(items); remaining > 0 && s.Supplement != nil && ctx.Err() == nil {
		items = append(items, s.Supplement(ctx, remaining)...)
	}
	if len(items) > n {
		items = items[:n]
	}
	if items == nil {
		items = []Item{}
	}
	return items, err
}
