// Package search implements backtracking searches on top of a single
// scopestack.Bottomless buffer. A frame holds the choice made at its depth
// and its slice is the partial solution leading to it.
package search

import (
	"errors"
	"fmt"

	scopestack "github.com/goliatone/go-scopestack"
)

// ErrInvalidSize reports a board size below one.
var ErrInvalidSize = errors.New("search: board size must be positive")

// Option configures a search.
type Option func(*searchConfig)

type searchConfig struct {
	limit     int
	stackOpts []scopestack.Option
}

// WithLimit stops after n solutions. Zero means all solutions.
func WithLimit(n int) Option {
	return func(cfg *searchConfig) {
		if n > 0 {
			cfg.limit = n
		}
	}
}

// WithStackOptions forwards options to the search's Bottomless store.
func WithStackOptions(opts ...scopestack.Option) Option {
	return func(cfg *searchConfig) {
		cfg.stackOpts = append(cfg.stackOpts, opts...)
	}
}

// Queens returns placements for the n-queens problem. Each solution lists the
// column of the queen in every row, row 0 first.
func Queens(n int, opts ...Option) ([][]int, error) {
	var solutions [][]int
	err := queens(n, opts, func(f *scopestack.Frame[int]) bool {
		solutions = append(solutions, f.Slice())
		return true
	})
	if err != nil {
		return nil, err
	}
	return solutions, nil
}

// CountQueens returns the number of n-queens solutions without copying them.
func CountQueens(n int, opts ...Option) (int, error) {
	count := 0
	err := queens(n, opts, func(*scopestack.Frame[int]) bool {
		count++
		return true
	})
	return count, err
}

// errStop unwinds the search once the solution limit is reached.
var errStop = errors.New("search: stop")

func queens(n int, opts []Option, found func(*scopestack.Frame[int]) bool) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	cfg := searchConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	store := scopestack.NewBottomlessWithCapacity[int](n, cfg.stackOpts...)
	solutions := 0

	var place func(f *scopestack.Frame[int]) error
	place = func(f *scopestack.Frame[int]) error {
		if f.Depth() == n-1 {
			solutions++
			if !found(f) || (cfg.limit > 0 && solutions >= cfg.limit) {
				return errStop
			}
			return nil
		}
		for col := 0; col < n; col++ {
			if !safe(f, col) {
				continue
			}
			if err := f.With(col, place); err != nil {
				return err
			}
		}
		return nil
	}

	for col := 0; col < n; col++ {
		err := store.With(col, place)
		if errors.Is(err, errStop) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// safe reports whether a queen in the row below f can go in col.
func safe(f *scopestack.Frame[int], col int) bool {
	row := f.Depth() + 1
	for r, c := range f.All() {
		if c == col || row-r == abs(col-c) {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
