// Package walk enumerates root-to-leaf paths through parsed expression trees.
// Each traversal runs on a single scopestack.Bottomless buffer; a frame's
// slice is the ancestor chain of the node it represents.
package walk

import (
	"errors"
	"fmt"
	"strings"

	scopestack "github.com/goliatone/go-scopestack"
)

// ErrEmptySource reports an empty expression.
var ErrEmptySource = errors.New("walk: expression must not be empty")

// Path is the chain of node labels from the root to one leaf.
type Path struct {
	Nodes []string
}

// String joins the labels with " > ".
func (p Path) String() string {
	return strings.Join(p.Nodes, " > ")
}

// Leaf returns the last label of the path.
func (p Path) Leaf() string {
	if len(p.Nodes) == 0 {
		return ""
	}
	return p.Nodes[len(p.Nodes)-1]
}

// Stats summarises a traversal.
type Stats struct {
	Paths    int
	MaxDepth int
}

// Result is the output of a traversal.
type Result struct {
	Language string
	Paths    []Path
	Stats    Stats
}

// Option configures a traversal.
type Option func(*walker)

// WithStackOptions forwards options to the traversal's Bottomless store, for
// example a logger or activity hooks.
func WithStackOptions(opts ...scopestack.Option) Option {
	return func(w *walker) {
		w.stackOpts = append(w.stackOpts, opts...)
	}
}

// WithMaxPaths stops collecting once n paths were recorded. Zero means no
// limit.
func WithMaxPaths(n int) Option {
	return func(w *walker) {
		if n > 0 {
			w.maxPaths = n
		}
	}
}

// walker holds the traversal state shared by every language. children
// returns the labelled children of a node; leaf nodes return none.
type walker struct {
	stackOpts []scopestack.Option
	maxPaths  int
	result    Result
}

type child[N any] struct {
	label string
	node  N
}

func newWalker(language string, opts []Option) *walker {
	w := &walker{result: Result{Language: language}}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

func (w *walker) full() bool {
	return w.maxPaths > 0 && len(w.result.Paths) >= w.maxPaths
}

func (w *walker) record(f *scopestack.Frame[string]) {
	depth := f.Depth() + 1
	if depth > w.result.Stats.MaxDepth {
		w.result.Stats.MaxDepth = depth
	}
	if w.full() {
		return
	}
	w.result.Paths = append(w.result.Paths, Path{Nodes: f.Slice()})
	w.result.Stats.Paths = len(w.result.Paths)
}

// run drives a depth-first traversal from root using expand to discover
// children.
func run[N any](w *walker, rootLabel string, root N, expand func(N) []child[N]) (Result, error) {
	store := scopestack.NewBottomless[string](w.stackOpts...)
	var visit func(f *scopestack.Frame[string], node N) error
	visit = func(f *scopestack.Frame[string], node N) error {
		children := expand(node)
		if len(children) == 0 {
			w.record(f)
			return nil
		}
		for _, c := range children {
			if w.full() {
				return nil
			}
			if err := f.With(c.label, func(cf *scopestack.Frame[string]) error {
				return visit(cf, c.node)
			}); err != nil {
				return err
			}
		}
		return nil
	}
	if err := store.With(rootLabel, func(f *scopestack.Frame[string]) error {
		return visit(f, root)
	}); err != nil {
		return Result{}, err
	}
	if store.Len() != 0 {
		return Result{}, fmt.Errorf("walk: store left with %d frames", store.Len())
	}
	return w.result, nil
}
