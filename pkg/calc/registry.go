package calc

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
)

// Function is a numeric function callable from expressions.
type Function func(args ...float64) (float64, error)

// FunctionRegistry stores functions keyed by case-insensitive name.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions: make(map[string]Function),
	}
}

// DefaultFunctions returns a registry holding abs, ceil, floor, max, min, pow
// and sqrt.
func DefaultFunctions() *FunctionRegistry {
	r := NewFunctionRegistry()
	_ = r.Register("abs", unary(math.Abs))
	_ = r.Register("ceil", unary(math.Ceil))
	_ = r.Register("floor", unary(math.Floor))
	_ = r.Register("sqrt", func(args ...float64) (float64, error) {
		if err := arity("sqrt", args, 1); err != nil {
			return 0, err
		}
		if args[0] < 0 {
			return 0, fmt.Errorf("calc: sqrt of negative value %g", args[0])
		}
		return math.Sqrt(args[0]), nil
	})
	_ = r.Register("pow", func(args ...float64) (float64, error) {
		if err := arity("pow", args, 2); err != nil {
			return 0, err
		}
		return math.Pow(args[0], args[1]), nil
	})
	_ = r.Register("max", fold("max", math.Max))
	_ = r.Register("min", fold("min", math.Min))
	return r
}

// Register stores fn under name guarding against duplicates.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if fn == nil {
		return fmt.Errorf("calc: function %q is nil", name)
	}
	if name == "" {
		return fmt.Errorf("calc: function name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]Function)
	}
	key := strings.ToLower(name)
	if _, exists := r.functions[key]; exists {
		return fmt.Errorf("calc: function %q already registered", name)
	}
	r.functions[key] = fn
	return nil
}

// Set stores fn under name, replacing any function already registered there.
func (r *FunctionRegistry) Set(name string, fn Function) error {
	if fn == nil {
		return fmt.Errorf("calc: function %q is nil", name)
	}
	if name == "" {
		return fmt.Errorf("calc: function name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]Function)
	}
	r.functions[strings.ToLower(name)] = fn
	return nil
}

// Clone returns a shallow copy of the registry.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{
		functions: make(map[string]Function, len(r.functions)),
	}
	for name, fn := range r.functions {
		clone.functions[name] = fn
	}
	return clone
}

// Call executes the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...float64) (float64, error) {
	if r == nil {
		return 0, fmt.Errorf("calc: function registry is nil")
	}
	r.mu.RLock()
	fn := r.functions[strings.ToLower(name)]
	r.mu.RUnlock()
	if fn == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
	return fn(args...)
}

// Names returns registered function names sorted alphabetically.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func arity(name string, args []float64, want int) error {
	if len(args) != want {
		return fmt.Errorf("calc: %s expects %d argument(s), got %d", name, want, len(args))
	}
	return nil
}

func unary(fn func(float64) float64) Function {
	return func(args ...float64) (float64, error) {
		if len(args) != 1 {
			return 0, fmt.Errorf("calc: expected 1 argument, got %d", len(args))
		}
		return fn(args[0]), nil
	}
}

func fold(name string, fn func(a, b float64) float64) Function {
	return func(args ...float64) (float64, error) {
		if len(args) == 0 {
			return 0, fmt.Errorf("calc: %s expects at least 1 argument", name)
		}
		acc := args[0]
		for _, v := range args[1:] {
			acc = fn(acc, v)
		}
		return acc, nil
	}
}
