// Package calc evaluates numeric expressions written in expr-lang syntax.
//
// Evaluation is recursive over the parsed tree. Every operator or call node
// keeps its partially evaluated operands in its own slot of a single
// scopestack.Stack, so deep expressions reuse one buffer and an error at any
// depth unwinds the slots it passes through.
package calc

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/conf"
	"github.com/expr-lang/expr/parser"
	scopestack "github.com/goliatone/go-scopestack"
)

var (
	ErrEmptyExpression = errors.New("calc: expression must not be empty")
	ErrUnknownVariable = errors.New("calc: unknown variable")
	ErrUnknownFunction = errors.New("calc: unknown function")
	ErrUnsupported     = errors.New("calc: unsupported expression")
	ErrDivisionByZero  = errors.New("calc: division by zero")
	ErrTooDeep         = errors.New("calc: expression nesting too deep")
)

// slot holds what an operator or call node has evaluated so far.
type slot struct {
	left float64
	args []float64
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithFunctions replaces the function registry. The registry is cloned.
func WithFunctions(registry *FunctionRegistry) Option {
	return func(c *Calculator) {
		if registry == nil {
			return
		}
		c.registry = registry.Clone()
	}
}

// WithFunction registers fn under name on top of the current registry,
// replacing a function already registered under that name. An invalid name or
// nil fn makes every Eval fail.
func WithFunction(name string, fn Function) Option {
	return func(c *Calculator) {
		if err := c.registry.Set(name, fn); err != nil {
			c.err = errors.Join(c.err, err)
		}
	}
}

// WithCache caches parsed trees by source text.
func WithCache(cache Cache) Option {
	return func(c *Calculator) {
		c.cache = cache
	}
}

// WithMaxDepth bounds the number of simultaneously open operator frames.
// Zero disables the limit.
func WithMaxDepth(depth int) Option {
	return func(c *Calculator) {
		if depth >= 0 {
			c.maxDepth = depth
		}
	}
}

// WithStackOptions forwards options to the operand stack.
func WithStackOptions(opts ...scopestack.Option) Option {
	return func(c *Calculator) {
		c.stackOpts = append(c.stackOpts, opts...)
	}
}

// Calculator evaluates expressions. It reuses one operand stack across calls
// and is not safe for concurrent use.
type Calculator struct {
	stack     *scopestack.Stack[slot]
	stackOpts []scopestack.Option
	registry  *FunctionRegistry
	parseConf *conf.Config
	cache     Cache
	maxDepth  int
	err       error
}

// New constructs a Calculator with the default functions.
func New(opts ...Option) *Calculator {
	c := &Calculator{registry: DefaultFunctions()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.stack = scopestack.NewStackWithCapacity[slot](16, c.stackOpts...)
	c.parseConf = parseConfig(c.registry)
	return c
}

// parseConfig marks every registered name as an expr function so calls to
// it parse as plain CallNodes, even when expr has a builtin of that name.
// Builtins nobody registered still parse and fail with ErrUnknownFunction.
func parseConfig(registry *FunctionRegistry) *conf.Config {
	cfg := conf.New(nil)
	for _, name := range registry.Names() {
		expr.Function(name, func(...any) (any, error) {
			return nil, fmt.Errorf("%w: %q is evaluated by calc", ErrUnsupported, name)
		})(cfg)
	}
	return cfg
}

// Eval parses and evaluates src. vars supplies identifier values.
func (c *Calculator) Eval(src string, vars map[string]float64) (float64, error) {
	if c.err != nil {
		return 0, fmt.Errorf("calc: configure: %w", c.err)
	}
	if strings.TrimSpace(src) == "" {
		return 0, ErrEmptyExpression
	}
	node, err := c.parse(src)
	if err != nil {
		return 0, err
	}
	value, err := c.eval(node, vars)
	if err != nil {
		return 0, fmt.Errorf("calc: eval %q: %w", src, err)
	}
	return value, nil
}

// Depth returns the number of open operator frames. It is zero between calls.
func (c *Calculator) Depth() int {
	return c.stack.Len()
}

func (c *Calculator) parse(src string) (ast.Node, error) {
	if c.cache != nil {
		if cached, ok := c.cache.Get(src); ok {
			if node, ok := cached.(ast.Node); ok {
				return node, nil
			}
		}
	}
	tree, err := parser.ParseWithConfig(src, c.parseConf)
	if err != nil {
		return nil, fmt.Errorf("calc: parse %q: %w", src, err)
	}
	if c.cache != nil {
		c.cache.Set(src, tree.Node)
	}
	return tree.Node, nil
}

func (c *Calculator) push() (*scopestack.Element[slot], error) {
	if c.maxDepth > 0 && c.stack.Len() >= c.maxDepth {
		return nil, fmt.Errorf("%w: limit %d", ErrTooDeep, c.maxDepth)
	}
	return c.stack.Push(slot{}), nil
}

func (c *Calculator) eval(node ast.Node, vars map[string]float64) (float64, error) {
	switch n := node.(type) {
	case *ast.IntegerNode:
		return float64(n.Value), nil
	case *ast.FloatNode:
		return n.Value, nil
	case *ast.IdentifierNode:
		value, ok := vars[n.Value]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownVariable, n.Value)
		}
		return value, nil
	case *ast.UnaryNode:
		value, err := c.eval(n.Node, vars)
		if err != nil {
			return 0, err
		}
		switch n.Operator {
		case "-":
			return -value, nil
		case "+":
			return value, nil
		}
		return 0, fmt.Errorf("%w: unary operator %q", ErrUnsupported, n.Operator)
	case *ast.BinaryNode:
		return c.binary(n, vars)
	case *ast.CallNode:
		callee, ok := n.Callee.(*ast.IdentifierNode)
		if !ok {
			return 0, fmt.Errorf("%w: call target %s", ErrUnsupported, n.Callee.String())
		}
		return c.call(callee.Value, n.Arguments, vars)
	case *ast.BuiltinNode:
		return c.call(n.Name, n.Arguments, vars)
	default:
		return 0, fmt.Errorf("%w: %T", ErrUnsupported, node)
	}
}

func (c *Calculator) binary(n *ast.BinaryNode, vars map[string]float64) (float64, error) {
	frame, err := c.push()
	if err != nil {
		return 0, err
	}
	defer frame.Release()

	left, err := c.eval(n.Left, vars)
	if err != nil {
		return 0, err
	}
	frame.Set(slot{left: left})

	right, err := c.eval(n.Right, vars)
	if err != nil {
		return 0, err
	}
	return apply(n.Operator, frame.Pop().left, right)
}

func (c *Calculator) call(name string, arguments []ast.Node, vars map[string]float64) (float64, error) {
	frame, err := c.push()
	if err != nil {
		return 0, err
	}
	defer frame.Release()

	frame.Set(slot{args: make([]float64, 0, len(arguments))})
	for _, arg := range arguments {
		value, err := c.eval(arg, vars)
		if err != nil {
			return 0, err
		}
		// Re-read the pointer: nested pushes may have moved the slot.
		top := frame.TopPtr()
		top.args = append(top.args, value)
	}
	return c.registry.Call(name, frame.Pop().args...)
}

func apply(operator string, left, right float64) (float64, error) {
	switch operator {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		return left / right, nil
	case "%":
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		return math.Mod(left, right), nil
	case "**", "^":
		return math.Pow(left, right), nil
	default:
		return 0, fmt.Errorf("%w: operator %q", ErrUnsupported, operator)
	}
}
