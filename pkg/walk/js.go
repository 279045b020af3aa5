//go:build js_eval

package walk

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"
)

// ErrJSUnavailable is kept for API parity with builds without js_eval.
var ErrJSUnavailable = errors.New("walk: JavaScript parsing requires the js_eval build tag")

// JS parses src as a JavaScript program with goja and returns every
// root-to-leaf path. Node kinds outside the expression subset below are
// reported as leaves.
func JS(src string, opts ...Option) (Result, error) {
	if strings.TrimSpace(src) == "" {
		return Result{}, ErrEmptySource
	}
	program, err := parser.ParseFile(nil, "", src, 0)
	if err != nil {
		return Result{}, fmt.Errorf("walk: js parse: %w", err)
	}
	w := newWalker("js", opts)
	return run(w, "program", ast.Node(program), jsChildren)
}

// JSAvailable reports whether JS parsing was compiled in.
func JSAvailable() bool {
	return true
}

func jsLabel(node ast.Node) string {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		return "statement"
	case *ast.Identifier:
		return "ident(" + n.Name.String() + ")"
	case *ast.NumberLiteral:
		return "number(" + n.Literal + ")"
	case *ast.StringLiteral:
		return "string(" + n.Literal + ")"
	case *ast.BooleanLiteral:
		return fmt.Sprintf("bool(%t)", n.Value)
	case *ast.NullLiteral:
		return "null"
	case *ast.BinaryExpression:
		return "binary(" + n.Operator.String() + ")"
	case *ast.UnaryExpression:
		return "unary(" + n.Operator.String() + ")"
	case *ast.ConditionalExpression:
		return "conditional"
	case *ast.CallExpression:
		return "call"
	case *ast.DotExpression:
		return "dot(" + n.Identifier.Name.String() + ")"
	case *ast.BracketExpression:
		return "bracket"
	case *ast.ArrayLiteral:
		return "array"
	default:
		return fmt.Sprintf("%T", node)
	}
}

func jsChildren(node ast.Node) []child[ast.Node] {
	var nodes []ast.Node
	switch n := node.(type) {
	case *ast.Program:
		for _, stmt := range n.Body {
			nodes = append(nodes, stmt)
		}
	case *ast.ExpressionStatement:
		nodes = []ast.Node{n.Expression}
	case *ast.BinaryExpression:
		nodes = []ast.Node{n.Left, n.Right}
	case *ast.UnaryExpression:
		nodes = []ast.Node{n.Operand}
	case *ast.ConditionalExpression:
		nodes = []ast.Node{n.Test, n.Consequent, n.Alternate}
	case *ast.CallExpression:
		nodes = append(nodes, n.Callee)
		for _, arg := range n.ArgumentList {
			nodes = append(nodes, arg)
		}
	case *ast.DotExpression:
		nodes = []ast.Node{n.Left}
	case *ast.BracketExpression:
		nodes = []ast.Node{n.Left, n.Member}
	case *ast.ArrayLiteral:
		for _, value := range n.Value {
			if value != nil {
				nodes = append(nodes, value)
			}
		}
	}
	children := make([]child[ast.Node], 0, len(nodes))
	for _, c := range nodes {
		if c == nil {
			continue
		}
		children = append(children, child[ast.Node]{label: jsLabel(c), node: c})
	}
	return children
}
