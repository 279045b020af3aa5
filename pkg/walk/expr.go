package walk

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// Expr parses src with expr-lang and returns every root-to-leaf path.
func Expr(src string, opts ...Option) (Result, error) {
	if strings.TrimSpace(src) == "" {
		return Result{}, ErrEmptySource
	}
	tree, err := parser.Parse(src)
	if err != nil {
		return Result{}, fmt.Errorf("walk: expr parse: %w", err)
	}
	w := newWalker("expr", opts)
	return run(w, exprLabel(tree.Node), tree.Node, exprChildren)
}

func exprLabel(node ast.Node) string {
	switch n := node.(type) {
	case *ast.NilNode:
		return "nil"
	case *ast.IdentifierNode:
		return "ident(" + n.Value + ")"
	case *ast.IntegerNode:
		return "int(" + strconv.Itoa(n.Value) + ")"
	case *ast.FloatNode:
		return "float(" + strconv.FormatFloat(n.Value, 'g', -1, 64) + ")"
	case *ast.BoolNode:
		return "bool(" + strconv.FormatBool(n.Value) + ")"
	case *ast.StringNode:
		return "string(" + strconv.Quote(n.Value) + ")"
	case *ast.UnaryNode:
		return "unary(" + n.Operator + ")"
	case *ast.BinaryNode:
		return "binary(" + n.Operator + ")"
	case *ast.ChainNode:
		return "chain"
	case *ast.MemberNode:
		if n.Optional {
			return "member?"
		}
		return "member"
	case *ast.CallNode:
		return "call"
	case *ast.BuiltinNode:
		return "builtin(" + n.Name + ")"
	case *ast.ConditionalNode:
		return "conditional"
	case *ast.ArrayNode:
		return "array"
	case *ast.MapNode:
		return "map"
	case *ast.PairNode:
		return "pair"
	default:
		return fmt.Sprintf("%T", node)
	}
}

func exprChildren(node ast.Node) []child[ast.Node] {
	var nodes []ast.Node
	switch n := node.(type) {
	case *ast.UnaryNode:
		nodes = []ast.Node{n.Node}
	case *ast.BinaryNode:
		nodes = []ast.Node{n.Left, n.Right}
	case *ast.ChainNode:
		nodes = []ast.Node{n.Node}
	case *ast.MemberNode:
		nodes = []ast.Node{n.Node, n.Property}
	case *ast.CallNode:
		nodes = append([]ast.Node{n.Callee}, n.Arguments...)
	case *ast.BuiltinNode:
		nodes = n.Arguments
	case *ast.ConditionalNode:
		nodes = []ast.Node{n.Cond, n.Exp1, n.Exp2}
	case *ast.ArrayNode:
		nodes = n.Nodes
	case *ast.MapNode:
		nodes = n.Pairs
	case *ast.PairNode:
		nodes = []ast.Node{n.Key, n.Value}
	}
	children := make([]child[ast.Node], 0, len(nodes))
	for _, c := range nodes {
		if c == nil {
			continue
		}
		children = append(children, child[ast.Node]{label: exprLabel(c), node: c})
	}
	return children
}
