package walk

import (
	"fmt"
	"strings"

	celgo "github.com/google/cel-go/cel"
	celast "github.com/google/cel-go/common/ast"
)

// CEL parses src as a Common Expression Language expression and returns every
// root-to-leaf path. Macros such as all() or exists() appear in their
// expanded comprehension form.
func CEL(src string, opts ...Option) (Result, error) {
	if strings.TrimSpace(src) == "" {
		return Result{}, ErrEmptySource
	}
	env, err := celgo.NewEnv()
	if err != nil {
		return Result{}, fmt.Errorf("walk: cel env: %w", err)
	}
	parsed, iss := env.Parse(src)
	if iss != nil && iss.Err() != nil {
		return Result{}, fmt.Errorf("walk: cel parse: %w", iss.Err())
	}
	root := parsed.NativeRep().Expr()
	w := newWalker("cel", opts)
	return run(w, celLabel(root), root, celChildren)
}

func celLabel(expr celast.Expr) string {
	switch expr.Kind() {
	case celast.CallKind:
		call := expr.AsCall()
		return "call(" + strings.Trim(call.FunctionName(), "_") + ")"
	case celast.IdentKind:
		return "ident(" + expr.AsIdent() + ")"
	case celast.LiteralKind:
		return fmt.Sprintf("literal(%v)", expr.AsLiteral().Value())
	case celast.SelectKind:
		return "select(" + expr.AsSelect().FieldName() + ")"
	case celast.ListKind:
		return "list"
	case celast.MapKind:
		return "map"
	case celast.StructKind:
		return "struct(" + expr.AsStruct().TypeName() + ")"
	case celast.ComprehensionKind:
		return "comprehension(" + expr.AsComprehension().IterVar() + ")"
	default:
		return "unspecified"
	}
}

func celChildren(expr celast.Expr) []child[celast.Expr] {
	var nodes []celast.Expr
	switch expr.Kind() {
	case celast.CallKind:
		call := expr.AsCall()
		if call.IsMemberFunction() {
			nodes = append(nodes, call.Target())
		}
		nodes = append(nodes, call.Args()...)
	case celast.SelectKind:
		nodes = []celast.Expr{expr.AsSelect().Operand()}
	case celast.ListKind:
		nodes = expr.AsList().Elements()
	case celast.MapKind:
		for _, entry := range expr.AsMap().Entries() {
			e := entry.AsMapEntry()
			nodes = append(nodes, e.Key(), e.Value())
		}
	case celast.StructKind:
		for _, field := range expr.AsStruct().Fields() {
			nodes = append(nodes, field.AsStructField().Value())
		}
	case celast.ComprehensionKind:
		comp := expr.AsComprehension()
		nodes = []celast.Expr{comp.IterRange(), comp.AccuInit(), comp.LoopCondition(), comp.LoopStep(), comp.Result()}
	}
	children := make([]child[celast.Expr], 0, len(nodes))
	for _, c := range nodes {
		if c == nil || c.Kind() == celast.UnspecifiedExprKind {
			continue
		}
		children = append(children, child[celast.Expr]{label: celLabel(c), node: c})
	}
	return children
}
