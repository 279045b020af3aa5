package main

import (
	"fmt"

	"github.com/goliatone/go-scopestack/pkg/walk"
	"github.com/spf13/cobra"
)

func newPathsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths EXPRESSION",
		Short: "Print every root-to-leaf path of a parsed expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []walk.Option{
				walk.WithMaxPaths(a.v.GetInt("max")),
				walk.WithStackOptions(a.stackOptions("paths")...),
			}
			var (
				result walk.Result
				err    error
			)
			switch lang := a.v.GetString("lang"); lang {
			case "expr", "":
				result, err = walk.Expr(args[0], opts...)
			case "cel":
				result, err = walk.CEL(args[0], opts...)
			case "js":
				result, err = walk.JS(args[0], opts...)
			default:
				return fmt.Errorf("unknown language %q (expected expr, cel, or js)", lang)
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range result.Paths {
				fmt.Fprintln(out, p.String())
			}
			fmt.Fprintf(out, "paths=%d max_depth=%d\n", result.Stats.Paths, result.Stats.MaxDepth)
			return nil
		},
	}
	cmd.Flags().String("lang", "expr", "Expression language: expr, cel, or js")
	cmd.Flags().Int("max", 0, "Stop after this many paths (0 = all)")
	return cmd
}
