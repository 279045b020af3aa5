package main

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-scopestack/pkg/search"
	"github.com/spf13/cobra"
)

func newQueensCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queens N",
		Short: "Solve the n-queens problem by backtracking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid board size %q: %w", args[0], err)
			}
			opts := []search.Option{
				search.WithLimit(a.v.GetInt("limit")),
				search.WithStackOptions(a.stackOptions("queens")...),
			}
			out := cmd.OutOrStdout()
			if a.v.GetBool("count") {
				count, err := search.CountQueens(n, opts...)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, count)
				return nil
			}
			solutions, err := search.Queens(n, opts...)
			if err != nil {
				return err
			}
			for _, solution := range solutions {
				fmt.Fprintln(out, solution)
			}
			return nil
		},
	}
	cmd.Flags().Bool("count", false, "Print only the number of solutions")
	cmd.Flags().Int("limit", 0, "Stop after this many solutions (0 = all)")
	return cmd
}
