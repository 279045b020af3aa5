package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-scopestack/pkg/calc"
	"github.com/spf13/cobra"
)

func newCalcCommand(a *app) *cobra.Command {
	var assignments []string
	cmd := &cobra.Command{
		Use:   "calc EXPRESSION",
		Short: "Evaluate an arithmetic expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vars, err := parseVars(assignments)
			if err != nil {
				return err
			}
			c := calc.New(
				calc.WithMaxDepth(a.v.GetInt("max-depth")),
				calc.WithStackOptions(a.stackOptions("calc")...),
			)
			value, err := c.Eval(args[0], vars)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(value, 'g', -1, 64))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&assignments, "var", nil, "Variable assignment NAME=VALUE (repeatable)")
	cmd.Flags().Int("max-depth", 256, "Maximum operator nesting (0 = unlimited)")
	return cmd
}

func parseVars(assignments []string) (map[string]float64, error) {
	vars := make(map[string]float64, len(assignments))
	for _, assignment := range assignments {
		name, raw, ok := strings.Cut(assignment, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --var %q (expected NAME=VALUE)", assignment)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --var %q: %w", assignment, err)
		}
		vars[name] = value
	}
	return vars, nil
}
