package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	scopestack "github.com/goliatone/go-scopestack"
	"github.com/goliatone/go-scopestack/pkg/activity"
	"github.com/goliatone/go-scopestack/pkg/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app carries state shared by subcommands after PersistentPreRunE ran.
type app struct {
	v      *viper.Viper
	logger *zap.Logger
	trace  *activity.CaptureHook
}

// stackOptions returns the options every command passes to its stores.
func (a *app) stackOptions(id string) []scopestack.Option {
	opts := []scopestack.Option{scopestack.WithID(id)}
	if a.logger != nil {
		opts = append(opts, scopestack.WithLogger(logging.Zap(a.logger)))
	}
	if a.trace != nil {
		opts = append(opts, scopestack.WithActivityHooks(activity.Hooks{a.trace}))
	}
	return opts
}

func newRootCommand() (*cobra.Command, *app) {
	a := &app{v: viper.New()}
	var configPath string
	cmd := &cobra.Command{
		Use:           "scopestack",
		Short:         "Scoped stack demos: tree paths, arithmetic, backtracking",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindConfig(a.v, cmd, configPath); err != nil {
				return err
			}
			logger, err := logging.NewZap(a.v.GetString("log-level"))
			if err != nil {
				return err
			}
			a.logger = logger
			if a.v.GetBool("trace") {
				a.trace = &activity.CaptureHook{}
			}
			return nil
		},
	}
	cmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, or error")
	cmd.PersistentFlags().Bool("trace", false, "Print a summary of frame events to stderr")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (default: ./scopestack.yaml if present)")

	cmd.AddCommand(newPathsCommand(a))
	cmd.AddCommand(newCalcCommand(a))
	cmd.AddCommand(newQueensCommand(a))
	return cmd, a
}

// finish runs after the command, whether or not it failed: it prints the
// --trace summary to out and flushes the logger.
func (a *app) finish(out io.Writer) {
	if a.trace != nil {
		printTrace(out, a.trace)
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// bindConfig layers flags over SCOPESTACK_* env vars over the config file.
// Flags set explicitly on the command line always win.
func bindConfig(v *viper.Viper, cmd *cobra.Command, explicitPath string) error {
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix("SCOPESTACK")
	v.AutomaticEnv()
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		v.SetConfigName("scopestack")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitPath != "" || !errors.As(err, &notFound) {
			return err
		}
	}
	for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.InheritedFlags()} {
		if err := v.BindPFlags(fs); err != nil {
			return err
		}
	}
	return nil
}

// printTrace writes one line per event verb with its count, in first-seen
// order.
func printTrace(out io.Writer, hook *activity.CaptureHook) {
	counts := map[string]int{}
	var order []string
	for _, verb := range hook.Verbs() {
		if counts[verb] == 0 {
			order = append(order, verb)
		}
		counts[verb]++
	}
	for _, verb := range order {
		fmt.Fprintf(out, "trace %s=%d\n", verb, counts[verb])
	}
}
