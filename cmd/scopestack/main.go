// Command scopestack walks expression trees, evaluates arithmetic and solves
// n-queens on top of scoped stacks.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd, a := newRootCommand()
	err := cmd.ExecuteContext(ctx)
	a.finish(cmd.ErrOrStderr())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		cancel()
		os.Exit(1)
	}
}
