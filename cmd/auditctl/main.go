// Command auditctl inspects and verifies the audit ledger from the shell.
//
// Exit codes: 0 = success (chain intact), 1 = error, 2 = chain broken.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd(defaultDeps()).ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errChainBroken):
		return 2
	default:
		fmt.Fprintln(os.Stderr, "auditctl:", err)
		return 1
	}
}
