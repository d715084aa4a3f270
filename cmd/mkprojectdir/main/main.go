package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arthur-debert/mkprojectdir/cmd/mkprojectdir"
	"github.com/arthur-debert/mkprojectdir/pkg/errors"
)

// interruptGrace is how long a cancelled command may take to stop on its
// own before the process exits
const interruptGrace = 500 * time.Millisecond

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signals
		cancel()
		// A blocking prompt read does not see the context
		time.Sleep(interruptGrace)
		fmt.Fprintln(os.Stderr)
		os.Exit(0)
	}()

	rootCmd := mkprojectdir.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}

	if ctx.Err() != nil || errors.IsErrorCode(err, errors.ErrCancelled) {
		fmt.Fprintln(os.Stderr)
		os.Exit(0)
	}

	mkprojectdir.PrintError(rootCmd, err)
	os.Exit(1)
}
