package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/basel-ax/imagegen/internal/cli"
	"github.com/basel-ax/imagegen/internal/logx"
)

func main() {
	ctx, stop := withSignalCancel(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// withSignalCancel returns a context that is cancelled when one of sigs arrives.
// stop releases the signal handler and cancels the context.
func withSignalCancel(parent context.Context, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	// Create context with cancellation
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, sigs...)

	go func() {
		select {
		case sig := <-sigChan:
			logx.Log.Warn().Str("signal", sig.String()).Msg("Received signal, cancelling request")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
