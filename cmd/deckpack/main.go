// Command deckpack is a thin entry point over internal/engine: it reads
// one JSON PackRequest and writes one JSON PlacementRecord. It deliberately
// carries no configuration-file parsing or rich flag surface — rich CLI
// plumbing is out of scope for the packing engine itself.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jdock/deckpack/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
