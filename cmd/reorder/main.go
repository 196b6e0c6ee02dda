// Command reorder hosts drag-to-reorder lists in the terminal.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/go-drift/reorder/cmd/reorder/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
