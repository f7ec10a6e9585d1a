package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/peterkuimelis/gwentx/cmd/gwentx/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
