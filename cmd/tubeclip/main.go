package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"tubeclip/internal/services"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
			if kind := services.Classify(err); kind != "failed" {
				fmt.Fprintf(os.Stderr, "hint: %s\n", services.Hint(err))
			}
		}
		os.Exit(1)
	}
}
