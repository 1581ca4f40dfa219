package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	env := newEnv(os.Stdin, os.Stdout, os.Stderr)
	if err := newApp(env).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		env.close()
		stop()
		os.Exit(1)
	}
}
