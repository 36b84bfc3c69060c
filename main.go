package main

import (
	"fmt"
	"os"

	"github.com/agentflare-ai/go-cmdletdoc/internal/engine"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "go-cmdletdoc:", err)
		os.Exit(int(engine.ExitCodeOf(err)))
	}
}
