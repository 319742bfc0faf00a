package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/mkravets/dicthub/internal/cli"
	"github.com/mkravets/dicthub/pkg/dicthub"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(dicthub.ExitPanic)
		}
	}()

	if os.Getenv("DICTHUB_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(dicthub.ExitCodeForError(err))
	}
}
