package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/niclink/chessclock-launcher/pkg/launch"
)

func main() {
	// Set up panic recovery to return specific exit code
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "PANIC: %v\n", r)
			debug.PrintStack()
			os.Exit(launch.ExitPanic)
		}
	}()

	exePath, err := os.Executable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get executable path: %v\n", err)
		os.Exit(launch.ExitPathError)
	}

	// All arguments are forwarded to the chess clock - the launcher only
	// intercepts args when CHESSCLOCK_LAUNCHER_CLI=1.
	// Note: LaunchWithLogLevel calls os.Exit directly on error.
	launch.LaunchWithLogLevel(exePath, os.Args[1:], "", "")
}
