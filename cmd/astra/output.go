package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// info prints a progress message to stdout.
func info(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

// warn prints a warning message to stderr.
func warn(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

// exitWithError prints an error to stderr and exits with the given code.
func exitWithError(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(code)
}

// stdinIsTerminal reports whether stdin is attached to a terminal, so
// commands only prompt in interactive sessions.
func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// confirm asks a y/n question on stdout and reads the answer from stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s (y/n): ", prompt)
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.ToLower(strings.TrimSpace(input)) == "y"
}
