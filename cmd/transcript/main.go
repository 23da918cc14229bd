package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vlatan/transcript-service/internal/cli"
)

func main() {
	// Local runs may keep their settings in a .env file
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env file; %v\n", err)
	}

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if shouldPrintUsageHint(err) {
			fmt.Fprintf(os.Stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
		}
		os.Exit(1)
	}
}

func shouldPrintUsageHint(err error) bool {
	message := strings.ToLower(err.Error())
	for _, pattern := range []string{"unknown command", "unknown flag", "unknown shorthand flag", "accepts "} {
		if strings.Contains(message, pattern) {
			return true
		}
	}
	return false
}
