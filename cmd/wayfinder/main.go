package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wayfinder-dev/wayfinder/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦ ╦┌─┐┬ ┬┌─┐┬┌┐┌┌┬┐┌─┐┬─┐
  ║║║├─┤└┬┘├┤ ││││ ││├┤ ├┬┘
  ╚╩╝┴ ┴ ┴ └  ┴┘└┘─┴┘└─┘┴└─
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "wayfinder",
		Short: "Client-side navigation tooling for Go web apps",
		Long: `Wayfinder is a client-side navigation router for Go web applications.

The library handles route matching, guards, middleware, and browser
history; this CLI carries the surrounding project workflow:

  • Dev server with live reload and history-mode fallback
  • Route template validation and listing
  • One-command deploy of the built bundle to S3`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		devCmd(),
		routesCmd(),
		deployCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// printBanner prints the Wayfinder ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
