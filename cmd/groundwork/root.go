package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/groundwork-sh/groundwork/internal/adapters/prompt"
	"github.com/groundwork-sh/groundwork/internal/domain/config"
	"github.com/groundwork-sh/groundwork/internal/ports"
	"github.com/groundwork-sh/groundwork/internal/tui"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	yesFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "groundwork",
	Short: "An idempotent Ubuntu web host provisioner",
	Long: `Groundwork turns a fresh Ubuntu server into a Node.js web host:
nginx as a reverse proxy, Node via NodeSource, pm2 as the process
supervisor, ufw and fail2ban for the perimeter, and certbot for TLS.

Every step checks the host first and only acts when something is
missing, so re-running after a failure picks up where the run stopped.`,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&yesFlag, "yes", "y", false, "auto-confirm all prompts")

	rootCmd.AddCommand(versionCmd)
}

// confirmPrompter picks the confirmation strategy for this invocation:
// auto-approve under --yes or assume_yes, interactive dialogs on a
// terminal, plain line prompts otherwise.
func confirmPrompter(assumeYes bool) ports.Prompter {
	if yesFlag || assumeYes {
		return prompt.AutoApprove{}
	}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return tui.DialogPrompter{}
	}
	return prompt.NewLinePrompter(os.Stdin, os.Stdout)
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var userErr *config.UserError
	if errors.As(err, &userErr) {
		msg := userErr.Message
		if userErr.Context != "" {
			msg += fmt.Sprintf(" (at %s)", userErr.Context)
		}
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		if verbose && userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}
	return err.Error()
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}
