package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/groundwork-sh/groundwork/internal/adapters/filesystem"
	"github.com/groundwork-sh/groundwork/internal/adapters/logging"
	"github.com/groundwork-sh/groundwork/internal/app"
	"github.com/groundwork-sh/groundwork/internal/domain/config"
	"github.com/groundwork-sh/groundwork/internal/ports"
)

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Provision this host as a Node.js web server",
	Long: `Provision installs and configures the full hosting stack: base
packages, nginx, Node.js, pm2, ufw, fail2ban, certbot, optionally
Docker, and a project scaffold under the project root.

Steps already satisfied on the host are skipped. A failing step stops
the run; completed steps are kept and re-running resumes safely.

Use --dry-run to see what would happen without making changes.`,
	RunE: runProvision,
}

var provisionDryRun bool

func init() {
	rootCmd.AddCommand(provisionCmd)

	provisionCmd.Flags().BoolVar(&provisionDryRun, "dry-run", false, "Show what would be done without making changes")
}

// newGroundwork is swapped in tests.
var newGroundwork = func(out io.Writer) *app.Groundwork {
	return app.New(out, os.Geteuid())
}

// runLogger returns the logger for this invocation: debug-level console
// logging under --verbose, silence otherwise.
func runLogger() ports.Logger {
	if verbose {
		return logging.NewConsoleLogger(logging.WithLevel(ports.LevelDebug))
	}
	return logging.NewNopLogger()
}

func runProvision(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.Load(filesystem.NewRealFileSystem(), cfgFile)
	if err != nil {
		return err
	}

	gw := newGroundwork(os.Stdout).WithLogger(runLogger())

	state, err := gw.CheckHost(ctx)
	if err != nil {
		return err
	}
	gw.PrintHost(state)

	if provisionDryRun {
		plan, err := gw.Plan(ctx, cfg)
		if err != nil {
			return err
		}
		gw.PrintPlan(plan)
		if plan.HasChanges() {
			fmt.Println("\n[Dry run - no changes made]")
		}
		return nil
	}

	// Mutations start here; everything above is read-only.
	if !state.RootAccess {
		return config.NewPrivilegeError("provisioning")
	}

	prompter := confirmPrompter(cfg.AssumeYes)
	gw = gw.WithPrompter(prompter)

	plan, err := gw.Plan(ctx, cfg)
	if err != nil {
		return err
	}
	gw.PrintPlan(plan)
	if !plan.HasChanges() {
		return nil
	}

	proceed, err := prompter.Confirm("Proceed with provisioning?", true)
	if err != nil || !proceed {
		fmt.Println("Aborted. No changes made.")
		return nil
	}

	fmt.Println("\nApplying changes...")
	report := gw.Execute(ctx, plan)
	gw.PrintReport(report)

	if report.Failed() {
		return config.NewStepFailedError(
			"provisioning did not complete",
			"fix the failed step above and re-run 'groundwork provision'",
		)
	}
	return nil
}
