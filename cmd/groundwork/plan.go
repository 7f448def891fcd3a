package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/groundwork-sh/groundwork/internal/adapters/filesystem"
	"github.com/groundwork-sh/groundwork/internal/domain/config"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what provisioning would change",
	Long: `Plan checks every provisioning step against the current host and
reports which would act and which are already satisfied. Nothing is
changed, so plan runs without root.`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.Load(filesystem.NewRealFileSystem(), cfgFile)
	if err != nil {
		return err
	}

	gw := newGroundwork(os.Stdout)

	state, err := gw.CheckHost(ctx)
	if err != nil {
		return err
	}
	gw.PrintHost(state)

	plan, err := gw.Plan(ctx, cfg)
	if err != nil {
		return err
	}
	gw.PrintPlan(plan)
	return nil
}
