package app

import (
	"fmt"
	"time"

	"github.com/groundwork-sh/groundwork/internal/adapters/command"
	"github.com/groundwork-sh/groundwork/internal/domain/execution"
	"github.com/groundwork-sh/groundwork/internal/domain/hoststate"
	"github.com/groundwork-sh/groundwork/internal/provider/nginx"
)

// PrintHost outputs a short host summary.
func (g *Groundwork) PrintHost(state *hoststate.HostState) {
	g.printf("%s\n", g.styles.Title.Render("Host"))
	g.printf("  OS:   %s %s\n", state.OSName, state.OSVersion)
	root := "no"
	if state.RootAccess {
		root = "yes"
	}
	g.printf("  Root: %s\n", root)
	for _, pkg := range trackedPackages {
		if !state.HasPackage(pkg) {
			continue
		}
		g.printf("  %-10s %s\n", pkg, g.styles.Muted.Render(state.PackageVersion(pkg)))
	}
	g.printf("\n")
}

// PrintPlan outputs a human-readable plan summary.
func (g *Groundwork) PrintPlan(plan *execution.Plan) {
	g.printf("%s\n", g.styles.Title.Render("Provisioning Plan"))

	if !plan.HasChanges() {
		g.printf("%s\n", g.styles.Success.Render("No changes needed. The host is fully provisioned."))
		return
	}

	summary := plan.Summary()
	g.printf("Steps: %d total, %d to apply, %d satisfied\n\n",
		summary.Total, summary.NeedsApply, summary.Satisfied)

	for _, entry := range plan.Entries() {
		marker := g.styles.Satisfied.Render("✓")
		if entry.Status().NeedsAction() {
			marker = g.styles.Pending.Render("+")
		}
		g.printf("  %s %s\n", marker, entry.Step().ID().String())

		if diff := entry.Diff(); !diff.IsEmpty() {
			g.printf("      %s\n", g.styles.Muted.Render(diff.Summary()))
		}
	}

	g.printf("\nRun 'groundwork provision' to execute this plan.\n")
}

// PrintReport outputs the results of a provisioning run.
func (g *Groundwork) PrintReport(report *execution.RunReport) {
	g.printf("%s\n", g.styles.Title.Render("Provisioning Results"))

	for _, result := range report.Results() {
		id := result.StepID().String()
		switch result.Outcome() {
		case execution.OutcomeSucceeded:
			line := fmt.Sprintf("  %s %s", g.styles.Success.Render("✓"), id)
			if result.Detail() != "" {
				line += " " + g.styles.Muted.Render(result.Detail())
			}
			g.printf("%s\n", line)
		case execution.OutcomeSkipped:
			g.printf("  %s %s %s\n", g.styles.Skipped.Render("-"), id,
				g.styles.Muted.Render("("+result.Detail()+")"))
		case execution.OutcomeWarned:
			g.printf("  %s %s: %v\n", g.styles.Warning.Render("!"), id, result.Error())
		case execution.OutcomeFailed:
			g.printf("  %s %s: %v\n", g.styles.Error.Render("✗"), id, result.Error())
			if command.IsCommandNotFound(result.Error()) {
				g.printf("      %s\n", g.styles.Muted.Render(
					"the underlying command is not installed; an earlier install step may have been skipped"))
			}
		}
	}

	summary := report.Summary()
	g.printf("\nSummary: %d applied, %d skipped, %d warned, %d failed (%s)\n",
		summary[execution.OutcomeSucceeded], summary[execution.OutcomeSkipped],
		summary[execution.OutcomeWarned], summary[execution.OutcomeFailed],
		report.Duration().Round(time.Millisecond))

	if report.Aborted() {
		g.printf("%s\n", g.styles.Error.Render("Run aborted. Completed steps were not rolled back; fix the failure and re-run."))
	}
}

// PrintRegistration outputs the outcome of a site registration.
func (g *Groundwork) PrintRegistration(reg *nginx.Registration) {
	g.printf("%s %s -> %s\n", g.styles.Success.Render("✓"),
		reg.Site.Domain(), reg.Site.Upstream())
	g.printf("  config: %s\n", reg.SiteFile)
	if reg.PortBound {
		g.printf("  %s\n", g.styles.Muted.Render(
			fmt.Sprintf("port %d has a listener", reg.Site.Port())))
	} else {
		g.printf("  %s\n", g.styles.Warning.Render(
			fmt.Sprintf("nothing is listening on port %d yet; start the app under pm2", reg.Site.Port())))
	}
}

// PrintSites outputs the registered site list.
func (g *Groundwork) PrintSites(entries []nginx.SiteEntry) {
	if len(entries) == 0 {
		g.printf("No sites registered.\n")
		return
	}
	g.printf("%s\n", g.styles.Title.Render("Sites"))
	for _, entry := range entries {
		state := g.styles.Muted.Render("disabled")
		if entry.Enabled {
			state = g.styles.Success.Render("enabled")
		}
		port := "-"
		if entry.Port > 0 {
			port = fmt.Sprintf("%d", entry.Port)
		}
		g.printf("  %-30s port %-6s %s\n", entry.Domain, port, state)
	}
}

// printf writes to the output writer, ignoring errors.
func (g *Groundwork) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(g.out, format, args...)
}
