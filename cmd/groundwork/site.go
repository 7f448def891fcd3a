package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groundwork-sh/groundwork/internal/domain/config"
	"github.com/groundwork-sh/groundwork/internal/tui"
	"github.com/groundwork-sh/groundwork/internal/validation"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Manage reverse-proxy sites",
}

var siteAddCmd = &cobra.Command{
	Use:   "add [domain] [port]",
	Short: "Register a domain proxying to a local port",
	Long: `Add writes an nginx server block for the domain, enables it,
validates the nginx configuration, and reloads nginx. The backend port
is probed as a courtesy; a port with no listener yet is reported but
does not block registration.

Registering a domain again overwrites its previous configuration.

With no arguments the domain and port are collected interactively.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runSiteAdd,
}

var siteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered sites",
	RunE:  runSiteList,
}

var siteAddCert bool

func init() {
	rootCmd.AddCommand(siteCmd)
	siteCmd.AddCommand(siteAddCmd)
	siteCmd.AddCommand(siteListCmd)

	siteAddCmd.Flags().BoolVar(&siteAddCert, "cert", false, "obtain a TLS certificate after registering")
}

// siteInputs resolves the domain and port from args, falling back to the
// interactive wizard when both are missing.
func siteInputs(args []string) (string, int, error) {
	switch len(args) {
	case 2:
		if err := validation.ValidateDomain(args[0]); err != nil {
			return "", 0, config.NewUsageError(err.Error(), "usage: groundwork site add <domain> <port>")
		}
		port, err := validation.ParsePort(args[1])
		if err != nil {
			return "", 0, config.NewUsageError(err.Error(), "usage: groundwork site add <domain> <port>")
		}
		return args[0], port, nil
	case 1:
		return "", 0, config.NewUsageError(
			"a port is required when a domain is given",
			"usage: groundwork site add <domain> <port>",
		)
	default:
		result, err := tui.RunSiteWizard("", "")
		if err != nil {
			return "", 0, err
		}
		if result.Cancelled {
			return "", 0, config.NewUsageError("site registration cancelled", "")
		}
		return result.Domain, result.Port, nil
	}
}

func runSiteAdd(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	// All input validation happens before anything touches the host.
	domain, port, err := siteInputs(args)
	if err != nil {
		return err
	}

	if os.Geteuid() != 0 {
		return config.NewPrivilegeError("site registration")
	}

	gw := newGroundwork(os.Stdout)

	reg, err := gw.RegisterSite(ctx, domain, port)
	if err != nil {
		return err
	}
	gw.PrintRegistration(reg)

	if !siteAddCert {
		// --yes must not opt into certificates; issuing one is a new
		// commitment, not a confirmation of the requested registration.
		if yesFlag {
			return nil
		}
		want, err := confirmPrompter(false).Confirm(
			fmt.Sprintf("Obtain a TLS certificate for %s now?", domain), false)
		if err != nil || !want {
			return nil
		}
	}

	if err := gw.IssueCertificate(ctx, domain); err != nil {
		return err
	}
	fmt.Printf("TLS certificate installed for %s\n", domain)
	return nil
}

func runSiteList(_ *cobra.Command, _ []string) error {
	gw := newGroundwork(os.Stdout)

	entries, err := gw.ListSites()
	if err != nil {
		return err
	}
	gw.PrintSites(entries)
	return nil
}
