// Package spoolcmder
package spoolcmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/agentlogco/spool/cmd/spool/config"
	convertcmder "github.com/agentlogco/spool/cmd/spool/convert"
	importcmder "github.com/agentlogco/spool/cmd/spool/importer"
	servecmder "github.com/agentlogco/spool/cmd/spool/serve"
	versioncmder "github.com/agentlogco/spool/cmd/version"
)

const spoolLongDesc string = `Spool normalizes agent traces into a layered run ontology.

Work with traces using:
  spool convert <trace.json>   Convert a trace and print the run document
  spool import <trace.json>    Convert a trace and store the run
  spool serve                  Run the API server
  spool config                 Manage persistent configuration`

const spoolShortDesc string = "Spool - Agent Trace Ontology"

func NewSpoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spool",
		Short: spoolShortDesc,
		Long:  spoolLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .spool/ config directory")

	// Add subcommands
	cmd.AddCommand(convertcmder.NewConvertCmd())
	cmd.AddCommand(importcmder.NewImportCmd())
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
