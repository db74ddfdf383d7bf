package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/azrid/pkg/cloud"
)

func newCloudCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cloud [name]",
		Short: "Show Azure cloud endpoints",
		Long: `Show the Resource Manager endpoint and credential scopes for an
Azure cloud. Without an argument the configured default cloud is used.

Known clouds: public, china, usgovernment.`,
		Example: `  # Endpoints for the default cloud
  azrid cloud

  # Endpoints for Azure China
  azrid cloud china`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}

			name := settings.DefaultCloud
			if len(args) > 0 {
				name = args[0]
			}

			c, err := cloud.Parse(name)
			if err != nil {
				return err
			}
			endpoints, err := cloud.GetEndpoints(c)
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(endpoints)
			}
			fmt.Printf("cloud:             %s\n", c)
			fmt.Printf("resource manager:  %s\n", endpoints.ResourceManager)
			fmt.Printf("credential scopes: %s\n", strings.Join(endpoints.CredentialScopes, ", "))
			return nil
		},
	}

	return cmd
}
