package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/azrid/pkg/arm"
)

func newParseCommand() *cobra.Command {
	var structured bool

	cmd := &cobra.Command{
		Use:   "parse <resource-id>",
		Short: "Parse an Azure resource identifier into its segments",
		Long: `Parse an Azure resource identifier into a flat field mapping.

Identifiers that do not match the ARM grammar are treated as opaque
and reported with only a name field. With --structured the parsed
tree is printed instead of the flat mapping.`,
		Example: `  # Parse a virtual machine identifier
  azrid parse /subscriptions/sub/resourceGroups/rg/providers/Microsoft.Compute/virtualMachines/vm1

  # Parse as JSON
  azrid parse --json /subscriptions/sub/resourceGroups/rg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rid := arm.Parse(args[0])

			if structured {
				if jsonOutput {
					return printJSON(rid)
				}
				fmt.Printf("subscription:   %s\n", rid.Subscription)
				fmt.Printf("resource group: %s\n", rid.ResourceGroup)
				fmt.Printf("namespace:      %s\n", rid.Namespace)
				fmt.Printf("type:           %s\n", rid.Type)
				fmt.Printf("name:           %s\n", rid.Name)
				for i, child := range rid.Children {
					fmt.Printf("child %d:        namespace=%s type=%s name=%s\n",
						i+1, child.Namespace, child.Type, child.Name)
				}
				return nil
			}

			fields := rid.Fields()
			if jsonOutput {
				return printJSON(fields)
			}
			printFields(fields)
			return nil
		},
	}

	cmd.Flags().BoolVar(&structured, "structured", false, "print the parsed tree instead of flat fields")

	return cmd
}
