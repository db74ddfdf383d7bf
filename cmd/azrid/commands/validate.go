package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/azrid/pkg/arm"
)

func newValidateCommand() *cobra.Command {
	var asName bool

	cmd := &cobra.Command{
		Use:   "validate <value>...",
		Short: "Validate resource identifiers or resource names",
		Long: `Validate Azure resource identifiers by round-trip parsing, or
resource names against the generic ARM naming rules (--name).

The command exits non-zero if any value is invalid.`,
		Example: `  # Validate an identifier
  azrid validate /subscriptions/sub/resourceGroups/rg

  # Validate resource names
  azrid validate --name myVm "bad:name"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			type verdict struct {
				Value string `json:"value"`
				Valid bool   `json:"valid"`
				Error string `json:"error,omitempty"`
			}

			verdicts := make([]verdict, 0, len(args))
			invalid := 0
			for _, value := range args {
				var err error
				if asName {
					err = arm.ValidateResourceName(value)
				} else {
					err = arm.ValidateResourceID(value)
				}

				v := verdict{Value: value, Valid: err == nil}
				if err != nil {
					v.Error = err.Error()
					invalid++
				}
				verdicts = append(verdicts, v)
			}

			if jsonOutput {
				if err := printJSON(verdicts); err != nil {
					return err
				}
			} else {
				for _, v := range verdicts {
					if v.Valid {
						fmt.Printf("valid\t%s\n", v.Value)
					} else {
						fmt.Printf("invalid\t%s\n", v.Value)
					}
				}
			}

			if invalid > 0 {
				log.Debug().Int("invalid", invalid).Msg("Validation failed")
				return fmt.Errorf("%d of %d values invalid", invalid, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asName, "name", false, "validate as resource names instead of identifiers")

	return cmd
}
