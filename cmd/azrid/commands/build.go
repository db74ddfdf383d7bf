package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/azrid/pkg/arm"
)

func newBuildCommand() *cobra.Command {
	var fieldFlags []string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a canonical identifier from parsed fields",
		Long: `Build a canonical Azure resource identifier from a field mapping.

Fields are given as repeated --field key=value flags, or as a JSON
object on stdin when no --field flags are set. The subscription field
is required; the identifier is built left to right and stops at the
first missing segment.`,
		Example: `  # Build from flags
  azrid build --field subscription=sub --field resource_group=rg

  # Build from JSON on stdin
  echo '{"subscription": "sub"}' | azrid build`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := collectFields(fieldFlags, cmd.InOrStdin())
			if err != nil {
				return err
			}

			rid, err := arm.Build(fields)
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(map[string]string{"resource_id": rid})
			}
			fmt.Println(rid)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&fieldFlags, "field", nil, "field as key=value (repeatable)")

	return cmd
}

// collectFields merges --field flags, or falls back to a JSON object
// read from stdin.
func collectFields(fieldFlags []string, stdin io.Reader) (map[string]string, error) {
	fields := make(map[string]string)

	if len(fieldFlags) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		if len(strings.TrimSpace(string(data))) == 0 {
			return nil, fmt.Errorf("no fields given: use --field or pipe a JSON object")
		}
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, fmt.Errorf("failed to parse JSON fields: %w", err)
		}
		return fields, nil
	}

	for _, f := range fieldFlags {
		key, value, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("invalid field %q: expected key=value", f)
		}
		fields[key] = value
	}
	return fields, nil
}
