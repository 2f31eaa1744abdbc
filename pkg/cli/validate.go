package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apivet/apivet/pkg/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <operation> <file>",
	Short: "Validate a JSON document against an operation's response schema",
	Long: `Validate checks a response body captured on disk (for example from curl or a
proxy recording) against the schema the catalog declares for an operation.
Useful when writing a schema for a partner endpoint: capture a real response
once, then iterate on the schema until it passes.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		_, schemas, err := catalog.Registries()
		if err != nil {
			return err
		}

		sch, ok := schemas.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown operation %q", args[0])
		}

		data, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		var parsed interface{}
		if err := json.Unmarshal(data, &parsed); err != nil {
			return fmt.Errorf("%s is not valid JSON: %w", args[1], err)
		}

		if err := sch.Validate(parsed); err != nil {
			var failure *schema.Failure
			if errors.As(err, &failure) {
				failure.Operation = args[0]
				return printFailure(failure)
			}
			return err
		}

		if jsonOutput {
			fmt.Println(`{"valid": true}`)
		} else {
			fmt.Println("valid")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
