package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var operationsCmd = &cobra.Command{
	Use:   "operations",
	Short: "List the operations a catalog declares",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}

		if jsonOutput {
			type row struct {
				Name     string   `json:"name"`
				Method   string   `json:"method"`
				Path     string   `json:"path"`
				Required []string `json:"required,omitempty"`
			}
			rows := make([]row, 0, len(catalog.Operations))
			for _, e := range catalog.Operations {
				rows = append(rows, row{Name: e.Name, Method: e.Method, Path: e.Path, Required: e.Required})
			}
			data, err := json.MarshalIndent(rows, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		for _, e := range catalog.Operations {
			line := fmt.Sprintf("%-24s %-6s %s", e.Name, e.Method, e.Path)
			if len(e.Required) > 0 {
				line += "  (requires " + strings.Join(e.Required, ", ") + ")"
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(operationsCmd)
}
