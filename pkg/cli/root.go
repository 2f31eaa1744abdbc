// Package cli provides the apivet CLI commands.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apivet/apivet/pkg/config"
)

var (
	// Persistent flags available to all subcommands.
	catalogPath string
	openapiPath string
	jsonOutput  bool

	// Version is injected during build.
	Version = "dev"
	// Commit is injected during build.
	Commit = "none"
	// BuildDate is injected during build.
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "apivet",
	Short: "apivet calls legacy partner APIs and validates every response",
	Long: `apivet issues operations declared in a catalog file against a partner API
and checks each response against the operation's schema before printing it.
Undeclared response fields pass through; declared fields are checked strictly.

Catalogs are YAML or JSON files; operations and response schemas can also be
imported from an OpenAPI 3 document with --openapi.`,
	SilenceUsage:  true,
	SilenceErrors: true, // Errors are handled in Execute()
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Path to a catalog file or directory")
	rootCmd.PersistentFlags().StringVar(&openapiPath, "openapi", "", "Path to an OpenAPI 3 document to import operations from")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}

// loadCatalog loads the catalog named by --catalog and/or --openapi,
// merging both when both are given.
func loadCatalog() (*config.Catalog, error) {
	if catalogPath == "" && openapiPath == "" {
		return nil, fmt.Errorf("a catalog is required: pass --catalog or --openapi")
	}

	merged := &config.Catalog{}

	if catalogPath != "" {
		info, err := os.Stat(catalogPath)
		if err != nil {
			return nil, fmt.Errorf("cannot read catalog: %w", err)
		}
		var catalog *config.Catalog
		if info.IsDir() {
			catalog, err = config.LoadDir(catalogPath)
		} else {
			catalog, err = config.LoadFromFile(catalogPath)
		}
		if err != nil {
			return nil, err
		}
		merged.Merge(catalog)
	}

	if openapiPath != "" {
		imported, err := config.ImportOpenAPIFile(openapiPath)
		if err != nil {
			return nil, err
		}
		merged.Merge(imported)
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// parseParams turns repeated key=value flags into a parameter map.
func parseParams(pairs []string) (map[string]string, error) {
	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}
