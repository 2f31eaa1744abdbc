package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/apivet/apivet/pkg/client"
	"github.com/apivet/apivet/pkg/logging"
	"github.com/apivet/apivet/pkg/schema"
	"github.com/apivet/apivet/pkg/transport"
)

var (
	callBaseURL string
	callParams  []string
	callBody    string
	callTimeout time.Duration
	callVerbose bool
)

var callCmd = &cobra.Command{
	Use:   "call <operation>",
	Short: "Invoke an operation and validate the response",
	Args:  cobra.ExactArgs(1),
	Example: `  # List companies from a partner sandbox
  apivet call listCompanies --catalog partner.yaml --base-url https://sandbox.partner.example

  # Path and query parameters
  apivet call getCompany --catalog partner.yaml --base-url https://sandbox.partner.example -p id=42 -p expand=sites`,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		ops, schemas, err := catalog.Registries()
		if err != nil {
			return err
		}

		params, err := parseParams(callParams)
		if err != nil {
			return err
		}

		live := transport.NewLive(transport.LiveConfig{BaseURL: callBaseURL, Timeout: callTimeout})
		c := client.New(live, ops, schemas)
		if callVerbose {
			c.SetLogger(logging.New(logging.Config{Level: logging.LevelDebug}))
		}

		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		var body []byte
		if callBody != "" {
			body = []byte(callBody)
		}

		result, err := c.CallWithBody(ctx, args[0], params, body)
		if err != nil {
			var failure *schema.Failure
			if errors.As(err, &failure) {
				return printFailure(failure)
			}
			return err
		}

		return printResult(result)
	},
}

func printResult(result *client.Result) error {
	if jsonOutput {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	data, err := json.MarshalIndent(result.Value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("%s %d\n%s\n", result.Operation, result.StatusCode, data)
	return nil
}

func printFailure(failure *schema.Failure) error {
	if jsonOutput {
		data, _ := json.MarshalIndent(failure, "", "  ")
		fmt.Println(string(data))
	} else {
		fmt.Fprintf(os.Stderr, "response failed validation (%d violations):\n", len(failure.Violations))
		for _, v := range failure.Violations {
			fmt.Fprintf(os.Stderr, "  %s\n", v.String())
		}
	}
	return errors.New("response failed schema validation")
}

func init() {
	callCmd.Flags().StringVar(&callBaseURL, "base-url", "", "Partner API base URL")
	callCmd.Flags().StringArrayVarP(&callParams, "param", "p", nil, "Operation parameter as key=value (repeatable)")
	callCmd.Flags().StringVar(&callBody, "body", "", "Request body to send")
	callCmd.Flags().DurationVar(&callTimeout, "timeout", 30*time.Second, "Request timeout")
	callCmd.Flags().BoolVarP(&callVerbose, "verbose", "v", false, "Log request details")
	_ = callCmd.MarkFlagRequired("base-url")
	rootCmd.AddCommand(callCmd)
}
