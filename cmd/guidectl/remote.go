package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

func newRemoteCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "List active guides reported by a running assistantd",
		Long: `Fetch the active guides from an assistantd server.

Examples:
  guidectl remote
  guidectl remote --server http://localhost:8080 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := fetchActive(opts.serverURL)
			if err != nil {
				return err
			}
			return printRows(cmd.OutOrStdout(), rs, opts.json)
		},
	}
	cmd.Flags().StringVar(&opts.serverURL, "server", "http://localhost:9090", "assistantd server URL")
	return cmd
}

func fetchActive(serverURL string) ([]row, error) {
	url := fmt.Sprintf("%s/api/v1/guides/active", serverURL)

	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("server returned status %d (failed to read response body: %w)", resp.StatusCode, readErr)
		}
		return nil, fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}

	var rs []row
	if err := json.NewDecoder(resp.Body).Decode(&rs); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return rs, nil
}
