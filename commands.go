package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"

	"devutils-bridge/internal/application"
	"devutils-bridge/internal/domain"
	"devutils-bridge/internal/infrastructure"

	"github.com/spf13/cobra"
)

// errToolFailed signals a non-zero exit after the failed response was printed.
var errToolFailed = errors.New("tool call failed")

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single tool request and print the response",
		Long: `Run a single tool request and print the response envelope as JSON.

Either pass --payload with a complete JSON request, or --tool and --op with
an optional --input string and --options JSON object. Object inputs such as
the diff-viewer's {original, modified} need --payload.`,
		Example: `  devutils-bridge run --tool base64-tool --op encode --input hello
  devutils-bridge run --payload '{"tool":"diff-viewer","operation":"compare","input":{"original":"a","modified":"b"}}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}
			for _, name := range []string{"tool", "op", "input", "options", "payload"} {
				if cmd.Flags().Changed(name) {
					value, _ := cmd.Flags().GetString(name)
					params.Set(name, value)
				}
			}

			runner := application.NewRunner(application.NewDefaultRegistry(), nil, nil)
			resp := runner.RunTool(application.QueryToolRequest(params))
			if err := writeJSON(cmd.OutOrStdout(), resp); err != nil {
				return err
			}
			if !resp.OK {
				return fmt.Errorf("%w: %s", errToolFailed, resp.ErrorDetails.Code)
			}
			return nil
		},
	}

	cmd.Flags().String("tool", "", "Tool id, e.g. json-formatter")
	cmd.Flags().String("op", "", "Operation name, e.g. format")
	cmd.Flags().String("input", "", "Input text")
	cmd.Flags().String("options", "", "Options as a JSON object")
	cmd.Flags().String("payload", "", "Complete request as JSON; wins over the other flags")

	return cmd
}

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the tool catalog and the operations of every tool",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), application.Discover())
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schemas of the request and response envelopes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), domain.BuildBridgeSchema())
		},
	}
}

func newSnapshotCmd() *cobra.Command {
	var (
		dbPath     string
		configPath string
		prefix     string
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "List persisted tool state",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" && configPath != "" {
				config, err := loadConfig(configPath)
				if err != nil {
					return err
				}
				dbPath = config.Snapshot.Path
			}
			if dbPath == "" {
				return fmt.Errorf("no snapshot store: pass --db or a config with snapshot.path")
			}

			store, err := infrastructure.OpenSnapshotStore(cmd.Context(), dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Snapshot(cmd.Context(), prefix)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), entries)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the snapshot database")
	cmd.Flags().StringVar(&configPath, "config", "", "Read the database path from this configuration file")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Only list keys starting with this prefix (default tool:)")

	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
