package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"devutils-bridge/internal/application"
	"devutils-bridge/internal/domain"
	"devutils-bridge/internal/infrastructure"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Tests build a fresh tree per case.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "devutils-bridge",
		Short:         "Run developer utility tools through one validated request contract",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newCatalogCmd())
	root.AddCommand(newSchemaCmd())
	root.AddCommand(newSnapshotCmd())

	return root
}

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the bridge over JSON-RPC (stdio or HTTP)",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return serve(config)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Path to configuration file (defaults to stdio transport)")

	return cmd
}

func loadConfig(path string) (*domain.Config, error) {
	if path == "" {
		return domain.DefaultConfig(), nil
	}
	config, err := domain.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return config, nil
}

// serve wires the runner, transport and optional snapshot store, then blocks
// until a signal arrives or the transport stops.
func serve(config *domain.Config) error {
	logger, err := application.NewStructuredLogger(config.Logging.Level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	registry := application.NewDefaultRegistry()
	if err := registry.AssertConsistency(); err != nil {
		logger.LogError("tool registry is inconsistent", err, nil)
		return err
	}

	metrics := application.NewMetrics()
	runner := application.NewRunner(registry, logger, metrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var snapshots application.SnapshotReader
	if config.Snapshot.Path != "" {
		store, err := infrastructure.OpenSnapshotStore(ctx, config.Snapshot.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		runner.SetStateWriter(store)
		snapshots = store
		logger.LogInfo("snapshot store opened", map[string]interface{}{"path": config.Snapshot.Path})
	}

	var transport domain.Transport
	switch config.Transport.Type {
	case "stdio":
		transport = domain.NewStdioTransport()
	case "http":
		httpTransport := domain.NewHTTPTransport(config.Transport.HTTP.Host, config.Transport.HTTP.Port, logger.Zap())
		httpTransport.Handle("/run", application.NewQueryHandler(runner, config.Bridge.CatalogIncludedByDefault()))
		httpTransport.Handle("/metrics", metrics.Handler())
		transport = httpTransport
	default:
		return fmt.Errorf("invalid transport type: %s", config.Transport.Type)
	}

	server := application.NewServer(transport, runner, snapshots, config, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("server failed to start: %w", err)
	}

	if config.Transport.Type == "http" {
		logger.LogInfo("bridge listening", map[string]interface{}{
			"host": config.Transport.HTTP.Host,
			"port": config.Transport.HTTP.Port,
		})
	}

	select {
	case sig := <-sigChan:
		logger.LogInfo("received signal, shutting down", map[string]interface{}{"signal": sig.String()})
		cancel()
	case <-server.Done():
		logger.LogInfo("transport closed, shutting down", nil)
	}

	if err := server.Close(); err != nil {
		logger.LogError("error during server shutdown", err, nil)
		return err
	}
	return nil
}
