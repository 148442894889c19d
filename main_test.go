package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"devutils-bridge/internal/domain"
	"devutils-bridge/internal/infrastructure"
)

// execute runs the command tree with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// TestLoadConfig_Default tests that no path means stdio with info logging.
func TestLoadConfig_Default(t *testing.T) {
	config, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if config.Transport.Type != "stdio" || config.Logging.Level != "info" {
		t.Errorf("Unexpected defaults: %+v", config)
	}
}

// TestLoadConfig_File tests loading an HTTP configuration from disk.
func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
transport:
  type: http
  http:
    host: localhost
    port: 8080
snapshot:
  path: /tmp/devutils.db
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if config.Transport.Type != "http" || config.Transport.HTTP.Port != 8080 {
		t.Errorf("Unexpected transport: %+v", config.Transport)
	}
	if config.Snapshot.Path != "/tmp/devutils.db" {
		t.Errorf("Unexpected snapshot path %q", config.Snapshot.Path)
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

// TestRunCommand tests a successful tool call from the command line.
func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", "--tool", "base64-tool", "--op", "encode", "--input", "hello")
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	var resp domain.ToolResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("Output is not a response: %v\n%s", err, out)
	}
	if !resp.OK || resp.Result != "aGVsbG8=" {
		t.Errorf("Unexpected response %+v", resp)
	}
}

// TestRunCommand_Payload tests object inputs passed as a complete request.
func TestRunCommand_Payload(t *testing.T) {
	out, err := execute(t, "run", "--payload",
		`{"tool":"diff-viewer","operation":"compare","input":{"original":"a\nb","modified":"a\nc"}}`)
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if !strings.Contains(out, `"ok": true`) || !strings.Contains(out, `"stats"`) {
		t.Errorf("Unexpected output %s", out)
	}
}

// TestRunCommand_Failure tests that failures print the envelope and return an error.
func TestRunCommand_Failure(t *testing.T) {
	out, err := execute(t, "run", "--tool", "json-formatter", "--op", "formt", "--input", "{}")
	if !errors.Is(err, errToolFailed) {
		t.Fatalf("Expected errToolFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "UNSUPPORTED_OPERATION") {
		t.Errorf("Error should carry the code: %v", err)
	}

	var resp domain.ToolResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("Output is not a response: %v", err)
	}
	if resp.ErrorDetails == nil || resp.ErrorDetails.DidYouMean != "format" {
		t.Errorf("Expected a suggestion of format, got %+v", resp.ErrorDetails)
	}
}

// TestCatalogAndSchemaCommands tests the discovery commands.
func TestCatalogAndSchemaCommands(t *testing.T) {
	out, err := execute(t, "catalog")
	if err != nil {
		t.Fatalf("catalog returned error: %v", err)
	}
	var discovery struct {
		Catalog    []domain.CatalogEntry `json:"catalog"`
		Operations map[string][]string   `json:"operations"`
	}
	if err := json.Unmarshal([]byte(out), &discovery); err != nil {
		t.Fatalf("Catalog output is not JSON: %v", err)
	}
	if len(discovery.Catalog) != len(domain.AllToolIDs) || len(discovery.Operations) != len(domain.AllToolIDs) {
		t.Errorf("Catalog lists %d tools and %d operation sets", len(discovery.Catalog), len(discovery.Operations))
	}

	out, err = execute(t, "schema")
	if err != nil {
		t.Fatalf("schema returned error: %v", err)
	}
	var schema map[string]json.RawMessage
	if err := json.Unmarshal([]byte(out), &schema); err != nil {
		t.Fatalf("Schema output is not JSON: %v", err)
	}
	if _, ok := schema["request"]; !ok {
		t.Error("Schema output has no request schema")
	}
}

// TestSnapshotCommand tests listing persisted state from a database file.
func TestSnapshotCommand(t *testing.T) {
	if _, err := execute(t, "snapshot"); err == nil || !strings.Contains(err.Error(), "no snapshot store") {
		t.Fatalf("Expected a missing store error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "state.db")
	store, err := infrastructure.OpenSnapshotStore(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	if err := store.Put(context.Background(), infrastructure.ToolKey("base64-tool", "last_call"), `{"operation":"encode","ok":true}`); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	out, err := execute(t, "snapshot", "--db", path)
	if err != nil {
		t.Fatalf("snapshot returned error: %v", err)
	}
	var entries []infrastructure.SnapshotEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("Snapshot output is not JSON: %v", err)
	}
	if len(entries) != 1 || entries[0].Key != "tool:base64-tool:last_call" {
		t.Errorf("Unexpected entries %+v", entries)
	}
}
