package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// mcpConfig represents the structure of a .mcp.json file.
type mcpConfig struct {
	MCPServers map[string]json.RawMessage `json:"mcpServers"`
}

// composeMCPEntry is the MCP server configuration for the compose binary.
var composeMCPEntry = json.RawMessage(`{
  "type": "stdio",
  "command": "compose",
  "args": ["--serve-mcp"]
}`)

// defaultConfig is written to compose.yml by `compose init`.
const defaultConfig = `# compose pipeline settings; omitted keys use the defaults shown.
gridUnit: 0.05
minOperations: 25
passThreshold: 70
concurrency: 4
weights:
  grid: 0.25
  sectioning: 0.35
  spacing: 0.25
  density: 0.15
`

// runInit writes a starter compose.yml and registers the MCP server in
// .mcp.json under the target directory.
func runInit(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("compose init", stderr)
	projectRoot := fs.String("project-root", ".", "directory to initialise")
	force := fs.Bool("force", false, "overwrite existing files")
	if err := fs.Parse(args); err != nil {
		return err
	}

	abs, err := filepath.Abs(*projectRoot)
	if err != nil {
		return fmt.Errorf("resolving project root: %w", err)
	}

	cfgPath := filepath.Join(abs, "compose.yml")
	if _, err := os.Stat(cfgPath); err == nil && !*force {
		fmt.Fprintf(stdout, "  skipped compose.yml (exists, use --force to overwrite)\n")
	} else {
		if err := os.WriteFile(cfgPath, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", cfgPath, err)
		}
		fmt.Fprintf(stdout, "  created compose.yml\n")
	}

	if err := mergeMCPConfig(filepath.Join(abs, ".mcp.json"), *force, stdout); err != nil {
		return err
	}

	fmt.Fprintln(stdout, "\nSetup complete. The compose MCP server is ready.")
	return nil
}

// mergeMCPConfig creates or merges the compose entry into .mcp.json.
func mergeMCPConfig(mcpPath string, force bool, stdout io.Writer) error {
	var cfg mcpConfig

	data, err := os.ReadFile(mcpPath)
	if err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parsing %s: %w", mcpPath, err)
		}
	}

	if cfg.MCPServers == nil {
		cfg.MCPServers = make(map[string]json.RawMessage)
	}

	if _, exists := cfg.MCPServers["compose"]; exists && !force {
		fmt.Fprintf(stdout, "  skipped .mcp.json compose entry (exists, use --force to overwrite)\n")
		return nil
	}

	cfg.MCPServers["compose"] = composeMCPEntry

	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling .mcp.json: %w", err)
	}

	if err := os.WriteFile(mcpPath, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", mcpPath, err)
	}

	action := "created"
	if data != nil {
		action = "updated"
	}
	fmt.Fprintf(stdout, "  %s .mcp.json with compose MCP server\n", action)
	return nil
}
