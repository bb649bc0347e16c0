package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dusk-indust/compose/internal/config"
	"github.com/dusk-indust/compose/internal/grid"
	"github.com/dusk-indust/compose/internal/ops"
)

// runSnap rounds every coordinate to the grid and prints the operations.
func runSnap(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := newFlagSet("compose snap", stderr)
	configDir := fs.String("config", ".", "directory containing compose.yml")
	unit := fs.Float64("grid-unit", 0, "grid spacing in canvas units (default 0.05)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("usage: compose snap [-config dir] [-grid-unit u] [file]")
	}

	cfg, err := config.Load(*configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *unit != 0 {
		cfg.GridUnit = *unit
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid settings: %w", err)
		}
	}

	path := "-"
	if fs.NArg() == 1 {
		path = fs.Arg(0)
	}
	doc, err := readDocument(path, stdin)
	if err != nil {
		return err
	}

	snapped := ops.Document{
		Topic:      doc.Topic,
		Operations: grid.SnapAll(doc.Operations, cfg.Unit()),
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(snapped); err != nil {
		return fmt.Errorf("encode operations: %w", err)
	}
	return nil
}
