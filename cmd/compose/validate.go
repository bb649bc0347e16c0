package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dusk-indust/compose/internal/config"
	"github.com/dusk-indust/compose/internal/validate"
)

// errValidationFailed makes `compose validate` exit non-zero for scenes
// scoring below the pass threshold.
var errValidationFailed = errors.New("composition below pass threshold")

// runValidate scores an operation list as-is, without running the other
// stages.
func runValidate(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := newFlagSet("compose validate", stderr)
	configDir := fs.String("config", ".", "directory containing compose.yml")
	asJSON := fs.Bool("json", false, "print the report as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("usage: compose validate [-config dir] [-json] [file]")
	}

	cfg, err := config.Load(*configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	path := "-"
	if fs.NArg() == 1 {
		path = fs.Arg(0)
	}
	doc, err := readDocument(path, stdin)
	if err != nil {
		return err
	}

	v := validate.Validator{
		GridUnit:      cfg.Unit(),
		PassThreshold: cfg.Threshold(),
		Weights:       cfg.ScoreWeights(),
	}
	report := v.Validate(doc.Operations, doc.Topic)

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	} else {
		fmt.Fprintln(stdout, report.String())
	}

	if !report.Passed {
		return errValidationFailed
	}
	return nil
}
