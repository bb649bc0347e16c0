package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"

	"github.com/dusk-indust/compose/internal/config"
	"github.com/dusk-indust/compose/internal/mcptools"
	"github.com/dusk-indust/compose/internal/ops"
	"github.com/dusk-indust/compose/internal/pipeline"
)

// CLI flags parsed from command line.
type cliFlags struct {
	ConfigDir     string
	Topic         string
	Output        string
	Format        string
	GridUnit      float64
	MinOperations int
	Concurrency   int
	SkipExpansion bool
	SkipLayout    bool
	Verbose       bool
	ServeMCP      bool
	Version       bool
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		switch args[0] {
		case "validate":
			return runValidate(args[1:], stdin, stdout, stderr)
		case "snap":
			return runSnap(args[1:], stdin, stdout, stderr)
		case "init":
			return runInit(args[1:], stdout, stderr)
		}
	}

	var flags cliFlags
	fs := newFlagSet("compose", stderr)
	fs.StringVar(&flags.ConfigDir, "config", ".", "directory containing compose.yml")
	fs.StringVar(&flags.Topic, "topic", "", "scene topic (overrides the topic in the input)")
	fs.StringVar(&flags.Output, "output", "", "write output to this file instead of stdout")
	fs.StringVar(&flags.Format, "format", formatJSON, "output format: json or markdown")
	fs.Float64Var(&flags.GridUnit, "grid-unit", 0, "grid spacing in canvas units (default 0.05)")
	fs.IntVar(&flags.MinOperations, "min-ops", 0, "expand scenes with fewer operations than this (default 25)")
	fs.IntVar(&flags.Concurrency, "concurrency", 0, "maximum files composed in parallel (default 4)")
	fs.BoolVar(&flags.SkipExpansion, "skip-expansion", false, "never insert operations")
	fs.BoolVar(&flags.SkipLayout, "skip-layout", false, "leave overlapping labels in place")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log stage progress to stderr")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server on stdio")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Fprintln(stdout, version)
		return nil
	}
	if err := checkFormat(flags.Format); err != nil {
		return err
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	var opts []pipeline.Option
	var progress *pipeline.ProgressReporter
	var drained sync.WaitGroup
	if flags.Verbose || cfg.Verbose {
		opts = append(opts, pipeline.WithLogger(log.New(stderr, "compose: ", 0)))
		progress = pipeline.NewProgressReporter()
		opts = append(opts, pipeline.WithProgress(progress.Emit))
		drained.Add(1)
		go func() {
			defer drained.Done()
			for event := range progress.Subscribe() {
				fmt.Fprintln(stderr, pipeline.FormatProgress(event))
			}
		}()
	}
	p := pipeline.New(pipeline.ConfigFrom(cfg), opts...)

	if flags.ServeMCP {
		if progress != nil {
			defer drained.Wait()
			defer progress.Close()
		}
		return mcptools.RunStdio(ctx, mcptools.NewComposeMCPServer(p))
	}

	jobs, err := readJobs(fs.Args(), stdin, flags.Topic)
	if err != nil {
		return err
	}

	results, err := p.RunBatch(ctx, jobs)
	if progress != nil {
		progress.Close()
		drained.Wait()
	}
	if err != nil {
		return fmt.Errorf("compose: %w", err)
	}

	return withOutput(flags.Output, stdout, func(w io.Writer) error {
		return writeResults(w, flags.Format, results)
	})
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// loadConfig reads compose.yml and applies any flags set on the command line.
func loadConfig(flags cliFlags) (*config.ProjectConfig, error) {
	cfg, err := config.Load(flags.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flags.GridUnit != 0 {
		cfg.GridUnit = flags.GridUnit
	}
	if flags.MinOperations != 0 {
		cfg.MinOperations = flags.MinOperations
	}
	if flags.Concurrency != 0 {
		cfg.Concurrency = flags.Concurrency
	}
	cfg.SkipExpansion = cfg.SkipExpansion || flags.SkipExpansion
	cfg.SkipLayout = cfg.SkipLayout || flags.SkipLayout
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// readJobs decodes each named file, or stdin when no file (or "-") is given.
// A non-empty topic overrides the topic carried by each document.
func readJobs(paths []string, stdin io.Reader, topic string) ([]pipeline.Job, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	jobs := make([]pipeline.Job, 0, len(paths))
	for _, path := range paths {
		doc, err := readDocument(path, stdin)
		if err != nil {
			return nil, err
		}
		job := pipeline.Job{Topic: doc.Topic, Operations: doc.Operations}
		if topic != "" {
			job.Topic = topic
		}
		if len(paths) > 1 {
			job.Name = filepath.Base(path)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func readDocument(path string, stdin io.Reader) (*ops.Document, error) {
	if path == "-" {
		doc, err := ops.Decode(stdin)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return doc, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	doc, err := ops.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// withOutput calls write with the named file, or stdout when path is empty.
func withOutput(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
