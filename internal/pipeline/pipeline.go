// Package pipeline runs the composition stages in their fixed order:
// grid snap, expansion, label layout, domain classification and validation.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/dusk-indust/compose/internal/config"
	"github.com/dusk-indust/compose/internal/domain"
	"github.com/dusk-indust/compose/internal/expand"
	"github.com/dusk-indust/compose/internal/grid"
	"github.com/dusk-indust/compose/internal/layout"
	"github.com/dusk-indust/compose/internal/ops"
	"github.com/dusk-indust/compose/internal/validate"
	"golang.org/x/sync/errgroup"
)

// Config holds the tunables of a pipeline. Zero values select defaults.
type Config struct {
	GridUnit      float64
	MinOperations int
	PassThreshold int
	Weights       validate.Weights
	SkipExpansion bool
	SkipLayout    bool
	// Concurrency bounds RunBatch parallelism.
	Concurrency int
}

// ConfigFrom converts a project config into pipeline settings.
func ConfigFrom(pc *config.ProjectConfig) Config {
	if pc == nil {
		pc = &config.ProjectConfig{}
	}
	return Config{
		GridUnit:      pc.Unit(),
		MinOperations: pc.MinOps(),
		PassThreshold: pc.Threshold(),
		Weights:       pc.ScoreWeights(),
		SkipExpansion: pc.SkipExpansion,
		SkipLayout:    pc.SkipLayout,
		Concurrency:   pc.Workers(),
	}
}

// Result is the outcome of one run.
type Result struct {
	Topic         string          `json:"topic"`
	Operations    []ops.Operation `json:"operations"`
	Report        validate.Report `json:"report"`
	Domains       []domain.Domain `json:"domains"`
	V2Before      float64         `json:"v2Before"`
	V2After       float64         `json:"v2After"`
	GridAlignment float64         `json:"gridAlignment"`
	Expanded      bool            `json:"expanded"`
	Inserted      int             `json:"inserted"`
}

// Job is one independent composition for RunBatch.
type Job struct {
	Name       string
	Topic      string
	Operations []ops.Operation
}

// Option customises a Pipeline.
type Option func(*Pipeline)

// WithLogger routes run diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithProgress registers a callback for stage events. It is invoked
// synchronously from whichever goroutine runs the job.
func WithProgress(fn func(ProgressEvent)) Option {
	return func(p *Pipeline) {
		p.onProgress = fn
	}
}

// Pipeline is stateless apart from its configuration and is safe for
// concurrent use.
type Pipeline struct {
	cfg        Config
	logger     *log.Logger
	onProgress func(ProgressEvent)
}

// New creates a Pipeline. Without WithLogger it logs nothing.
func New(cfg Config, opts ...Option) *Pipeline {
	if cfg.GridUnit <= 0 {
		cfg.GridUnit = grid.DefaultUnit
	}
	if cfg.MinOperations <= 0 {
		cfg.MinOperations = expand.DefaultMinOperations
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = config.DefaultConcurrency
	}
	p := &Pipeline{
		cfg:    cfg,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Config returns the effective configuration after defaults.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Run composes a single operation list.
func (p *Pipeline) Run(list []ops.Operation, topic string) Result {
	return p.RunJob(Job{Topic: topic, Operations: list})
}

// RunJob composes one job. The input list is never modified.
func (p *Pipeline) RunJob(job Job) Result {
	res := Result{Topic: job.Topic}

	p.emit(job.Name, StageSnap, ProgressWorking, "")
	current := grid.SnapAll(job.Operations, p.cfg.GridUnit)
	p.emit(job.Name, StageSnap, ProgressComplete, "")

	if !p.cfg.SkipExpansion && expand.NeedsExpansion(current, p.cfg.MinOperations) {
		p.emit(job.Name, StageExpand, ProgressWorking, "")
		before := len(current)
		current = expand.Expand(current, expand.Config{
			MinOperations: p.cfg.MinOperations,
			GridUnit:      p.cfg.GridUnit,
		})
		res.Expanded = true
		res.Inserted = len(current) - before
		p.emit(job.Name, StageExpand, ProgressComplete, fmt.Sprintf("%d -> %d operations", before, len(current)))
	} else {
		p.emit(job.Name, StageExpand, ProgressSkipped, "")
	}

	if p.cfg.SkipLayout {
		p.emit(job.Name, StageLayout, ProgressSkipped, "")
	} else {
		p.emit(job.Name, StageLayout, ProgressWorking, "")
		current = layout.FixLabelOverlap(current, p.cfg.GridUnit)
		p.emit(job.Name, StageLayout, ProgressComplete, "")
	}

	p.emit(job.Name, StageClassify, ProgressWorking, "")
	res.Domains = domain.Detect(job.Topic)
	res.V2Before = domain.V2Percentage(current)
	current = domain.Convert(current, job.Topic)
	res.V2After = domain.V2Percentage(current)
	p.logf(job.Name, "domains %v, domain-specific operations %.1f%% -> %.1f%%", res.Domains, res.V2Before, res.V2After)
	p.emit(job.Name, StageClassify, ProgressComplete, fmt.Sprintf("V2 %.0f%% -> %.0f%%", res.V2Before, res.V2After))

	res.GridAlignment = grid.CheckAlignment(current, p.cfg.GridUnit)
	if res.GridAlignment < 100 {
		p.logf(job.Name, "WARNING: grid alignment %.1f%% after composition", res.GridAlignment)
	}

	p.emit(job.Name, StageValidate, ProgressWorking, "")
	v := validate.Validator{
		GridUnit:      p.cfg.GridUnit,
		PassThreshold: p.cfg.PassThreshold,
		Weights:       p.cfg.Weights,
	}
	res.Report = v.Validate(current, job.Topic)
	res.Operations = current
	p.logf(job.Name, "composition %s", res.Report.Summary())
	p.emit(job.Name, StageValidate, ProgressComplete, res.Report.Summary())

	return res
}

// RunBatch composes independent jobs concurrently, at most
// Config.Concurrency at a time. Results are returned in job order. If ctx
// is cancelled, unscheduled jobs are skipped and the context error is
// returned alongside whatever results completed.
func (p *Pipeline) RunBatch(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Concurrency)

	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.RunJob(job)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

func (p *Pipeline) emit(job string, stage Stage, status ProgressStatus, msg string) {
	if p.onProgress != nil {
		p.onProgress(ProgressEvent{Job: job, Stage: stage, Status: status, Message: msg})
	}
}

func (p *Pipeline) logf(job, format string, args ...any) {
	if job != "" {
		format = "[" + job + "] " + format
	}
	p.logger.Printf(format, args...)
}
