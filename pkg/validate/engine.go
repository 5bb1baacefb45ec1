package validate

import (
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapmeta/pkg/core"
)

// Options are the policy switches refiners consult.
type Options struct {
	// Orphans enables the orphaned convention method check.
	Orphans bool
	// SkipServices lets refiners that opt in ignore service types.
	SkipServices bool
	// SeverityOverrides maps refiner IDs to severities.
	SeverityOverrides map[string]core.Severity
	// Exclusions maps refiner IDs to extra exclusion predicates.
	Exclusions map[string][]Exclusion
	// Concurrency limits parallel refiners. Zero or less means unlimited.
	Concurrency int
}

// Engine runs refiners over a completed graph.
type Engine struct {
	refiners []Refiner
	opts     Options
	logger   *slog.Logger
}

// NewEngine creates an engine. A nil logger discards output.
func NewEngine(refiners []Refiner, opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{refiners: refiners, opts: opts, logger: logger}
}

// Refiners returns the refiners in registration order.
func (e *Engine) Refiners() []Refiner {
	return e.refiners
}

// Run executes every refiner concurrently and concatenates the findings in
// registration order. A panicking refiner is reported as one failure and
// does not affect the others.
func (e *Engine) Run(g Graph) *core.Report {
	results := make([][]core.ValidationFailure, len(e.refiners))

	var eg errgroup.Group
	if e.opts.Concurrency > 0 {
		eg.SetLimit(e.opts.Concurrency)
	}
	for i, r := range e.refiners {
		eg.Go(func() error {
			results[i] = e.check(r, g)
			return nil
		})
	}
	_ = eg.Wait()

	report := &core.Report{}
	for i, r := range e.refiners {
		sev, override := e.opts.SeverityOverrides[r.ID()]
		for _, f := range results[i] {
			if override {
				f.Severity = sev
			}
			report.Add(f)
		}
	}
	e.logger.Debug("validation complete", "refiners", len(e.refiners), "failures", report.Len())
	return report
}

func (e *Engine) check(r Refiner, g Graph) (failures []core.ValidationFailure) {
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Error("refiner panicked", "refiner", r.ID(), "panic", rec)
			failures = []core.ValidationFailure{{
				RuleID:   r.ID(),
				Severity: core.SeverityError,
				Message:  fmt.Sprintf("refiner %s panicked: %v", r.Name(), rec),
			}}
		}
	}()

	ctx := &Context{
		Graph:   g,
		Options: e.opts,
		Logger:  e.logger.With("refiner", r.ID()),
		refiner: r,
		exclude: e.opts.Exclusions[r.ID()],
	}
	return r.Check(ctx)
}
