package loader

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sync"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/introspect"
	"github.com/leapstack-labs/leapmeta/pkg/model"
	"github.com/leapstack-labs/leapmeta/pkg/spec"
	"github.com/leapstack-labs/leapmeta/pkg/validate"
)

var (
	// ErrNilType is returned for a nil type handle. It aborts the build.
	ErrNilType = errors.New("nil type handle")

	// ErrValidationFailed is returned by BuildUnit in strict mode when the
	// report is not empty. The graph remains available.
	ErrValidationFailed = errors.New("validation failed")
)

// Options configures a Loader.
type Options struct {
	// Logger is optional. If nil, logging is discarded.
	Logger *slog.Logger

	// Concurrency limits parallel refiners. Zero means unlimited.
	Concurrency int
}

// Loader builds and caches specifications. It owns its arena; create one
// per build unit or call Reset between units.
type Loader struct {
	model    *model.ProgrammingModel
	provider introspect.Provider
	logger   *slog.Logger
	engine   *validate.Engine

	buildMu sync.Mutex
	// fatal is the first construction error raised by a related type
	// during the current build; added lists the types the build inserted.
	// Both are guarded by buildMu.
	fatal error
	added []reflect.Type

	mu     sync.RWMutex
	arena  map[reflect.Type]*spec.ObjectSpecification
	byName map[string]*spec.ObjectSpecification
	report *core.Report
}

// New creates a loader over a programming model and an introspection provider.
func New(m *model.ProgrammingModel, provider introspect.Provider, opts Options) *Loader {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	vopts := m.ValidateOptions()
	vopts.Concurrency = opts.Concurrency

	return &Loader{
		model:    m,
		provider: provider,
		logger:   logger,
		engine:   validate.NewEngine(m.Refiners(), vopts, logger),
		arena:    make(map[reflect.Type]*spec.ObjectSpecification),
		byName:   make(map[string]*spec.ObjectSpecification),
	}
}

// Model returns the programming model.
func (l *Loader) Model() *model.ProgrammingModel { return l.model }

// LoadSpecification returns the specification of t, building it and every
// type it reaches on first request. Pointer types resolve to their element.
func (l *Loader) LoadSpecification(t reflect.Type) (*spec.ObjectSpecification, error) {
	l.buildMu.Lock()
	defer l.buildMu.Unlock()
	return l.build(t)
}

// BuildUnit loads every type and then validates the whole arena. In strict
// mode a non-empty report is returned together with ErrValidationFailed.
func (l *Loader) BuildUnit(types ...reflect.Type) (*core.Report, error) {
	l.buildMu.Lock()
	defer l.buildMu.Unlock()

	for _, t := range types {
		if _, err := l.build(t); err != nil {
			return nil, err
		}
	}

	report := l.engine.Run(l)
	l.mu.Lock()
	l.report = report
	l.mu.Unlock()

	l.logger.Debug("build unit complete", "types", len(types), "specifications", l.Len(), "failures", report.Len())
	if l.model.Validation().Strict && !report.Empty() {
		return report, fmt.Errorf("%w: %d finding(s)", ErrValidationFailed, report.Len())
	}
	return report, nil
}

// Validate re-runs the refiners over the current arena without building.
func (l *Loader) Validate() *core.Report {
	l.buildMu.Lock()
	defer l.buildMu.Unlock()
	report := l.engine.Run(l)
	l.mu.Lock()
	l.report = report
	l.mu.Unlock()
	return report
}

// build loads a root type. A construction error raised while loading a
// related type aborts the build even though the root itself was described.
// Callers hold buildMu.
func (l *Loader) build(t reflect.Type) (*spec.ObjectSpecification, error) {
	l.fatal, l.added = nil, nil
	defer func() { l.fatal, l.added = nil, nil }()

	s, err := l.load(t)
	if err == nil && l.fatal != nil {
		err = fmt.Errorf("load %s: %w", core.CanonicalName(t), l.fatal)
	}
	if err != nil {
		l.rollback()
		return nil, err
	}
	return s, nil
}

// rollback removes the specifications inserted by a failed build so a later
// request reports the same error instead of a half-built graph.
func (l *Loader) rollback() {
	if len(l.added) == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.added {
		delete(l.arena, t)
	}
	for name, s := range l.byName {
		if slices.Contains(l.added, s.Type()) {
			delete(l.byName, name)
		}
	}
	l.logger.Debug("build rolled back", "specifications", len(l.added))
}

// loadRelated loads a type reached from another specification: a member
// type, a supertype or a capability. Types the provider rejects are skipped
// by the caller; any other error is kept for build.
func (l *Loader) loadRelated(t reflect.Type) (*spec.ObjectSpecification, error) {
	s, err := l.load(t)
	if err != nil && !errors.Is(err, introspect.ErrNotIntrospectable) && l.fatal == nil {
		l.fatal = err
	}
	return s, err
}

// load is the unlocked build path. Callers hold buildMu.
func (l *Loader) load(t reflect.Type) (*spec.ObjectSpecification, error) {
	t = core.Normalize(t)
	if t == nil {
		return nil, ErrNilType
	}
	if s, ok := l.Specification(t); ok {
		return s, nil
	}

	desc, err := l.provider.Describe(t)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", core.CanonicalName(t), err)
	}

	s := spec.New(desc, l)
	l.mu.Lock()
	l.arena[t] = s
	l.mu.Unlock()
	l.added = append(l.added, t)
	l.logger.Debug("placeholder registered", "type", s.CanonicalName())

	l.process(s)
	s.MarkBuilt()

	name := s.LogicalType().Name()
	l.mu.Lock()
	if _, taken := l.byName[name]; !taken {
		l.byName[name] = s
	}
	l.mu.Unlock()

	l.logger.Debug("specification built", "type", s.CanonicalName(), "logical_name", name, "members", len(s.Members()))
	return s, nil
}

// Specification returns a known specification without building. It
// implements spec.Resolver.
func (l *Loader) Specification(t reflect.Type) (*spec.ObjectSpecification, bool) {
	t = core.Normalize(t)
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.arena[t]
	return s, ok
}

// LookupByLogicalName returns the specification registered under a logical
// type name. When names collide the first built type is returned.
func (l *Loader) LookupByLogicalName(name string) (*spec.ObjectSpecification, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.byName[name]
	return s, ok
}

// Specifications returns every specification sorted by canonical name.
func (l *Loader) Specifications() []*spec.ObjectSpecification {
	l.mu.RLock()
	out := make([]*spec.ObjectSpecification, 0, len(l.arena))
	for _, s := range l.arena {
		out = append(out, s)
	}
	l.mu.RUnlock()

	slices.SortFunc(out, func(a, b *spec.ObjectSpecification) int {
		return cmp.Compare(a.CanonicalName(), b.CanonicalName())
	})
	return out
}

// Hierarchy returns the supertype graph of the arena.
func (l *Loader) Hierarchy() *spec.Hierarchy {
	h, _ := spec.BuildHierarchy(l.Specifications())
	return h
}

// Len returns the number of specifications in the arena.
func (l *Loader) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.arena)
}

// Report returns the report of the last validation run, or nil.
func (l *Loader) Report() *core.Report {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.report
}

// Reset discards the whole graph.
func (l *Loader) Reset() {
	l.buildMu.Lock()
	defer l.buildMu.Unlock()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.arena = make(map[reflect.Type]*spec.ObjectSpecification)
	l.byName = make(map[string]*spec.ObjectSpecification)
	l.report = nil
	l.logger.Debug("arena reset")
}

// nested is the loader view handed to contributors. It reuses the build
// already holding buildMu.
type nested struct {
	l *Loader
}

func (n nested) LoadNested(t reflect.Type) (*spec.ObjectSpecification, error) {
	return n.l.loadRelated(t)
}
