package loader

import (
	"slices"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/factory"
	"github.com/leapstack-labs/leapmeta/pkg/spec"
)

// process runs the class, member and parameter passes against a placeholder.
func (l *Loader) process(s *spec.ObjectSpecification) {
	desc := s.Descriptor()

	// Supertypes and capabilities are built before the passes so their
	// facets are visible to the class pass.
	for _, t := range slices.Concat(desc.Supertypes, desc.Capabilities) {
		if _, err := l.loadRelated(t); err != nil {
			l.logger.Debug("related type skipped", "type", s.CanonicalName(), "related", core.CanonicalName(t), "error", err)
		}
	}

	methods := factory.NewMethodPool(desc.Methods)
	base := factory.Context{
		Type:    desc,
		Spec:    s,
		Methods: methods,
		Loader:  nested{l},
		Logger:  l.logger,
	}

	l.run(base, core.PhaseClass, core.FeatureObject, nil, nil)

	for _, fd := range desc.Fields {
		m := spec.NewMember(s, fd)
		s.AddMember(m)
		l.run(base, core.PhaseMember, fd.Feature, m, nil)
	}

	prefixes := l.model.Prefixes()
	var actions []*spec.ObjectMember
	for _, md := range methods.Remaining() {
		if factory.HasConventionPrefix(md.Name, prefixes) {
			continue
		}
		m := spec.NewMember(s, md.AsAction())
		s.AddMember(m)
		actions = append(actions, m)
	}
	for _, m := range actions {
		l.run(base, core.PhaseMember, core.FeatureAction, m, nil)
	}

	for _, m := range actions {
		for _, p := range m.Parameters() {
			l.run(base, core.PhaseParameter, core.FeatureParameter, m, p)
		}
	}

	var orphans []string
	for _, md := range methods.WithPrefix(prefixes) {
		orphans = append(orphans, md.Name)
	}
	if len(orphans) > 0 {
		l.logger.Debug("unconsumed convention methods", "type", s.CanonicalName(), "methods", orphans)
	}
	s.SetOrphans(orphans)
	s.SortMembers()
}

// run invokes every contributor selecting the feature against one holder.
func (l *Loader) run(base factory.Context, phase core.Phase, feature core.FeatureType, m *spec.ObjectMember, p *spec.Parameter) {
	base.Phase = phase
	base.Feature = feature
	base.Member = m
	base.Param = p

	opts := l.model.Options()
	for _, c := range l.model.ContributorsFor(feature) {
		c.Process(base.Bind(c.ID(), opts))
	}
}
